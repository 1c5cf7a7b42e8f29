package serializer

import (
	"strings"

	"github.com/hatlonely/beansql/ref"
	"github.com/pkg/errors"
)

func init() {
	ref.MustRegisterT[TextSerializer](NewTextSerializer)
	ref.MustRegisterT[JSONSerializer](NewJSONSerializerWithOptions)
	ref.MustRegisterT[YAMLSerializer](NewYAMLSerializer)
	ref.MustRegisterT[TOMLSerializer](NewTOMLSerializer)
	ref.MustRegisterT[MsgPackSerializer](NewMsgPackSerializer)
	ref.MustRegisterT[BSONSerializer](NewBSONSerializer)
	ref.MustRegisterT[ProtobufSerializer](NewProtobufSerializer)
}

// Statement 一条生成的语句
type Statement struct {
	Kind string `json:"kind" yaml:"kind" toml:"kind" msgpack:"kind" bson:"kind"`
	SQL  string `json:"sql" yaml:"sql" toml:"sql" msgpack:"sql" bson:"sql"`
}

// TableStatements 一张表的所有语句，按请求的顺序排列
type TableStatements struct {
	Table      string      `json:"table" yaml:"table" toml:"table" msgpack:"table" bson:"table"`
	Statements []Statement `json:"statements" yaml:"statements" toml:"statements" msgpack:"statements" bson:"statements"`
}

// Bundle 一次生成的全部语句
type Bundle struct {
	Tables []TableStatements `json:"tables" yaml:"tables" toml:"tables" msgpack:"tables" bson:"tables"`
}

type Serializer interface {
	Serialize(from *Bundle) ([]byte, error)
	Deserialize(to []byte) (*Bundle, error)
}

const namespace = "github.com/hatlonely/beansql/serializer"

var formats = map[string]string{
	"text":     "TextSerializer",
	"sql":      "TextSerializer",
	"json":     "JSONSerializer",
	"yaml":     "YAMLSerializer",
	"yml":      "YAMLSerializer",
	"toml":     "TOMLSerializer",
	"msgpack":  "MsgPackSerializer",
	"bson":     "BSONSerializer",
	"protobuf": "ProtobufSerializer",
	"pb":       "ProtobufSerializer",
}

// NewSerializer 按格式名创建序列化器：text, json, yaml, toml, msgpack, bson, protobuf
func NewSerializer(format string) (Serializer, error) {
	typ, ok := formats[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, errors.Errorf("unsupported format %q", format)
	}
	return NewSerializerWithOptions(&ref.TypeOptions{Namespace: namespace, Type: typ})
}

func NewSerializerWithOptions(options *ref.TypeOptions) (Serializer, error) {
	if options == nil {
		return NewTextSerializer(), nil
	}
	obj, err := ref.New(options.Namespace, options.Type, options.Options)
	if err != nil {
		return nil, errors.WithMessage(err, "ref.New failed")
	}
	s, ok := obj.(Serializer)
	if !ok {
		return nil, errors.Errorf("%T is not a Serializer", obj)
	}
	return s, nil
}
