package serializer

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtobufSerializer 以 google.protobuf.Struct 编码，不需要额外的 .proto 定义
type ProtobufSerializer struct{}

func NewProtobufSerializer() *ProtobufSerializer {
	return &ProtobufSerializer{}
}

func (s *ProtobufSerializer) Serialize(from *Bundle) ([]byte, error) {
	tables := make([]any, 0, len(from.Tables))
	for _, t := range from.Tables {
		statements := make([]any, 0, len(t.Statements))
		for _, stmt := range t.Statements {
			statements = append(statements, map[string]any{"kind": stmt.Kind, "sql": stmt.SQL})
		}
		tables = append(tables, map[string]any{"table": t.Table, "statements": statements})
	}

	msg, err := structpb.NewStruct(map[string]any{"tables": tables})
	if err != nil {
		return nil, errors.Wrap(err, "structpb.NewStruct failed")
	}
	buf, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "proto.Marshal failed")
	}
	return buf, nil
}

func (s *ProtobufSerializer) Deserialize(to []byte) (*Bundle, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(to, &msg); err != nil {
		return nil, errors.Wrap(err, "proto.Unmarshal failed")
	}

	result := &Bundle{}
	for _, tv := range msg.GetFields()["tables"].GetListValue().GetValues() {
		tf := tv.GetStructValue().GetFields()
		t := TableStatements{Table: tf["table"].GetStringValue()}
		for _, sv := range tf["statements"].GetListValue().GetValues() {
			sf := sv.GetStructValue().GetFields()
			t.Statements = append(t.Statements, Statement{
				Kind: sf["kind"].GetStringValue(),
				SQL:  sf["sql"].GetStringValue(),
			})
		}
		result.Tables = append(result.Tables, t)
	}
	return result, nil
}
