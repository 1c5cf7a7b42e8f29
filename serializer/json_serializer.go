package serializer

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type JSONSerializerOptions struct {
	Indent string `cfg:"indent" def:"  "`
}

type JSONSerializer struct {
	indent string
}

func NewJSONSerializerWithOptions(options *JSONSerializerOptions) *JSONSerializer {
	if options == nil {
		return &JSONSerializer{indent: "  "}
	}
	return &JSONSerializer{indent: options.Indent}
}

func (s *JSONSerializer) Serialize(from *Bundle) ([]byte, error) {
	var buf []byte
	var err error
	if s.indent == "" {
		buf, err = json.Marshal(from)
	} else {
		buf, err = json.MarshalIndent(from, "", s.indent)
	}
	if err != nil {
		return nil, errors.Wrap(err, "json.Marshal failed")
	}
	return append(buf, '\n'), nil
}

func (s *JSONSerializer) Deserialize(to []byte) (*Bundle, error) {
	var result Bundle
	if err := json.Unmarshal(to, &result); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal failed")
	}
	return &result, nil
}
