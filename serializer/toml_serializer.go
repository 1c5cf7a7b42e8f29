package serializer

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type TOMLSerializer struct{}

func NewTOMLSerializer() *TOMLSerializer {
	return &TOMLSerializer{}
}

func (s *TOMLSerializer) Serialize(from *Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(from); err != nil {
		return nil, errors.Wrap(err, "toml encode failed")
	}
	return buf.Bytes(), nil
}

func (s *TOMLSerializer) Deserialize(to []byte) (*Bundle, error) {
	var result Bundle
	if _, err := toml.Decode(string(to), &result); err != nil {
		return nil, errors.Wrap(err, "toml.Decode failed")
	}
	return &result, nil
}
