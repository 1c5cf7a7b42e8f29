package serializer

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type YAMLSerializer struct{}

func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Serialize(from *Bundle) ([]byte, error) {
	buf, err := yaml.Marshal(from)
	if err != nil {
		return nil, errors.Wrap(err, "yaml.Marshal failed")
	}
	return buf, nil
}

func (s *YAMLSerializer) Deserialize(to []byte) (*Bundle, error) {
	var result Bundle
	if err := yaml.Unmarshal(to, &result); err != nil {
		return nil, errors.Wrap(err, "yaml.Unmarshal failed")
	}
	return &result, nil
}
