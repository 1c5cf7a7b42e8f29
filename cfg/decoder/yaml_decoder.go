package decoder

import (
	"github.com/hatlonely/beansql/cfg/storage"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type YamlDecoderOptions struct{}

// YamlDecoder YAML 格式解码器
type YamlDecoder struct{}

func NewYamlDecoderWithOptions(options *YamlDecoderOptions) *YamlDecoder {
	return &YamlDecoder{}
}

func (y *YamlDecoder) Decode(data []byte) (storage.Storage, error) {
	var result any
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "yaml.Unmarshal failed")
	}
	return storage.NewMapStorage(result), nil
}
