package decoder

import (
	"github.com/BurntSushi/toml"
	"github.com/hatlonely/beansql/cfg/storage"
	"github.com/pkg/errors"
)

type TomlDecoderOptions struct{}

// TomlDecoder TOML 格式解码器，表数组解码为 []map[string]any
type TomlDecoder struct{}

func NewTomlDecoderWithOptions(options *TomlDecoderOptions) *TomlDecoder {
	return &TomlDecoder{}
}

func (t *TomlDecoder) Decode(data []byte) (storage.Storage, error) {
	var result map[string]any
	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "toml.Unmarshal failed")
	}
	return storage.NewMapStorage(result), nil
}
