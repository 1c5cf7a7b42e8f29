package decoder

import (
	"github.com/hatlonely/beansql/cfg/storage"
	"github.com/hatlonely/beansql/ref"
	"github.com/pkg/errors"
)

func init() {
	ref.MustRegisterT[JsonDecoder](NewJsonDecoderWithOptions)
	ref.MustRegisterT[YamlDecoder](NewYamlDecoderWithOptions)
	ref.MustRegisterT[TomlDecoder](NewTomlDecoderWithOptions)
	ref.MustRegisterT[IniDecoder](NewIniDecoderWithOptions)
}

// Decoder 把原始配置数据解码为 Storage
type Decoder interface {
	Decode(data []byte) (storage.Storage, error)
}

func NewDecoderWithOptions(options *ref.TypeOptions) (Decoder, error) {
	if options == nil {
		return nil, errors.New("decoder options is nil")
	}
	obj, err := ref.New(options.Namespace, options.Type, options.Options)
	if err != nil {
		return nil, errors.WithMessage(err, "ref.New failed")
	}
	d, ok := obj.(Decoder)
	if !ok {
		return nil, errors.Errorf("%T is not a Decoder", obj)
	}
	return d, nil
}
