package cfg

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hatlonely/beansql/cfg/decoder"
	"github.com/hatlonely/beansql/cfg/provider"
	"github.com/hatlonely/beansql/cfg/storage"
	"github.com/hatlonely/beansql/cfg/validator"
	"github.com/hatlonely/beansql/log"
	"github.com/hatlonely/beansql/log/logger"
	"github.com/hatlonely/beansql/ref"
	"github.com/pkg/errors"
)

// Options 配置类初始化选项
type Options struct {
	Provider ref.TypeOptions  `cfg:"provider"`
	Decoder  ref.TypeOptions  `cfg:"decoder"`
	Logger   *ref.TypeOptions `cfg:"logger"`
}

// Config 配置管理器
// 提供配置数据的统一访问入口和变更监听功能
type Config struct {
	root *root
	key  string
}

type root struct {
	provider provider.Provider
	decoder  decoder.Decoder
	logger   logger.Logger

	mu       sync.RWMutex
	storage  storage.Storage
	handlers []func() error

	closeOnce   sync.Once
	closeResult error
}

// NewConfigWithOptions 根据选项创建 Provider 和 Decoder，并加载一次数据
func NewConfigWithOptions(options *Options) (*Config, error) {
	if options == nil {
		return nil, errors.New("options cannot be nil")
	}

	providerObj, err := ref.New(options.Provider.Namespace, options.Provider.Type, options.Provider.Options)
	if err != nil {
		return nil, errors.WithMessage(err, "create provider failed")
	}
	prov, ok := providerObj.(provider.Provider)
	if !ok {
		return nil, errors.Errorf("%T does not implement Provider", providerObj)
	}

	dec, err := decoder.NewDecoderWithOptions(&options.Decoder)
	if err != nil {
		return nil, errors.WithMessage(err, "create decoder failed")
	}

	l, err := log.NewLoggerWithOptions(options.Logger)
	if err != nil {
		return nil, errors.WithMessage(err, "create logger failed")
	}

	data, err := prov.Load()
	if err != nil {
		return nil, errors.WithMessage(err, "load data from provider failed")
	}
	stor, err := dec.Decode(data)
	if err != nil {
		return nil, errors.WithMessage(err, "decode data failed")
	}

	r := &root{
		provider: prov,
		decoder:  dec,
		logger:   l,
		storage:  stor,
	}
	prov.OnChange(r.handleProviderChange)

	return &Config{root: r}, nil
}

// NewConfig 从文件中加载配置，根据文件后缀选择解码器：
//
//	.json/.json5 -> JsonDecoder
//	.yaml/.yml -> YamlDecoder
//	.toml -> TomlDecoder
//	.ini -> IniDecoder
func NewConfig(filename string) (*Config, error) {
	if filename == "" {
		return nil, errors.New("filename cannot be empty")
	}

	dec, err := DecoderOptionsForFile(filename)
	if err != nil {
		return nil, err
	}

	return NewConfigWithOptions(&Options{
		Provider: ref.TypeOptions{
			Namespace: "github.com/hatlonely/beansql/cfg/provider",
			Type:      "FileProvider",
			Options:   &provider.FileProviderOptions{FilePath: filename},
		},
		Decoder: *dec,
	})
}

// DecoderOptionsForFile 根据文件后缀返回解码器配置
func DecoderOptionsForFile(filename string) (*ref.TypeOptions, error) {
	namespace := "github.com/hatlonely/beansql/cfg/decoder"

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json", ".json5":
		return &ref.TypeOptions{Namespace: namespace, Type: "JsonDecoder", Options: &decoder.JsonDecoderOptions{UseJSON5: ext == ".json5"}}, nil
	case ".yaml", ".yml":
		return &ref.TypeOptions{Namespace: namespace, Type: "YamlDecoder"}, nil
	case ".toml":
		return &ref.TypeOptions{Namespace: namespace, Type: "TomlDecoder"}, nil
	case ".ini":
		return &ref.TypeOptions{Namespace: namespace, Type: "IniDecoder", Options: &decoder.IniDecoderOptions{AllowShadows: true}}, nil
	default:
		return nil, errors.Errorf("unsupported file extension: %q", ext)
	}
}

func (r *root) handleProviderChange(data []byte) error {
	stor, err := r.decoder.Decode(data)
	if err != nil {
		r.logger.Warn("decode changed data failed", "error", err.Error())
		return errors.WithMessage(err, "decode changed data failed")
	}

	r.mu.Lock()
	r.storage = stor
	handlers := make([]func() error, len(r.handlers))
	copy(handlers, r.handlers)
	r.mu.Unlock()

	for _, handler := range handlers {
		start := time.Now()
		if err := handler(); err != nil {
			r.logger.Warn("onChange handler failed", "duration", time.Since(start), "error", err.Error())
			continue
		}
		r.logger.Info("onChange handler succeeded", "duration", time.Since(start))
	}

	return nil
}

func (c *Config) storage() storage.Storage {
	c.root.mu.RLock()
	defer c.root.mu.RUnlock()

	if c.key == "" {
		return c.root.storage
	}
	return c.root.storage.Sub(c.key)
}

// Sub 获取子配置，子配置总是读取根配置的最新数据
func (c *Config) Sub(key string) *Config {
	if c.key != "" {
		key = c.key + "." + key
	}
	return &Config{root: c.root, key: key}
}

// ConvertTo 将配置数据转成 object，设置 def 默认值后用 validate tag 校验
func (c *Config) ConvertTo(object any) error {
	if err := c.storage().ConvertTo(object); err != nil {
		return errors.WithMessage(err, "convert failed")
	}
	if err := SetDefaults(object); err != nil {
		return errors.WithMessage(err, "set defaults failed")
	}
	return validator.ValidateStruct(object)
}

// Unmarshal 只把配置数据转成 object，不设置默认值也不校验
// 用于需要先合并其它来源（例如命令行参数）再校验的场景
func (c *Config) Unmarshal(object any) error {
	return c.storage().ConvertTo(object)
}

// OnChange 注册配置变更回调，只有调用 Watch 后才会触发
func (c *Config) OnChange(fn func(*Config) error) {
	c.root.mu.Lock()
	defer c.root.mu.Unlock()

	c.root.handlers = append(c.root.handlers, func() error {
		return fn(c)
	})
}

// Watch 启动 Provider 的变更监听
func (c *Config) Watch() error {
	return c.root.provider.Watch()
}

// Close 关闭 Provider，多次调用返回第一次的结果
func (c *Config) Close() error {
	c.root.closeOnce.Do(func() {
		c.root.closeResult = c.root.provider.Close()
	})
	return c.root.closeResult
}
