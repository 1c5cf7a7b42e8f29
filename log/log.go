package log

import (
	"io"

	"github.com/hatlonely/beansql/log/logger"
	"github.com/hatlonely/beansql/ref"
	"github.com/pkg/errors"
)

// Options 默认日志器 SLog 的配置
type Options = logger.SLogOptions

var defaultLogger logger.Logger

func init() {
	ref.MustRegisterT[logger.SLog](logger.NewSLogWithOptions)

	l, err := logger.NewSLogWithOptions(&Options{Level: "info", Format: "text"})
	if err != nil {
		panic("failed to initialize default logger: " + err.Error())
	}
	defaultLogger = l
}

// Default 返回输出到 stderr 的 info 级别日志器
func Default() logger.Logger {
	return defaultLogger
}

// Discard 返回丢弃所有输出的日志器
func Discard() logger.Logger {
	l, _ := logger.NewSLogWithWriter(io.Discard, "error")
	return l
}

func NewLogWithOptions(options *Options) (logger.Logger, error) {
	return logger.NewSLogWithOptions(options)
}

// NewLoggerWithOptions 通过 ref 按名称创建日志器，options 为空时返回默认日志器
func NewLoggerWithOptions(options *ref.TypeOptions) (logger.Logger, error) {
	if options == nil || options.Type == "" {
		return Default(), nil
	}

	obj, err := ref.New(options.Namespace, options.Type, options.Options)
	if err != nil {
		return nil, errors.WithMessage(err, "ref.New failed")
	}
	l, ok := obj.(logger.Logger)
	if !ok {
		return nil, errors.Errorf("%T does not implement Logger", obj)
	}
	return l, nil
}
