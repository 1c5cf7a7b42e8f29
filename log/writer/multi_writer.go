package writer

import (
	"github.com/hatlonely/beansql/ref"
	"github.com/pkg/errors"
)

// MultiWriterOptions 多输出配置
type MultiWriterOptions struct {
	Writers []ref.TypeOptions `cfg:"writers" validate:"min=1"`
}

// MultiWriter 把同一条日志写到多个输出器
type MultiWriter struct {
	writers []Writer
}

func NewMultiWriterWithOptions(options *MultiWriterOptions) (*MultiWriter, error) {
	if options == nil || len(options.Writers) == 0 {
		return nil, errors.New("at least one writer is required")
	}

	writers := make([]Writer, 0, len(options.Writers))
	for i, opts := range options.Writers {
		obj, err := ref.New(opts.Namespace, opts.Type, opts.Options)
		if err != nil {
			return nil, errors.WithMessagef(err, "create writer %d failed", i)
		}
		w, ok := obj.(Writer)
		if !ok {
			return nil, errors.Errorf("writer %d (%T) does not implement Writer", i, obj)
		}
		writers = append(writers, w)
	}

	return &MultiWriter{writers: writers}, nil
}

func (m *MultiWriter) Write(p []byte) (int, error) {
	for i, w := range m.writers {
		if n, err := w.Write(p); err != nil {
			return n, errors.Wrapf(err, "writer %d failed", i)
		}
	}
	return len(p), nil
}

// Close 关闭所有输出器，返回第一个错误
func (m *MultiWriter) Close() error {
	var first error
	for _, w := range m.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
