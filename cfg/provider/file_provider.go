package provider

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hatlonely/beansql/log"
	"github.com/hatlonely/beansql/log/logger"
	"github.com/pkg/errors"
)

type FileProviderOptions struct {
	FilePath string `cfg:"filePath" validate:"required"`
}

// FileProvider 从本地文件读取配置，监听所在目录，文件被写入或重新创建时回调
type FileProvider struct {
	filePath string
	logger   logger.Logger

	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	onChange []func(data []byte) error
	once     sync.Once
	done     chan struct{}
}

func NewFileProviderWithOptions(options *FileProviderOptions) (*FileProvider, error) {
	if options == nil || options.FilePath == "" {
		return nil, errors.New("file path is required")
	}

	absPath, err := filepath.Abs(options.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "invalid file path")
	}

	return &FileProvider{
		filePath: absPath,
		logger:   log.Default(),
		done:     make(chan struct{}),
	}, nil
}

func (p *FileProvider) Load() ([]byte, error) {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "read file %s failed", p.filePath)
	}
	return data, nil
}

func (p *FileProvider) OnChange(fn func(data []byte) error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.onChange = append(p.onChange, fn)
}

func (p *FileProvider) Watch() error {
	var initErr error
	p.once.Do(func() {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			initErr = errors.Wrap(err, "create file watcher failed")
			return
		}

		// 监听所在目录，文件可能被删除后重新创建
		if err := watcher.Add(filepath.Dir(p.filePath)); err != nil {
			_ = watcher.Close()
			initErr = errors.Wrap(err, "add directory to watcher failed")
			return
		}

		p.mu.Lock()
		p.watcher = watcher
		p.mu.Unlock()

		go p.loop(watcher)
	})

	return initErr
}

func (p *FileProvider) loop(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-p.done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(p.filePath)
			if err != nil {
				p.logger.Warn("reload file failed", "path", p.filePath, "error", err.Error())
				continue
			}
			p.notify(data)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("file watcher error", "path", p.filePath, "error", err.Error())
		}
	}
}

func (p *FileProvider) notify(data []byte) {
	p.mu.RLock()
	handlers := make([]func(data []byte) error, len(p.onChange))
	copy(handlers, p.onChange)
	p.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(data); err != nil {
			p.logger.Warn("onChange handler failed", "path", p.filePath, "error", err.Error())
		}
	}
}

func (p *FileProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.watcher == nil {
		return nil
	}
	close(p.done)
	err := p.watcher.Close()
	p.watcher = nil
	return err
}
