package provider

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	p, err := NewFileProviderWithOptions(&FileProviderOptions{FilePath: path})
	require.NoError(t, err)
	defer p.Close()

	data, err := p.Load()
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	changes := make(chan string, 10)
	p.OnChange(func(data []byte) error {
		changes <- string(data)
		return nil
	})
	require.NoError(t, p.Watch())
	require.NoError(t, p.Watch())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	// 截断和写入可能产生多个事件，等待最终内容
	timeout := time.After(3 * time.Second)
	for got := ""; got != "v2"; {
		select {
		case got = <-changes:
		case <-timeout:
			t.Fatal("change not detected")
		}
	}

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestFileProvider_Errors(t *testing.T) {
	_, err := NewFileProviderWithOptions(nil)
	assert.Error(t, err)

	p, err := NewFileProviderWithOptions(&FileProviderOptions{FilePath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)
	_, err = p.Load()
	assert.Error(t, err)
	assert.NoError(t, p.Close())
}
