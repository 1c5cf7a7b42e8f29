package log

import (
	"testing"

	"github.com/hatlonely/beansql/ref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithOptions(t *testing.T) {
	l, err := NewLoggerWithOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), l)

	l, err = NewLoggerWithOptions(&ref.TypeOptions{
		Namespace: "github.com/hatlonely/beansql/log/logger",
		Type:      "SLog",
		Options:   &Options{Level: "debug", Format: "json"},
	})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewLoggerWithOptions(&ref.TypeOptions{Namespace: "github.com/hatlonely/beansql/log/writer", Type: "ConsoleWriter"})
	assert.Error(t, err)

	Discard().Error("discarded")
}
