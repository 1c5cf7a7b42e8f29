package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldOptions struct {
	Name string `cfg:"name"`
	Type string `cfg:"type"`
}

type tableOptions struct {
	Name    string         `cfg:"name"`
	Fields  []fieldOptions `cfg:"fields"`
	Timeout time.Duration  `cfg:"timeout"`
	Enabled bool           `cfg:"enabled"`
	Weight  float64        `cfg:"weight"`
	Tags    []string       `cfg:"tags"`
	Extra   any            `cfg:"extra"`
	Skipped string         `cfg:"-"`
	Labels  map[string]int `json:"labels"`
}

func newTestStorage() *MapStorage {
	return NewMapStorage(map[string]any{
		"tables": []any{
			map[string]any{
				"name": "Item",
				"fields": []any{
					map[string]any{"name": "id", "type": "int"},
					map[string]any{"name": "price", "type": "float64"},
				},
				"timeout": "1s",
				"enabled": "true",
				"weight":  "2.5",
				"tags":    "a, b,c",
				"extra":   map[string]any{"k": "v"},
				"Skipped": "x",
				"labels":  map[string]any{"x": 1},
			},
		},
	})
}

func TestMapStorage_Sub(t *testing.T) {
	s := newTestStorage()

	var name string
	require.NoError(t, s.Sub("tables[0].name").ConvertTo(&name))
	assert.Equal(t, "Item", name)

	var typ string
	require.NoError(t, s.Sub("tables.0.fields[1]").Sub("type").ConvertTo(&typ))
	assert.Equal(t, "float64", typ)

	missing := s.Sub("tables[3].name").(*MapStorage)
	assert.Nil(t, missing.Data())
	assert.Equal(t, s, s.Sub(""))
}

func TestMapStorage_ConvertTo(t *testing.T) {
	s := newTestStorage()

	var tables []tableOptions
	require.NoError(t, s.Sub("tables").ConvertTo(&tables))
	require.Len(t, tables, 1)

	table := tables[0]
	assert.Equal(t, "Item", table.Name)
	assert.Equal(t, []fieldOptions{{Name: "id", Type: "int"}, {Name: "price", Type: "float64"}}, table.Fields)
	assert.Equal(t, time.Second, table.Timeout)
	assert.True(t, table.Enabled)
	assert.Equal(t, 2.5, table.Weight)
	assert.Equal(t, []string{"a", "b", "c"}, table.Tags)
	assert.Empty(t, table.Skipped)
	assert.Equal(t, map[string]int{"x": 1}, table.Labels)

	extra, ok := table.Extra.(*MapStorage)
	require.True(t, ok)
	var m map[string]string
	require.NoError(t, extra.ConvertTo(&m))
	assert.Equal(t, map[string]string{"k": "v"}, m)
}

func TestMapStorage_ConvertToErrors(t *testing.T) {
	s := NewMapStorage(map[string]any{"enabled": "maybe", "count": "many"})

	var v struct {
		Enabled bool `cfg:"enabled"`
	}
	assert.Error(t, s.ConvertTo(&v))

	var c struct {
		Count int `cfg:"count"`
	}
	assert.Error(t, s.ConvertTo(&c))

	assert.Error(t, s.ConvertTo(v))
	assert.Error(t, s.ConvertTo(nil))
}

func TestMapStorage_CaseInsensitive(t *testing.T) {
	s := NewMapStorage(map[string]any{"FilePath": "a.yaml", "Count": 3})

	var v struct {
		FilePath string `cfg:"filePath"`
		Count    int64
	}
	require.NoError(t, s.ConvertTo(&v))
	assert.Equal(t, "a.yaml", v.FilePath)
	assert.Equal(t, int64(3), v.Count)
}
