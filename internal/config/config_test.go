package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
listen: ":9090"
log_level: debug
metrics: false
collections:
  - path: library.books
    id_key: isbn
    merge: deep
  - path: notes
    id_key: id
`))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Metrics)
	require.Len(t, cfg.Collections, 2)
	assert.Equal(t, Collection{Path: "library.books", IDKey: "isbn", Merge: MergeDeep}, cfg.Collections[0])
	assert.Empty(t, cfg.Collections[1].Merge)
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown field", doc: "listne: x"},
		{name: "bad level", doc: "log_level: loud"},
		{name: "missing path", doc: "collections: [{id_key: id}]"},
		{name: "missing id key", doc: "collections: [{path: a}]"},
		{name: "bad merge", doc: "collections: [{path: a, id_key: id, merge: magic}]"},
		{name: "duplicate", doc: "collections: [{path: a, id_key: id}, {path: a, id_key: id}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "entitystore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":1\"\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":1", cfg.Listen)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCollection_Build(t *testing.T) {
	s, err := Collection{Path: "docs", IDKey: "id", Merge: MergeReplace}.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, "docs", s.Path())
	assert.Equal(t, "id", s.IDKey())
}
