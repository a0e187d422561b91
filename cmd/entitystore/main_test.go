package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "entitystore version")
}

func TestApplyCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "entitystore.yaml")
	script := filepath.Join(dir, "script.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("collections:\n  - path: notes\n    id_key: id\n"), 0o644))
	require.NoError(t, os.WriteFile(script, []byte("actions:\n  - type: \"[notes] add\"\n    payload: {id: n1, body: hi}\n"), 0o644))

	out, err := run(t, "apply", "--config", cfg, "--json", script)
	require.NoError(t, err)
	assert.Contains(t, out, `"n1"`)
	assert.Contains(t, out, `"body": "hi"`)
}

func TestApplyCommand_RequiresScript(t *testing.T) {
	_, err := run(t, "apply")
	assert.Error(t, err)
}
