package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/daeuniverse/daed-sub000/internal/format"
)

const messy = `dns{
upstream {
    googledns: 'tcp+udp://dns.google:53'
}
routing {
request {
   fallback: missing
}
}
}`

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"config.dae":       messy,
		"notes.txt":        "not a config",
		"sub/extra.dae":    "global {\n  log_level: info\n}\n",
		".hidden/skip.dae": "garbage {",
	}
	for name, text := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return dir
}

func TestCollect(t *testing.T) {
	dir := writeTree(t)

	sources, err := collect([]string{dir})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, filepath.Join(dir, "config.dae"), sources[0].Path)
	assert.Equal(t, filepath.Join(dir, "sub", "extra.dae"), sources[1].Path)

	sources, err = collect([]string{filepath.Join(dir, "notes.txt")})
	require.NoError(t, err)
	assert.Len(t, sources, 1, "explicit files are read whatever their extension")

	_, err = collect([]string{filepath.Join(dir, "missing.dae")})
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	problems := check(&out, []source{{Path: "config.dae", Text: messy}})
	assert.Equal(t, 1, problems)
	assert.Equal(t, "config.dae:7:14: warning: Undefined upstream: 'missing'\n", out.String())
}

func TestFormatSources(t *testing.T) {
	dir := writeTree(t)
	sources, err := collect([]string{dir})
	require.NoError(t, err)
	opts := format.Options{TabSize: 2, InsertSpaces: true}

	t.Run("list", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, formatSources(&out, sources, opts, false, true))
		assert.Equal(t, filepath.Join(dir, "config.dae")+"\n", out.String())
	})

	t.Run("write", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, formatSources(&out, sources, opts, true, false))
		assert.Empty(t, out.String())

		data, err := os.ReadFile(filepath.Join(dir, "config.dae"))
		require.NoError(t, err)
		assert.Equal(t, format.Format(messy, opts), string(data))
		assert.Contains(t, string(data), "      fallback: missing\n")
	})
}

func TestDump(t *testing.T) {
	sources := []source{{Path: "config.dae", Text: "node {\n  n1: 'ss://example'\n}\n"}}

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, dump(&out, sources, "json"))
		var dumps []fileDump
		require.NoError(t, json.Unmarshal(out.Bytes(), &dumps))
		require.Len(t, dumps, 1)
		assert.Len(t, dumps[0].Result.Symbols, 2)
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, dump(&out, sources, "yaml"))
		var dumps []map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &dumps))
		require.Len(t, dumps, 1)
		assert.Equal(t, "config.dae", dumps[0]["path"])
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, dump(&bytes.Buffer{}, sources, "xml"))
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "dae-lsp version "+Version+"\n", out.String())
}
