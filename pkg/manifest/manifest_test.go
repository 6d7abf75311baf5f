//go:build !integration

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(body), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"name": "com.example.tool",
		"version": "1.2.3",
		"type": "template",
		"author": {"name": "Example", "email": "dev@example.com"},
		"dependencies": {"com.unity.ugui": "1.0.0", "com.unity.addressables": "1.19.0"},
		"samples": [{"displayName": "Basic", "path": "Samples~/Basic"}]
	}`)

	m, err := Load(dir)
	require.NoError(t, err, "Valid manifest should load")

	assert.Equal(t, "com.example.tool", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	assert.Equal(t, "com.example.tool@1.2.3", m.ID())
	assert.Equal(t, dir, m.Path, "Path should be the package root")
	assert.True(t, m.IsTemplate())
	require.NotNil(t, m.Author)
	assert.Equal(t, "Example", m.Author.Name)
	assert.False(t, m.Author.FromString)
	assert.Equal(t, []string{"com.unity.addressables@1.19.0", "com.unity.ugui@1.0.0"}, m.SortedDependencies())
	require.Len(t, m.Samples, 1)
	assert.Equal(t, "Samples~/Basic", m.Samples[0].Path)
}

func TestParse_AuthorString(t *testing.T) {
	m, err := Parse([]byte(`{"name": "a", "version": "1.0.0", "author": "Example <dev@example.com>"}`))
	require.NoError(t, err)
	require.NotNil(t, m.Author)
	assert.True(t, m.Author.FromString, "String author should be flagged")
	assert.Equal(t, "Example <dev@example.com>", m.Author.Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "invalid JSON", body: `{"name": `, wantErr: "invalid JSON"},
		{name: "version is a number", body: `{"name": "a", "version": 1}`, wantErr: "expected shape"},
		{name: "dependencies with numbers", body: `{"name": "a", "version": "1.0.0", "dependencies": {"b": 2}}`, wantErr: "expected shape"},
		{name: "manifest is an array", body: `[]`, wantErr: "expected shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.body)
			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	require.ErrorIs(t, err, ErrNotFound, "Missing package.json should wrap ErrNotFound")
}
