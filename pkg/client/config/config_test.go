package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".polaroids.toml")

	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, Config{URL: DefaultURL}, config)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `url = "http://localhost:5000"`)
}

func TestStoreThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".polaroids.toml")

	require.NoError(t, Store(Config{URL: "https://album.example"}, path))
	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://album.example", config.URL)
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".polaroids.toml")
	require.NoError(t, os.WriteFile(path, []byte("url = "), 0600))

	_, err := Load(path)

	assert.Error(t, err)
}
