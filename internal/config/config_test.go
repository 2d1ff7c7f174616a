package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "treecached.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cacheCapacity: 8
defaultSummaryBatchSize: 3
databasePath: ":memory:"
oracle:
  provider: dummy
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.CacheCapacity)
	assert.Equal(t, 3, cfg.DefaultSummaryBatchSize)
	assert.Equal(t, "dummy", cfg.Oracle.Provider)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}

func TestValidate_RejectsZeroCapacity(t *testing.T) {
	cfg := Default()
	cfg.CacheCapacity = 0
	require.Error(t, cfg.Validate())
}

func TestValidate_RequiresApiKeyEnvForNonDummyProvider(t *testing.T) {
	cfg := Default()
	cfg.Oracle.Provider = "anthropic"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyEnv")
}

func TestValidate_AcceptsDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
}
