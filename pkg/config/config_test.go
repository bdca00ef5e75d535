package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8192, cfg.Stream.MaxBlockSize)
	assert.Equal(t, "jsonl", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Stream.MaxBlockSize = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Output.Format = "parquet"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Output.Format = "arrow"
	assert.Error(t, cfg.Validate(), "arrow output requires a file path")
	cfg.Output.Path = "out.arrow"
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("SNAPSHOT_PATH", "/data/cities.json")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
snapshot: ${SNAPSHOT_PATH}
stream:
  max_block_size: 4096
  columns: [id, name]
  strict_projection: true
output:
  format: arrow
  path: out.arrow
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := Default()
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, "/data/cities.json", cfg.Snapshot)
	assert.Equal(t, 4096, cfg.Stream.MaxBlockSize)
	assert.Equal(t, []string{"id", "name"}, cfg.Stream.Columns)
	assert.True(t, cfg.Stream.StrictProjection)
	assert.Equal(t, "arrow", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Snapshot = "snap.json"
	cfg.Stream.MaxBlockSize = 16
	// Populate the projection: yaml round-trips a nil slice as an empty
	// one, which a deep compare would flag.
	cfg.Stream.Columns = []string{"id", "name"}
	require.NoError(t, Save(path, cfg))

	loaded := &Config{}
	require.NoError(t, Load(path, loaded))
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	assert.Error(t, Load(filepath.Join(t.TempDir(), "nope.yaml"), &Config{}))
}
