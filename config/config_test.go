package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/slashsum/chunk"
	"github.com/byte4ever/slashsum/config"
	"github.com/byte4ever/slashsum/digest"
	"github.com/byte4ever/slashsum/pipeline"
	"github.com/byte4ever/slashsum/report"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	pa := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(pa, []byte(body), 0o600))

	return pa
}

func noFile(string) (string, error) {
	return "", errors.New("not found")
}

func TestDefault_resolves_to_builtin_settings(t *testing.T) {
	t.Parallel()

	s, err := config.Default().Resolve()

	require.NoError(t, err)
	assert.Equal(t, chunk.DefaultSize, s.ChunkSize)
	assert.Equal(t, pipeline.DefaultQueueCapacity, s.QueueCapacity)
	assert.Equal(t, digest.DefaultAlgorithms(), s.Algorithms)
	assert.Equal(t, report.FormatText, s.Format)
	assert.Equal(t, slog.LevelWarn, s.LogLevel)
}

func TestParse_overrides_defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(
		"chunk_size: 256k\n" +
			"algorithms: [sha256, BLAKE3, xxh3]\n" +
			"format: json\n",
	))
	require.NoError(t, err)

	s, err := cfg.Resolve()
	require.NoError(t, err)

	assert.Equal(t, 256*1024, s.ChunkSize)
	assert.Equal(t, pipeline.DefaultQueueCapacity, s.QueueCapacity)
	assert.Equal(t,
		[]digest.Algorithm{digest.SHA256, digest.BLAKE3, digest.XXH3},
		s.Algorithms,
	)
	assert.Equal(t, report.FormatJSON, s.Format)
}

func TestParse_empty_document(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(nil)

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_rejects_unknown_key(t *testing.T) {
	t.Parallel()

	_, err := config.Parse([]byte("chunk_sise: 1MiB\n"))

	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestResolve_rejects_out_of_range_values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"zero chunk", func(c *config.Config) { c.ChunkSize = "0" }, "chunk_size"},
		{"huge chunk", func(c *config.Config) { c.ChunkSize = "1GiB" }, "chunk_size"},
		{"garbage chunk", func(c *config.Config) { c.ChunkSize = "lots" }, "chunk_size"},
		{"zero queue", func(c *config.Config) { c.QueueCapacity = 0 }, "queue_capacity"},
		{"no algorithms", func(c *config.Config) { c.Algorithms = nil }, "algorithms"},
		{"unknown algorithm", func(c *config.Config) { c.Algorithms = []string{"md4"} }, "algorithms"},
		{"duplicate algorithm", func(c *config.Config) { c.Algorithms = []string{"md5", "MD5"} }, "algorithms"},
		{"unknown format", func(c *config.Config) { c.Format = "xml" }, "format"},
		{"unknown level", func(c *config.Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(&cfg)

			_, err := cfg.Resolve()

			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_without_file_uses_defaults(t *testing.T) {
	t.Parallel()

	s, path, err := config.DiscoverForTest(
		func(string) string { return "" }, noFile,
	)

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, chunk.DefaultSize, s.ChunkSize)
}

func TestDiscover_prefers_env_path(t *testing.T) {
	t.Parallel()

	pa := writeConfig(t, "queue_capacity: 4\n")
	xdgPath := writeConfig(t, "queue_capacity: 99\n")

	env := map[string]string{config.EnvConfig: pa}

	s, path, err := config.DiscoverForTest(
		func(k string) string { return env[k] },
		func(string) (string, error) { return xdgPath, nil },
	)

	require.NoError(t, err)
	assert.Equal(t, pa, path)
	assert.Equal(t, 4, s.QueueCapacity)
}

func TestDiscover_falls_back_to_xdg(t *testing.T) {
	t.Parallel()

	xdgPath := writeConfig(t, "log_level: info\n")

	var asked string

	s, path, err := config.DiscoverForTest(
		func(string) string { return "" },
		func(rel string) (string, error) {
			asked = rel
			return xdgPath, nil
		},
	)

	require.NoError(t, err)
	assert.Equal(t, config.RelPath, asked)
	assert.Equal(t, xdgPath, path)
	assert.Equal(t, slog.LevelInfo, s.LogLevel)
}

func TestDiscover_env_log_level_wins(t *testing.T) {
	t.Parallel()

	pa := writeConfig(t, "log_level: error\n")
	env := map[string]string{
		config.EnvConfig:   pa,
		config.EnvLogLevel: "debug",
	}

	s, _, err := config.DiscoverForTest(
		func(k string) string { return env[k] }, noFile,
	)

	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
}

func TestDiscover_broken_file_is_fatal(t *testing.T) {
	t.Parallel()

	pa := writeConfig(t, "algorithms: [md5, nope]\n")
	env := map[string]string{config.EnvConfig: pa}

	_, _, err := config.DiscoverForTest(
		func(k string) string { return env[k] }, noFile,
	)

	assert.ErrorIs(t, err, config.ErrInvalid)
}
