package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/adrg/xdg"
	units "github.com/docker/go-units"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/slashsum/chunk"
	"github.com/byte4ever/slashsum/digest"
	"github.com/byte4ever/slashsum/pipeline"
	"github.com/byte4ever/slashsum/report"
)

const (
	// EnvConfig names the variable holding an explicit config path.
	EnvConfig = "SLASHSUM_CONFIG"

	// EnvLogLevel names the variable overriding log_level.
	EnvLogLevel = "SLASHSUM_LOG_LEVEL"

	// RelPath is the config file location under the XDG config dirs.
	RelPath = "slashsum/config.yaml"
)

// ErrInvalid is returned for unreadable, malformed or out-of-range
// configuration.
var ErrInvalid = errors.New("invalid configuration")

// Config mirrors the YAML file.
type Config struct {
	// ChunkSize is a human size such as "1MiB" or "256k".
	ChunkSize     string   `yaml:"chunk_size"`
	QueueCapacity int      `yaml:"queue_capacity"`
	Algorithms    []string `yaml:"algorithms"`
	Format        string   `yaml:"format"`
	LogLevel      string   `yaml:"log_level"`
}

// Settings is a validated Config.
type Settings struct {
	ChunkSize     int
	QueueCapacity int
	Algorithms    []digest.Algorithm
	Format        report.Format
	LogLevel      slog.Level
}

// Default returns the configuration used when no file is found.
func Default() Config {
	algs := digest.DefaultAlgorithms()
	names := make([]string, len(algs))

	for i, alg := range algs {
		names[i] = alg.String()
	}

	return Config{
		ChunkSize:     units.BytesSize(float64(chunk.DefaultSize)),
		QueueCapacity: pipeline.DefaultQueueCapacity,
		Algorithms:    names,
		Format:        string(report.FormatText),
		LogLevel:      slog.LevelWarn.String(),
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	const errCtx = "parsing config"

	cfg := Default()

	err := yaml.UnmarshalWithOptions(
		data, &cfg, yaml.DisallowUnknownField(),
	)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", errCtx, ErrInvalid, err)
	}

	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	const errCtx = "loading config"

	data, err := os.ReadFile(path) //nolint:gosec // path from env or XDG dirs
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", errCtx, ErrInvalid, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return cfg, nil
}

// Discover loads the first config file found, applies environment
// overrides and resolves the result. It also returns the path of the
// file used, empty when running on defaults.
func Discover() (Settings, string, error) {
	return discover(os.Getenv, xdg.SearchConfigFile)
}

func discover(
	getenv func(string) string,
	search func(relPath string) (string, error),
) (Settings, string, error) {
	const errCtx = "discovering config"

	path := getenv(EnvConfig)

	if path == "" {
		// SearchConfigFile fails when no candidate exists.
		if found, err := search(RelPath); err == nil {
			path = found
		}
	}

	cfg := Default()

	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Settings{}, "", fmt.Errorf("%s: %w", errCtx, err)
		}

		cfg = loaded
	}

	if lvl := getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	settings, err := cfg.Resolve()
	if err != nil {
		return Settings{}, "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return settings, path, nil
}

// Resolve validates c and converts it to Settings.
func (c Config) Resolve() (Settings, error) {
	const errCtx = "resolving config"

	invalid := func(field string, err error) error {
		return fmt.Errorf("%s: %w: %s: %w", errCtx, ErrInvalid, field, err)
	}

	var s Settings

	size, err := units.RAMInBytes(strings.TrimSpace(c.ChunkSize))
	if err != nil {
		return Settings{}, invalid("chunk_size", err)
	}

	if size > chunk.MaxSize {
		return Settings{}, invalid(
			"chunk_size", fmt.Errorf("%w: %d", chunk.ErrInvalidSize, size),
		)
	}

	s.ChunkSize = int(size)

	if err := chunk.ValidateSize(s.ChunkSize); err != nil {
		return Settings{}, invalid("chunk_size", err)
	}

	if c.QueueCapacity < 1 {
		return Settings{}, invalid(
			"queue_capacity",
			fmt.Errorf("must be at least 1, got %d", c.QueueCapacity),
		)
	}

	s.QueueCapacity = c.QueueCapacity

	if len(c.Algorithms) == 0 {
		return Settings{}, invalid(
			"algorithms", errors.New("at least one is required"),
		)
	}

	if s.Algorithms, err = digest.ParseList(c.Algorithms); err != nil {
		return Settings{}, invalid("algorithms", err)
	}

	if s.Format, err = report.ParseFormat(c.Format); err != nil {
		return Settings{}, invalid("format", err)
	}

	if err := s.LogLevel.UnmarshalText(
		[]byte(strings.TrimSpace(c.LogLevel)),
	); err != nil {
		return Settings{}, invalid("log_level", err)
	}

	return s, nil
}
