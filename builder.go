// FILE: bbconfig/builder.go
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// ValidatorFunc defines the signature for a function that can validate a Config instance.
// It receives the fully loaded *Config object and should return an error if validation fails.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for building configurations
type Builder struct {
	opts       []Option
	file       string
	mirror     bool
	redis      *RedisConfig
	logger     zerolog.Logger
	defaults   any
	args       []string
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		file:       DefaultConfigFile,
		logger:     zerolog.Nop(),
		args:       os.Args[1:],
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithSource sets the line source the file path is opened with
func (b *Builder) WithSource(src LineSource) *Builder {
	b.opts = append(b.opts, WithSource(src))
	return b
}

// WithArgs sets the command-line arguments inspected by file discovery
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithMirror enables mirroring of the loaded table through the shared store
func (b *Builder) WithMirror(enabled bool) *Builder {
	b.mirror = enabled
	return b
}

// WithSharedStore injects the shared store used for mirroring
func (b *Builder) WithSharedStore(store SharedStore) *Builder {
	b.opts = append(b.opts, WithSharedStore(store))
	return b
}

// WithRedis mirrors through a Redis server at a fixed address instead of the
// address held in the configuration table
func (b *Builder) WithRedis(cfg RedisConfig) *Builder {
	b.redis = &cfg
	return b
}

// WithLogger sets the logger
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	b.opts = append(b.opts, WithLogger(logger))
	return b
}

// WithMirrorTimeout bounds each shared store call
func (b *Builder) WithMirrorTimeout(d time.Duration) *Builder {
	b.opts = append(b.opts, WithMirrorTimeout(d))
	return b
}

// WithMirrorRefreshInterval limits how often reads pull the shared snapshot
func (b *Builder) WithMirrorRefreshInterval(d time.Duration) *Builder {
	b.opts = append(b.opts, WithMirrorRefreshInterval(d))
	return b
}

// WithMetrics registers store counters with reg
func (b *Builder) WithMetrics(reg prometheus.Registerer) *Builder {
	b.opts = append(b.opts, WithMetrics(NewMetrics(reg)))
	return b
}

// WithDefaults sets values added for keys the file does not define.
// Accepts a map[string]any or a struct; see AddDefaults.
func (b *Builder) WithDefaults(defaults any) *Builder {
	b.defaults = defaults
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Config instance, loads the file and applies defaults and validators
func (b *Builder) Build() (*Config, error) {
	opts := append([]Option{}, b.opts...)
	if b.redis != nil {
		logger := b.logger.With().Str("component", "bbconfig").Logger()
		opts = append(opts, withOwnedSharedStore(NewRedisStore(*b.redis, logger)))
	}

	cfg := New(opts...)
	if err := cfg.Configure(b.file, false); err != nil {
		_ = cfg.Close()
		return nil, err
	}

	// Defaults join the table before the first push so the snapshot carries them
	if b.defaults != nil {
		if err := cfg.AddDefaults(b.defaults); err != nil {
			_ = cfg.Close()
			return nil, fmt.Errorf("failed to add defaults: %w", err)
		}
	}

	if b.mirror {
		if err := cfg.enableMirror(context.Background()); err != nil {
			_ = cfg.Close()
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			_ = cfg.Close()
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return cfg, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds and decodes the resolved configuration into target
func (b *Builder) BuildAndScan(target any) (*Config, error) {
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := cfg.Scan(target); err != nil {
		return nil, fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return cfg, nil
}
