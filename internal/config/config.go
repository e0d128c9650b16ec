// Package config loads engine and service settings from defaults, an optional
// YAML file, a .env file and SCOREFOUR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/hailam/scorefour/internal/board"
	"github.com/hailam/scorefour/internal/engine"
)

// EnvPrefix is the prefix of environment overrides, e.g. SCOREFOUR_MOVE_TIME=1500ms.
const EnvPrefix = "SCOREFOUR"

// Bounds accepted by Validate.
const (
	MaxTTSizeMB = 4096
)

var ErrInvalid = errors.New("invalid config")

// Config holds all runtime settings.
type Config struct {
	MoveTime       time.Duration `mapstructure:"move_time"`
	MaxDepth       int           `mapstructure:"max_depth"`
	TTSizeMB       int           `mapstructure:"tt_size_mb"`
	LogLevel       string        `mapstructure:"log_level"`
	DataDir        string        `mapstructure:"data_dir"` // Empty: platform data directory
	StoreDecisions bool          `mapstructure:"store_decisions"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MoveTime:       engine.DefaultMoveTime,
		MaxDepth:       engine.DefaultMaxDepth,
		TTSizeMB:       16,
		LogLevel:       "info",
		StoreDecisions: true,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("move_time", d.MoveTime)
	v.SetDefault("max_depth", d.MaxDepth)
	v.SetDefault("tt_size_mb", d.TTSizeMB)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("store_decisions", d.StoreDecisions)
}

// Load reads the configuration. path names an optional YAML file; an empty
// path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		log.Debug().Msg("no .env file found")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("config file loaded")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	if c.MoveTime <= 0 {
		return fmt.Errorf("%w: move_time must be positive, got %s", ErrInvalid, c.MoveTime)
	}
	if c.MaxDepth < 1 || c.MaxDepth > board.NumSquares {
		return fmt.Errorf("%w: max_depth must be in 1..%d, got %d", ErrInvalid, board.NumSquares, c.MaxDepth)
	}
	if c.TTSizeMB < 1 || c.TTSizeMB > MaxTTSizeMB {
		return fmt.Errorf("%w: tt_size_mb must be in 1..%d, got %d", ErrInvalid, MaxTTSizeMB, c.TTSizeMB)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the zerolog level named by LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return lvl, nil
}

// Limits returns the search limits for the engine.
func (c *Config) Limits() engine.SearchLimits {
	return engine.SearchLimits{Depth: c.MaxDepth, MoveTime: c.MoveTime}
}
