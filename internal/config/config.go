// Package config loads the pipeline configuration from YAML and applies
// defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls the orchestration layer. The processing core has no
// configuration beyond the worker count.
type Config struct {
	// Workers is the fan-out width for batch processing. <= 0 selects the
	// available hardware parallelism.
	Workers int `yaml:"workers"`

	// ErrorThreshold is the rejection count above which a batch triggers
	// an alert log line.
	ErrorThreshold int `yaml:"error_threshold"`

	// MetricsAddr, when set, exposes Prometheus metrics on this address.
	MetricsAddr string `yaml:"metrics_addr"`

	Follow FollowConfig `yaml:"follow"`
}

// FollowConfig tunes follow mode, which tails a file and processes it in
// fixed-size windows.
type FollowConfig struct {
	// WindowSize is the number of lines that forces a window flush.
	WindowSize int `yaml:"window_size"`

	// FlushInterval flushes a partial window after this much quiet time.
	// Duration string, e.g. "5s".
	FlushInterval string `yaml:"flush_interval"`
}

// Interval returns the parsed flush interval.
func (f FollowConfig) Interval() time.Duration {
	d, err := time.ParseDuration(f.FlushInterval)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

// Load reads the configuration from the given path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg)

	if _, err := time.ParseDuration(cfg.Follow.FlushInterval); err != nil {
		return Config{}, fmt.Errorf("invalid follow.flush_interval: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.ErrorThreshold <= 0 {
		cfg.ErrorThreshold = 100
	}
	if cfg.Follow.WindowSize <= 0 {
		cfg.Follow.WindowSize = 1000
	}
	if cfg.Follow.FlushInterval == "" {
		cfg.Follow.FlushInterval = "5s"
	}
}
