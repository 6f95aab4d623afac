package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Zero(t, cfg.Workers)
	assert.Equal(t, 100, cfg.ErrorThreshold)
	assert.Equal(t, 1000, cfg.Follow.WindowSize)
	assert.Equal(t, 5*time.Second, cfg.Follow.Interval())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfold.yaml")
	data := []byte(`
workers: 8
error_threshold: 25
metrics_addr: ":9114"
follow:
  window_size: 500
  flush_interval: 2s
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 25, cfg.ErrorThreshold)
	assert.Equal(t, ":9114", cfg.MetricsAddr)
	assert.Equal(t, 500, cfg.Follow.WindowSize)
	assert.Equal(t, 2*time.Second, cfg.Follow.Interval())
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfold.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 100, cfg.ErrorThreshold)
	assert.Equal(t, 1000, cfg.Follow.WindowSize)
}

func TestLoad_BadInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logfold.yaml")
	require.NoError(t, os.WriteFile(path, []byte("follow:\n  flush_interval: soon\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
