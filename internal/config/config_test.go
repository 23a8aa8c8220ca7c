package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  addr: "9090"
api:
  base_url: "http://creative-api:8000"
  timeout: 15s
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
  events_topic: "edits"
worker:
  concurrency: 8
editor:
  refresh_attempts: 5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Addr)
	assert.Equal(t, "http://creative-api:8000", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "edits", cfg.Kafka.EventsTopic)
	assert.Equal(t, 8, cfg.Worker.Concurrency)

	assert.Equal(t, 2*time.Second, cfg.API.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.API.PollBackoff)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 20.0, cfg.API.RateLimit)
	assert.Equal(t, 32, cfg.Editor.ImageCacheSize)

	refresh := cfg.RefreshRetryStrategy()
	assert.Equal(t, 5, refresh.Attempts)
	assert.Equal(t, time.Second, refresh.Delay)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://env-api")
	t.Setenv("KAFKA_BROKERS", "a:1,b:2")
	t.Setenv("RETRY_ATTEMPTS", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://env-api", cfg.API.BaseURL)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
	assert.Equal(t, 7, cfg.DefaultRetryStrategy().Attempts)
	assert.Equal(t, "8080", cfg.Server.Addr)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("worker:\n  concurrency: -1\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
