package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"HTTP_PORT", "DB_PASSWORD", "KAFKA_BROKERS", "KAFKA_ENABLED", "PREVIEW_CACHE_TTL", "JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.PreviewTTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.InDelta(t, 1.0, cfg.Tracing.SampleRatio, 0)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("PREVIEW_CACHE_TTL", "30s")
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("KAFKA_ENABLED", "false")
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.HTTPAddr())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Redis.PreviewTTL)
	assert.True(t, cfg.Kafka.TLS)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 5432, cfg.DB.Port)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\nHTTP_PORT=7000\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("HTTP_PORT", "7100")
	// t.Setenv restores LOG_LEVEL after the test; godotenv sets it for real.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7100, cfg.HTTPPort, "process environment wins over .env")
}

func TestLoad_MalformedDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_PASSWORD=\"unterminated\n"), 0o600))
	t.Chdir(dir)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}

func TestValidate(t *testing.T) {
	valid := Config{
		DB:      DatabaseConfig{Password: "secret"},
		JWT:     JWTConfig{Secret: "jwt-secret"},
		Tracing: TracingConfig{SampleRatio: 0.5},
	}
	require.NoError(t, valid.Validate())

	missing := Config{Tracing: TracingConfig{SampleRatio: 2}, TLS: TLSConfig{Enabled: true}}
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "TLS_CERT_FILE")
	assert.Contains(t, err.Error(), "TRACING_SAMPLE_RATIO")
}
