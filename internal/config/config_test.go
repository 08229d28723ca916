package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
)

func TestNew(t *testing.T) {
	type Config struct {
		Log     config.Log
		HTTP    config.HTTP
		Session config.Session
		Upload  config.Upload
		Kafka   config.Kafka
		Otel    config.Otel
	}

	t.Run("Should apply defaults", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s3cret")

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.Equal(t, uint32(8000), cfg.HTTP.Port)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CorsOrigins)
		assert.Equal(t, config.SessionStorePostgres, cfg.Session.Store)
		assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
		assert.Equal(t, int64(5<<20), cfg.Upload.MaxFileSize)
		assert.Equal(t, 5, cfg.Upload.MaxFiles)
		assert.Equal(t, "/uploads", cfg.Upload.MountPath)
		assert.False(t, cfg.Kafka.Enabled())
		assert.False(t, cfg.Otel.Enabled())
		assert.Equal(t, "inventory-service", cfg.Otel.ServiceName)
		assert.Equal(t, "inventory-api", cfg.Log.AppName)
	})

	t.Run("Should parse enums case-insensitively", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s3cret")
		t.Setenv("SESSION_STORE", "redis")
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("KAFKA_ADDRESSES", "k1:9092,k2:9092")

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.SessionStoreRedis, cfg.Session.Store)
		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Addresses)
		assert.True(t, cfg.Kafka.Enabled())
	})

	t.Run("Should fail without session secret", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")

		_, err := config.New[Config]()
		assert.Error(t, err)
	})

	t.Run("Should reject unknown session store", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "s3cret")
		t.Setenv("SESSION_STORE", "etcd")

		_, err := config.New[Config]()
		assert.Error(t, err)
	})
}
