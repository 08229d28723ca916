package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/log"
	"github.com/tuanvumaihuynh/inventory-service/internal/session"
	"github.com/tuanvumaihuynh/inventory-service/pkg/correlationid"
)

func TestNew(t *testing.T) {
	t.Run("Should enrich JSON records with correlation id", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}, &buf)

		ctx := correlationid.NewContext(context.Background(), "req-1")
		logger.With(slog.String("service", "http")).InfoContext(ctx, "hello")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "req-1", rec["correlation_id"])
		assert.Equal(t, "http", rec["service"])
		assert.NotContains(t, rec, "trace_id")
		assert.NotContains(t, rec, "user_id")
	})

	t.Run("Should stamp the session user and app name", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(config.Log{AppName: "inventory-api", Format: config.LogFormatJSON}, &buf)

		userID := uuid.Must(uuid.NewV7())
		logger.InfoContext(session.NewContext(context.Background(), userID), "product added")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, userID.String(), rec["user_id"])
		assert.Equal(t, "inventory-api", rec["app"])
	})

	t.Run("Should honour level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(config.Log{Format: config.LogFormatText, Level: slog.LevelWarn}, &buf)

		logger.Info("dropped")
		assert.Empty(t, buf.String())

		logger.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})
}
