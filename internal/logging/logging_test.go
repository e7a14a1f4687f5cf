package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"uiforge/internal/config"
)

func TestNewWritesJSONAtLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := config.DefaultConfig().Logging
	cfg.Level = "warn"

	logger, err := NewWithSyncer(cfg, zapcore.AddSync(&buf))
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", zap.String("key", "welcome.title"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "kept", entry["msg"])
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "welcome.title", entry["key"])
	require.Contains(t, entry, "ts")
}

func TestNewRejectsBadLevel(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig().Logging
	cfg.Level = "chatty"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestRotatingWriter(t *testing.T) {
	t.Parallel()

	cfg := config.LoggingConfig{File: filepath.Join(t.TempDir(), "logs", "uiforge.log")}
	w, err := NewRotatingWriter(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	require.Equal(t, 10, w.MaxSize)
	require.Equal(t, 5, w.MaxBackups)

	_, err = NewRotatingWriter(config.LoggingConfig{})
	require.Error(t, err)
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(GinLogger(logger), GinRecovery(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	requests := logs.FilterMessage("request").All()
	require.Len(t, requests, 3)
	require.Equal(t, zapcore.InfoLevel, requests[0].Level)
	require.Equal(t, zapcore.WarnLevel, requests[1].Level)
	require.Equal(t, zapcore.ErrorLevel, requests[2].Level)
	require.Equal(t, int64(500), requests[2].ContextMap()["status"])

	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
