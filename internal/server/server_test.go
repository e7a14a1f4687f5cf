package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"uiforge/internal/config"
)

func newApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "memory"
	if mutate != nil {
		mutate(&cfg)
	}
	app, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func request(t *testing.T, h http.Handler, method, path, body, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestGenerateSaveLocalizeTranslate(t *testing.T) {
	app := newApp(t, nil)
	r := app.Router

	status, body := request(t, r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])

	status, gen := request(t, r, http.MethodPost, "/generate", `{"prompt":"a welcome card"}`, "")
	require.Equal(t, http.StatusOK, status)
	name, code := gen["name"].(string), gen["code"].(string)
	require.Equal(t, "WelcomeCard", name)

	payload, err := json.Marshal(map[string]string{"name": name, "code": code})
	require.NoError(t, err)
	status, created := request(t, r, http.MethodPost, "/components", string(payload), "")
	require.Equal(t, http.StatusOK, status)
	id := created["id"].(string)

	payload, err = json.Marshal(map[string]string{"name": name, "code": code})
	require.NoError(t, err)
	status, loc := request(t, r, http.MethodPost, "/localize", string(payload), "")
	require.Equal(t, http.StatusOK, status)
	keys := loc["textToKeyMap"].(map[string]any)
	require.Equal(t, "welcomecard.glad.to.have.you", keys["Glad to have you here"])

	payload, err = json.Marshal(map[string]string{"code": loc["code"].(string)})
	require.NoError(t, err)
	status, _ = request(t, r, http.MethodPut, "/components/"+id, string(payload), "")
	require.Equal(t, http.StatusOK, status)

	status, comp := request(t, r, http.MethodGet, "/components/"+id, "", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, comp["component"].(map[string]any)["code"], "{t('welcomecard.glad.to.have.you')}")

	status, tr := request(t, r, http.MethodGet, "/translations/ja/welcomecard.glad.to.have.you", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Glad to have you here", tr["value"])

	status, _ = request(t, r, http.MethodGet, "/translations/pt", "", "")
	require.Equal(t, http.StatusBadRequest, status)
}

func TestWritesRequireTokenWhenSecretSet(t *testing.T) {
	app := newApp(t, func(c *config.Config) { c.Auth.Secret = "secret" })
	r := app.Router

	status, _ := request(t, r, http.MethodPost, "/components", `{"name":"A","code":"x"}`, "")
	require.Equal(t, http.StatusUnauthorized, status)
	status, _ = request(t, r, http.MethodPost, "/localize", `{"code":"<p>Hi there</p>"}`, "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = request(t, r, http.MethodGet, "/components", "", "")
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, r, http.MethodGet, "/localizations", "", "")
	require.Equal(t, http.StatusOK, status)

	token, _, err := NewTokenService(app.Config.Auth).Sign("editor")
	require.NoError(t, err)
	status, _ = request(t, r, http.MethodPost, "/components", `{"name":"A","code":"x"}`, token)
	require.Equal(t, http.StatusOK, status)
}

func TestNewSlotBackends(t *testing.T) {
	for _, backend := range []string{"memory", "file", "redis"} {
		cfg := config.DefaultConfig().Storage
		cfg.Backend = backend
		cfg.DataDir = t.TempDir()
		slot, closeFn, err := NewSlot(cfg)
		require.NoError(t, err, backend)
		require.NotNil(t, slot, backend)
		require.NoError(t, closeFn(), backend)
	}

	_, _, err := NewSlot(config.StorageConfig{Backend: "s3"})
	require.Error(t, err)
}
