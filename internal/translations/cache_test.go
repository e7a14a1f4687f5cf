package translations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"uiforge/internal/storage"
)

type countingSource struct {
	calls map[string]int
	data  map[string]map[string]string
	err   error
}

func (s *countingSource) Translations(_ context.Context, locale string) (map[string]string, error) {
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[locale]++
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]string{}
	for k, v := range s.data[locale] {
		out[k] = v
	}
	return out, nil
}

func TestGetFallsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src := &countingSource{data: map[string]map[string]string{
		"es": {"nav.home": "Inicio", "nav.empty": ""},
	}}
	c := NewCache(src, nil)

	got, err := c.Get(ctx, "nav.home", "es", "Home")
	require.NoError(t, err)
	require.Equal(t, "Inicio", got)

	got, err = c.Get(ctx, "nav.empty", "es", "Empty")
	require.NoError(t, err)
	require.Equal(t, "Empty", got)

	got, err = c.Get(ctx, "nav.missing", "es", "")
	require.NoError(t, err)
	require.Equal(t, "nav.missing", got)

	require.Equal(t, 1, src.calls["es"])
}

func TestClearReloads(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src := &countingSource{}
	c := NewCache(src, nil)

	_, err := c.All(ctx, "en")
	require.NoError(t, err)
	_, err = c.All(ctx, "fr")
	require.NoError(t, err)

	c.ClearLocale("en")
	_, err = c.All(ctx, "en")
	require.NoError(t, err)
	_, err = c.All(ctx, "fr")
	require.NoError(t, err)
	require.Equal(t, 2, src.calls["en"])
	require.Equal(t, 1, src.calls["fr"])

	c.Clear()
	_, err = c.All(ctx, "fr")
	require.NoError(t, err)
	require.Equal(t, 2, src.calls["fr"])
}

func TestInvalidLocale(t *testing.T) {
	t.Parallel()
	src := &countingSource{}
	c := NewCache(src, nil)

	_, err := c.Get(context.Background(), "k", "pt", "")
	require.ErrorIs(t, err, ErrInvalidLocale)
	_, err = c.All(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidLocale)
	require.Empty(t, src.calls)
}

func TestSourceErrorIsNotCached(t *testing.T) {
	t.Parallel()
	src := &countingSource{err: errors.New("boom")}
	c := NewCache(src, nil)

	_, err := c.All(context.Background(), "de")
	require.Error(t, err)
	src.err = nil
	_, err = c.All(context.Background(), "de")
	require.NoError(t, err)
}

func TestAllReturnsCopy(t *testing.T) {
	t.Parallel()
	src := &countingSource{data: map[string]map[string]string{"en": {"a": "A"}}}
	c := NewCache(src, nil)

	m, err := c.All(context.Background(), "en")
	require.NoError(t, err)
	m["a"] = "changed"

	got, err := c.Get(context.Background(), "a", "en", "")
	require.NoError(t, err)
	require.Equal(t, "A", got)
}

func TestCacheOverStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.New(storage.NewMemorySlot())
	t.Cleanup(func() { _ = store.Close() })
	c := NewCache(store, nil)

	got, err := c.Get(ctx, "welcome.title", "de", "")
	require.NoError(t, err)
	require.Equal(t, "Willkommen in unserer App", got)

	require.NoError(t, store.UpdateLocalization(ctx, "1", "de", "Hallo"))
	got, err = c.Get(ctx, "welcome.title", "de", "")
	require.NoError(t, err)
	require.Equal(t, "Willkommen in unserer App", got)

	c.Clear()
	got, err = c.Get(ctx, "welcome.title", "de", "")
	require.NoError(t, err)
	require.Equal(t, "Hallo", got)
}

func TestLocales(t *testing.T) {
	t.Parallel()

	got := Locales()
	require.Len(t, got, 6)

	byCode := map[string]Locale{}
	for _, l := range got {
		byCode[l.Code] = l
	}
	require.Equal(t, "English", byCode["en"].Name)
	require.Equal(t, "Español", byCode["es"].Name)
	require.Equal(t, "Deutsch", byCode["de"].Name)
	require.Equal(t, "日本語", byCode["ja"].Name)
	require.Equal(t, "🇺🇸", byCode["en"].Flag)
	require.Equal(t, "🇯🇵", byCode["ja"].Flag)
	require.Equal(t, "🇨🇳", byCode["zh"].Flag)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	src := &countingSource{data: map[string]map[string]string{"fr": {"nav.home": "Accueil"}}}
	r := gin.New()
	NewHandler(NewCache(src, nil), nil).RegisterRoutes(&r.RouterGroup)

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/translations/fr", http.StatusOK, `{"success":true,"locale":"fr","translations":{"nav.home":"Accueil"}}`},
		{"/translations/fr/nav.home", http.StatusOK, `{"success":true,"locale":"fr","key":"nav.home","value":"Accueil"}`},
		{"/translations/fr/nav.gone?fallback=Gone", http.StatusOK, `{"success":true,"locale":"fr","key":"nav.gone","value":"Gone"}`},
		{"/translations/xx", http.StatusBadRequest, `{"success":false,"error":"Unsupported locale: xx"}`},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.Equal(t, tc.status, w.Code, tc.path)
		require.JSONEq(t, tc.body, w.Body.String(), tc.path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locales", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":"zh"`)
}
