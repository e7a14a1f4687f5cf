package localization

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"uiforge/internal/storage"
	"uiforge/pkg/models"
)

func newEngine(t *testing.T, ex Extractor) (*Engine, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemorySlot())
	t.Cleanup(func() { _ = store.Close() })
	return NewEngine(store, ex, nil), store
}

func entryByKey(t *testing.T, store *storage.Store, key string) (models.LocalizationEntry, bool) {
	t.Helper()
	entries, err := store.ListLocalizations(context.Background())
	require.NoError(t, err)
	for _, e := range entries {
		if e.Key == key {
			return e, true
		}
	}
	return models.LocalizationEntry{}, false
}

func TestLocalizeHelloWorld(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, store := newEngine(t, nil)

	code := "export default function Greeting() {\n  return <div>Hello World</div>;\n}"
	res, err := engine.Localize(ctx, code, "Component")
	require.NoError(t, err)

	require.Equal(t, []string{"Hello World"}, res.ExtractedTexts)
	require.Equal(t, KeyMap{{Text: "Hello World", Key: "hello.world"}}, res.TextToKey)
	require.Contains(t, res.Code, "{t('hello.world')}")
	require.NotContains(t, res.Code, "<div>Hello World</div>")

	e, ok := entryByKey(t, store, "hello.world")
	require.True(t, ok)
	require.Regexp(t, `^loc_\d+_[a-z0-9]{9}$`, e.ID)
	for _, locale := range models.Locales {
		require.Equal(t, "Hello World", e.Text(locale), locale)
	}
}

func TestLocalizeUsesComponentPrefix(t *testing.T) {
	t.Parallel()
	engine, store := newEngine(t, nil)

	res, err := engine.Localize(context.Background(), "function Login() {\n  return <button>Sign in now</button>;\n}", "LoginComponent")
	require.NoError(t, err)
	require.Equal(t, KeyMap{{Text: "Sign in now", Key: "login.sign.in.now"}}, res.TextToKey)

	_, ok := entryByKey(t, store, "login.sign.in.now")
	require.True(t, ok)
}

func TestLocalizeWithoutCandidates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, store := newEngine(t, nil)

	before, err := store.ListLocalizations(ctx)
	require.NoError(t, err)

	code := "function A() { return <div className=\"x\">{value}</div>; }"
	res, err := engine.Localize(ctx, code, "A")
	require.NoError(t, err)
	require.Equal(t, code, res.Code)
	require.Empty(t, res.ExtractedTexts)
	require.Empty(t, res.TextToKey)

	after, err := store.ListLocalizations(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestLocalizeToleratesExistingKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, store := newEngine(t, nil)

	// "Submit" collides with the seeded button.submit entry once prefixed
	res, err := engine.Localize(ctx, "function Button() {\n  return <button>Submit</button>;\n}", "Button")
	require.NoError(t, err)
	require.Equal(t, KeyMap{{Text: "Submit", Key: "button.submit"}}, res.TextToKey)
	require.Contains(t, res.Code, "{t('button.submit')}")

	e, ok := entryByKey(t, store, "button.submit")
	require.True(t, ok)
	require.Equal(t, "2", e.ID)
	require.Equal(t, "Enviar", e.ES)
}

func TestLocalizeSkipsTextWithoutKeyCharacters(t *testing.T) {
	t.Parallel()
	engine, _ := newEngine(t, nil)

	code := "function A() {\n  return <p>!!!</p>;\n}"
	res, err := engine.Localize(context.Background(), code, "")
	require.NoError(t, err)
	require.Equal(t, []string{"!!!"}, res.ExtractedTexts)
	require.Empty(t, res.TextToKey)
	require.Equal(t, code, res.Code)
}

func TestLocalizeSyntaxExtractor(t *testing.T) {
	t.Parallel()
	engine, _ := newEngine(t, SyntaxExtractor{})

	code := "function Cart() {\n  return <p>{count} items in cart</p>;\n}"
	res, err := engine.Localize(context.Background(), code, "")
	require.NoError(t, err)
	require.Equal(t, []string{"items in cart"}, res.ExtractedTexts)
	// the text is not a whole element body, so it stays put in the source
	require.True(t, strings.Contains(res.Code, "{count} items in cart"))
	require.Contains(t, res.Code, "const t =")
}

func TestLocalizeStoreFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	require.NoError(t, slot.Save(ctx, storage.DefaultKey, "not,an,image"))
	store := storage.New(slot)
	t.Cleanup(func() { _ = store.Close() })

	_, err := NewEngine(store, nil, nil).Localize(ctx, "<p>Hello there</p>", "")
	require.ErrorIs(t, err, storage.ErrEngine)
}
