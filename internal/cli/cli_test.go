package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiforge/internal/auth"
)

const sampleComponent = `export default function Hello() {
  return (
    <div>
      <h1>Hello World</h1>
      <input placeholder="Your email" />
    </div>
  );
}
`

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	body := "[storage]\nbackend = \"file\"\ndata_dir = \"" + filepath.ToSlash(filepath.Join(dir, "data")) + "\"\n\n" +
		"[logging]\nlevel = \"error\"\n\n" + extra
	path := filepath.Join(dir, "uiforge.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLocalizeCommandRewritesSource(t *testing.T) {
	cfgPath := writeConfig(t, "")
	src := filepath.Join(t.TempDir(), "Hello.tsx")
	require.NoError(t, os.WriteFile(src, []byte(sampleComponent), 0o644))

	out, err := run(t, "", "--config", cfgPath, "localize", src)
	require.NoError(t, err)
	assert.Contains(t, out, "const t = (key: string)")
	assert.Contains(t, out, "{t('hello.")
	assert.NotContains(t, out, "<h1>Hello World</h1>")
}

func TestLocalizeCommandJSONFromStdin(t *testing.T) {
	cfgPath := writeConfig(t, "")

	out, err := run(t, sampleComponent, "--config", cfgPath, "localize", "--json", "--name", "Greeting", "-")
	require.NoError(t, err)

	var res struct {
		Code           string            `json:"code"`
		ExtractedTexts []string          `json:"extractedTexts"`
		TextToKey      map[string]string `json:"textToKeyMap"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"Hello World", "Your email"}, res.ExtractedTexts)
	assert.Equal(t, "greeting.hello.world", res.TextToKey["Hello World"])
}

func TestLocalizeThenExport(t *testing.T) {
	cfgPath := writeConfig(t, "")
	_, err := run(t, sampleComponent, "--config", cfgPath, "localize", "--name", "Hello", "-")
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out", "en.json")
	out, err := run(t, "", "--config", cfgPath, "export", "--format", "json", "--locale", "en", "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "exported ")

	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"hello.hello.world": "Hello World"`)
}

func TestExportUnknownFormat(t *testing.T) {
	cfgPath := writeConfig(t, "")
	_, err := run(t, "", "--config", cfgPath, "export", "--format", "xml", "--out", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Run("requires secret", func(t *testing.T) {
		cfgPath := writeConfig(t, "")
		_, err := run(t, "", "--config", cfgPath, "token")
		require.Error(t, err)
	})

	t.Run("issues verifiable token", func(t *testing.T) {
		cfgPath := writeConfig(t, "[auth]\nsecret = \"s3cret\"\n")
		out, err := run(t, "", "--config", cfgPath, "token", "--subject", "alice")
		require.NoError(t, err)

		raw := strings.SplitN(out, "\n", 2)[0]
		claims, err := auth.NewTokenService("s3cret", "uiforge", 0).Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
	})
}
