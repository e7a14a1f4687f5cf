package localization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteInsertsLookupAndReplacesText(t *testing.T) {
	t.Parallel()

	code := "function Greeting() {\n  return <h1> Hello World </h1>;\n}"
	out := Rewrite(code, KeyMap{{Text: "Hello World", Key: "hello.world"}})

	require.Contains(t, out, "<h1>{t('hello.world')}</h1>")
	require.Contains(t, out, `const translations = {"Hello World":"hello.world"};`)
	require.Contains(t, out, "const t = (key: string) => {")
	require.True(t, strings.HasPrefix(out, "function Greeting() {\n  // inline translation lookup\n"))
	require.NotContains(t, out, "> Hello World <")
}

func TestRewriteArrowComponent(t *testing.T) {
	t.Parallel()

	code := "const Card = ({ title }) => {\n  return <input placeholder=\"Your email\" TITLE='your email' className=\"Your email\" />;\n};"
	out := Rewrite(code, KeyMap{{Text: "Your email", Key: "card.your.email"}})

	idx := strings.Index(out, "const Card = ({ title }) => {")
	require.Equal(t, 0, idx)
	require.Contains(t, out, "placeholder={t('card.your.email')}")
	require.Contains(t, out, "TITLE={t('card.your.email')}")
	require.Contains(t, out, `className="Your email"`)
}

func TestRewriteKeepsExistingLookup(t *testing.T) {
	t.Parallel()

	code := "function A() {\n  const t = useT();\n  return <p>Thanks a lot</p>;\n}"
	out := Rewrite(code, KeyMap{{Text: "Thanks a lot", Key: "thanks.a.lot"}})

	require.Equal(t, "function A() {\n  const t = useT();\n  return <p>{t('thanks.a.lot')}</p>;\n}", out)
}

func TestRewriteWithoutFunctionBody(t *testing.T) {
	t.Parallel()

	out := Rewrite("<p>Just markup</p>", KeyMap{{Text: "Just markup", Key: "just.markup"}})
	require.Equal(t, "<p>{t('just.markup')}</p>", out)
}

func TestRewriteEscapesPatternText(t *testing.T) {
	t.Parallel()

	code := "<p>Cost (USD) $5.00?</p><p>Cost xUSDx $5a00?</p>"
	out := Rewrite(code, KeyMap{{Text: "Cost (USD) $5.00?", Key: "cost.usd.500"}})
	require.Equal(t, "<p>{t('cost.usd.500')}</p><p>Cost xUSDx $5a00?</p>", out)
}

func TestRewriteEmptyMap(t *testing.T) {
	t.Parallel()

	code := "function A() { return <p>Hi</p>; }"
	require.Equal(t, code, Rewrite(code, nil))
}
