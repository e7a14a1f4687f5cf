package localization

import (
	"regexp"
	"strings"
)

var bodyOpenPattern = regexp.MustCompile(`(?:function \w+\([^)]*\)|const \w+ = \([^)]*\) =>)\s*\{`)

const lookupMarker = "const t ="

// Rewrite swaps every localized literal in code for a t('key') call. When the
// source has no lookup function yet, one is inserted at the top of the first
// function body it recognizes, backed by an inline copy of m.
func Rewrite(code string, m KeyMap) string {
	if len(m) == 0 {
		return code
	}
	out := code
	if !strings.Contains(out, lookupMarker) {
		if loc := bodyOpenPattern.FindStringIndex(out); loc != nil {
			out = out[:loc[1]] + lookupFunction(m) + out[loc[1]:]
		}
	}

	for _, p := range m {
		quoted := regexp.QuoteMeta(p.Text)

		jsx := regexp.MustCompile(`>\s*` + quoted + `\s*<`)
		out = jsx.ReplaceAllLiteralString(out, ">{t('"+p.Key+"')}<")

		attr := regexp.MustCompile(`(?i)((?:placeholder|title|aria-label|alt)=)["']` + quoted + `["']`)
		out = attr.ReplaceAllString(out, "${1}{t('"+strings.ReplaceAll(p.Key, "$", "$$")+"')}")
	}
	return out
}

func lookupFunction(m KeyMap) string {
	literal, err := m.MarshalJSON()
	if err != nil {
		literal = []byte("{}")
	}
	var sb strings.Builder
	sb.WriteString("\n  // inline translation lookup\n")
	sb.WriteString("  const translations = ")
	sb.Write(literal)
	sb.WriteString(";\n")
	sb.WriteString("  const t = (key: string) => {\n")
	sb.WriteString("    const text = Object.keys(translations).find(k => translations[k] === key);\n")
	sb.WriteString("    return text || key;\n")
	sb.WriteString("  };\n")
	return sb.String()
}
