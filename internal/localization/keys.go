package localization

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

var nonKeyChars = regexp.MustCompile(`[^a-z0-9\p{Z}\s]`)

const maxKeyWords = 4

// GenerateKey derives a dotted key from the first four words of text:
// "Welcome to our App" becomes "welcome.to.our.app". It returns "" when
// nothing key-worthy is left after stripping.
func GenerateKey(text, prefix string) string {
	words := strings.Fields(nonKeyChars.ReplaceAllString(strings.ToLower(text), ""))
	if len(words) == 0 {
		return ""
	}
	if len(words) > maxKeyWords {
		words = words[:maxKeyWords]
	}
	key := strings.Join(words, ".")
	if prefix != "" {
		return prefix + "." + key
	}
	return key
}

// Prefix is the key namespace for a component name: lower-cased with a
// trailing "component" removed.
func Prefix(componentName string) string {
	return strings.TrimSuffix(strings.ToLower(componentName), "component")
}

type Pair struct {
	Text string
	Key  string
}

// KeyMap is an insertion-ordered text to key mapping.
type KeyMap []Pair

// MarshalJSON writes a JSON object in insertion order.
func (m KeyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(p.Text); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(p.Key); err != nil {
			return nil, err
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}
