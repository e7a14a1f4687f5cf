package assistant

import (
	"regexp"
	"strings"
)

var (
	fencePattern = regexp.MustCompile("```(?:tsx?|jsx?|react)?\\n([\\s\\S]*?)\\n```")
	namePattern  = regexp.MustCompile(`(?:function|const)\s+(\w+)`)
)

// ExtractCode returns the body of the last fenced block in text when it looks
// like component source.
func ExtractCode(text string) (string, bool) {
	matches := fencePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	code := matches[len(matches)-1][1]
	if !strings.Contains(code, "export default") &&
		!strings.Contains(code, "function") &&
		!strings.Contains(code, "const") {
		return "", false
	}
	return code, true
}

// ComponentName is the first function or const name declared in code.
func ComponentName(code string) string {
	m := namePattern.FindStringSubmatch(code)
	if m == nil {
		return ""
	}
	return m[1]
}
