package localization

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"
)

// Extractor finds user-facing literals in component source.
type Extractor interface {
	Extract(code string) ([]string, error)
}

// NewExtractor maps a config name to an Extractor. "" means regex.
func NewExtractor(kind string) (Extractor, error) {
	switch kind {
	case "", "regex":
		return RegexExtractor{}, nil
	case "syntax":
		return SyntaxExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", kind)
	}
}

var (
	// text between a closing '>' and the next '<' with no braces in it
	jsxTextPattern = regexp.MustCompile(`>([^<>{}]+)<`)
	attrPattern    = regexp.MustCompile(`(?:placeholder|title|aria-label|alt)=(?:"([^"\r\n]*)"|'([^'\r\n]*)')`)
)

// RegexExtractor scans JSX text runs first, then the allow-listed
// attributes.
type RegexExtractor struct{}

func (RegexExtractor) Extract(code string) ([]string, error) {
	var set textSet

	for _, m := range jsxTextPattern.FindAllStringSubmatch(code, -1) {
		text := strings.TrimSpace(m[1])
		if strings.HasPrefix(text, "{") {
			continue
		}
		set.add(text)
	}

	for _, m := range attrPattern.FindAllStringSubmatch(code, -1) {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		set.add(strings.TrimSpace(raw))
	}

	return set.items(), nil
}

// textSet keeps first-seen order and drops texts of one UTF-16 code unit or
// less, so a lone letter goes but a lone emoji stays.
type textSet struct {
	seen  map[string]struct{}
	order []string
}

func (s *textSet) add(text string) {
	if len(utf16.Encode([]rune(text))) <= 1 {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[text]; ok {
		return
	}
	s.seen[text] = struct{}{}
	s.order = append(s.order, text)
}

func (s *textSet) items() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
