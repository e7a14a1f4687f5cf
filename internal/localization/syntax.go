package localization

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

var userFacingAttrs = map[string]struct{}{
	"placeholder": {},
	"title":       {},
	"aria-label":  {},
	"alt":         {},
}

// SyntaxExtractor parses the source with the TSX grammar and collects
// jsx_text nodes and string values of the allow-listed attributes, in
// document order. Text interleaved with expressions is picked up piecewise.
type SyntaxExtractor struct{}

func (SyntaxExtractor) Extract(code string) ([]string, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsx.GetLanguage())

	content := []byte(code)
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse tsx: %w", err)
	}
	defer tree.Close()

	var set textSet
	stack := []*sitter.Node{tree.RootNode()}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Type() {
		case "jsx_text":
			set.add(strings.TrimSpace(n.Content(content)))
			continue
		case "jsx_attribute":
			if text, ok := attributeText(n, content); ok {
				set.add(text)
			}
			continue
		}

		// push in reverse so children pop in source order
		for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.NamedChild(i))
		}
	}
	return set.items(), nil
}

func attributeText(n *sitter.Node, content []byte) (string, bool) {
	if n.NamedChildCount() < 2 {
		return "", false
	}
	name := n.NamedChild(0).Content(content)
	if _, ok := userFacingAttrs[name]; !ok {
		return "", false
	}
	value := n.NamedChild(1)
	if value.Type() != "string" {
		return "", false
	}
	raw := value.Content(content)
	if len(raw) < 2 {
		return "", false
	}
	return strings.TrimSpace(raw[1 : len(raw)-1]), true
}
