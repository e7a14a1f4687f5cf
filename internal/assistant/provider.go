package assistant

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var ErrProvider = errors.New("assistant: provider failed")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider completes a chat transcript with the next assistant reply.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

const SystemPrompt = `You build React components with TypeScript and Tailwind CSS.
Answer with a short explanation followed by exactly one fenced tsx code block.
The block must contain a single self-contained component exported with
"export default function Name()". Do not import anything except React.`
