package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// OpenAI talks to any chat-completions endpoint that follows the OpenAI wire
// format.
type OpenAI struct {
	APIKey      string
	Model       string
	Temperature float64
	http        *resty.Client
}

func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration) *OpenAI {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &OpenAI{APIKey: apiKey, Model: model, Temperature: 0.7, http: c}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (o *OpenAI) Complete(ctx context.Context, messages []Message) (string, error) {
	var (
		resp   chatResponse
		errRes apiError
	)
	req := o.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: o.Model, Messages: messages, Temperature: o.Temperature}).
		SetResult(&resp).
		SetError(&errRes)
	if o.APIKey != "" {
		req.SetAuthToken(o.APIKey)
	}

	r, err := req.Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if r.IsError() {
		msg := errRes.Error.Message
		if msg == "" {
			msg = abbreviate(r.String(), 500)
		}
		return "", fmt.Errorf("%w: %s: %s", ErrProvider, r.Status(), msg)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrProvider)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
