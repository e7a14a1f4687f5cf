package localization

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"uiforge/internal/storage"
	"uiforge/pkg/models"
)

type Result struct {
	Code           string   `json:"code"`
	ExtractedTexts []string `json:"extractedTexts"`
	TextToKey      KeyMap   `json:"textToKeyMap"`
}

type Engine struct {
	Store     *storage.Store
	Extractor Extractor
	Logger    *zap.Logger
}

func NewEngine(store *storage.Store, ex Extractor, logger *zap.Logger) *Engine {
	if ex == nil {
		ex = RegexExtractor{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Store: store, Extractor: ex, Logger: logger}
}

// Localize extracts literals from code, records a pending entry per key and
// returns the rewritten source. Source without candidates comes back as is.
//
// A key that already exists is kept as is; the text still maps to it.
func (e *Engine) Localize(ctx context.Context, code, componentName string) (*Result, error) {
	texts, err := e.Extractor.Extract(code)
	if err != nil {
		return nil, fmt.Errorf("extract texts: %w", err)
	}
	if len(texts) == 0 {
		return &Result{Code: code, ExtractedTexts: []string{}, TextToKey: KeyMap{}}, nil
	}

	prefix := Prefix(componentName)
	m := make(KeyMap, 0, len(texts))
	for _, text := range texts {
		key := GenerateKey(text, prefix)
		if key == "" {
			e.Logger.Debug("skip text without key characters", zap.String("text", text))
			continue
		}
		m = append(m, Pair{Text: text, Key: key})

		entry := models.Uniform(storage.NewID("loc"), key, text)
		if err := e.Store.CreateLocalization(ctx, entry); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				e.Logger.Info("localization key already exists", zap.String("key", key))
				continue
			}
			return nil, fmt.Errorf("create localization %q: %w", key, err)
		}
	}

	e.Logger.Info("localized component",
		zap.String("component", componentName),
		zap.Int("texts", len(texts)),
		zap.Int("keys", len(m)),
	)
	return &Result{
		Code:           Rewrite(code, m),
		ExtractedTexts: texts,
		TextToKey:      m,
	}, nil
}
