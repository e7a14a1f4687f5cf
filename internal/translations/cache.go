package translations

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"go.uber.org/zap"

	"uiforge/internal/storage"
	"uiforge/pkg/models"
)

var ErrInvalidLocale = storage.ErrInvalidLocale

// Source loads the key to text map of one locale.
type Source interface {
	Translations(ctx context.Context, locale string) (map[string]string, error)
}

// Cache holds one map per locale, filled on first use and kept until cleared.
type Cache struct {
	mu       sync.Mutex
	src      Source
	byLocale map[string]map[string]string
	logger   *zap.Logger
}

func NewCache(src Source, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		src:      src,
		byLocale: make(map[string]map[string]string),
		logger:   logger,
	}
}

func (c *Cache) load(ctx context.Context, locale string) (map[string]string, error) {
	if !models.IsLocale(locale) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocale, locale)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.byLocale[locale]; ok {
		return m, nil
	}
	m, err := c.src.Translations(ctx, locale)
	if err != nil {
		return nil, fmt.Errorf("load %s translations: %w", locale, err)
	}
	c.byLocale[locale] = m
	c.logger.Debug("translations cached", zap.String("locale", locale), zap.Int("keys", len(m)))
	return m, nil
}

// Get returns the cached text for key, else fallback, else key itself.
func (c *Cache) Get(ctx context.Context, key, locale, fallback string) (string, error) {
	m, err := c.load(ctx, locale)
	if err != nil {
		return "", err
	}
	if text := m[key]; text != "" {
		return text, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return key, nil
}

// All returns a copy of the locale's map.
func (c *Cache) All(ctx context.Context, locale string) (map[string]string, error) {
	m, err := c.load(ctx, locale)
	if err != nil {
		return nil, err
	}
	return maps.Clone(m), nil
}

func (c *Cache) Clear() {
	c.mu.Lock()
	clear(c.byLocale)
	c.mu.Unlock()
}

func (c *Cache) ClearLocale(locale string) {
	c.mu.Lock()
	delete(c.byLocale, locale)
	c.mu.Unlock()
}
