package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"uiforge/pkg/models"
)

var localizationColumns = []string{"id", "key", "en", "es", "fr", "de", "ja", "zh", "created_at", "updated_at"}

// localizationFields are the only columns UpdateLocalization accepts.
var localizationFields = map[string]struct{}{
	"key": {}, "en": {}, "es": {}, "fr": {}, "de": {}, "ja": {}, "zh": {},
}

func localizationValues(e models.LocalizationEntry, now time.Time) []any {
	return []any{e.ID, e.Key, e.EN, e.ES, e.FR, e.DE, e.JA, e.ZH, fmtTime(now), fmtTime(now)}
}

func scanLocalization(row rowScanner) (models.LocalizationEntry, error) {
	var (
		e                      models.LocalizationEntry
		en, es, fr, de, ja, zh sql.NullString
		created, updated       string
	)
	if err := row.Scan(&e.ID, &e.Key, &en, &es, &fr, &de, &ja, &zh, &created, &updated); err != nil {
		return e, err
	}
	e.EN, e.ES, e.FR, e.DE, e.JA, e.ZH = en.String, es.String, fr.String, de.String, ja.String, zh.String

	var err error
	if e.CreatedAt, err = parseTime(created); err != nil {
		return e, err
	}
	if e.UpdatedAt, err = parseTime(updated); err != nil {
		return e, err
	}
	return e, nil
}

// ListLocalizations returns every entry ordered by key.
func (s *Store) ListLocalizations(ctx context.Context) ([]models.LocalizationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return nil, err
	}

	sqlStr, args, err := s.sq.Select(localizationColumns...).From("localizations").OrderBy("key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list localizations: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list localizations: %v", ErrEngine, err)
	}
	defer rows.Close()

	out := make([]models.LocalizationEntry, 0)
	for rows.Next() {
		e, err := scanLocalization(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan localization: %v", ErrEngine, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows err: %v", ErrEngine, err)
	}
	return out, nil
}

// CreateLocalization inserts e. A clash on id or key yields ErrDuplicateKey.
func (s *Store) CreateLocalization(ctx context.Context, e models.LocalizationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return err
	}

	sqlStr, args, err := s.sq.Insert("localizations").
		Columns(localizationColumns...).
		Values(localizationValues(e, s.now().UTC())...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create localization: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create localization %q: %w", e.Key, ErrDuplicateKey)
		}
		s.logger.Error("create localization", zap.String("key", e.Key), zap.Error(err))
		return fmt.Errorf("%w: create localization: %v", ErrEngine, err)
	}
	return s.persistLocked(ctx)
}

// UpdateLocalization sets a single column. field must be "key" or a locale.
func (s *Store) UpdateLocalization(ctx context.Context, id, field, value string) error {
	if _, ok := localizationFields[field]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return err
	}

	prev, found, err := s.updatedAtLocked(ctx, "localizations", id)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	sqlStr, args, err := s.sq.Update("localizations").
		Set(field, value).
		Set("updated_at", fmtTime(s.stamp(prev))).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update localization: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update localization %s: %w", id, ErrDuplicateKey)
		}
		return fmt.Errorf("%w: update localization: %v", ErrEngine, err)
	}
	return s.persistLocked(ctx)
}

func (s *Store) DeleteLocalization(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return err
	}

	sqlStr, args, err := s.sq.Delete("localizations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete localization: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("%w: delete localization: %v", ErrEngine, err)
	}
	return s.persistLocked(ctx)
}

// Translations projects the localizations table onto one locale column.
func (s *Store) Translations(ctx context.Context, locale string) (map[string]string, error) {
	if !models.IsLocale(locale) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLocale, locale)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return nil, err
	}

	// locale is allow-listed above; it is safe to use as a column name
	sqlStr, args, err := s.sq.Select("key", locale).From("localizations").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build translations: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: translations: %v", ErrEngine, err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var (
			key  string
			text sql.NullString
		)
		if err := rows.Scan(&key, &text); err != nil {
			return nil, fmt.Errorf("%w: scan translation: %v", ErrEngine, err)
		}
		out[key] = text.String
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows err: %v", ErrEngine, err)
	}
	return out, nil
}
