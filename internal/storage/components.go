package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"uiforge/pkg/models"
)

var componentColumns = []string{"id", "name", "code", "description", "created_at", "updated_at"}

// componentFields are the only columns an update may name.
var componentFields = map[string]struct{}{
	"name":        {},
	"code":        {},
	"description": {},
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComponent(row rowScanner) (models.Component, error) {
	var (
		c                models.Component
		description      sql.NullString
		created, updated string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Code, &description, &created, &updated); err != nil {
		return c, err
	}
	c.Description = description.String

	var err error
	if c.CreatedAt, err = parseTime(created); err != nil {
		return c, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return c, err
	}
	return c, nil
}

// ListComponents returns every component, most recently updated first.
func (s *Store) ListComponents(ctx context.Context) ([]models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return nil, err
	}

	sqlStr, args, err := s.sq.Select(componentColumns...).
		From("components").
		OrderBy("updated_at DESC", "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list components: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list components: %v", ErrEngine, err)
	}
	defer rows.Close()

	out := make([]models.Component, 0)
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan component: %v", ErrEngine, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows err: %v", ErrEngine, err)
	}
	return out, nil
}

func (s *Store) GetComponent(ctx context.Context, id string) (*models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return nil, err
	}

	sqlStr, args, err := s.sq.Select(componentColumns...).
		From("components").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get component: %w", err)
	}

	c, err := scanComponent(s.db.QueryRowContext(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("component %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get component: %v", ErrEngine, err)
	}
	return &c, nil
}

// CreateComponent inserts c with both timestamps set to the same instant and
// returns the stored row.
func (s *Store) CreateComponent(ctx context.Context, c models.Component) (*models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	sqlStr, args, err := s.sq.Insert("components").
		Columns(componentColumns...).
		Values(c.ID, c.Name, c.Code, c.Description, fmtTime(now), fmtTime(now)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create component: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create component %s: %w", c.ID, ErrDuplicateKey)
		}
		s.logger.Error("create component", zap.String("id", c.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: create component: %v", ErrEngine, err)
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}

	c.CreatedAt = now
	c.UpdatedAt = now
	return &c, nil
}

// UpdateComponent applies fields to the row with the given id. Every field
// name is checked before anything runs; an empty map and an unknown id are
// both no-ops. The bool reports whether a row was written.
func (s *Store) UpdateComponent(ctx context.Context, id string, fields map[string]string) (bool, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := componentFields[name]; !ok {
			return false, fmt.Errorf("%w: %s", ErrInvalidField, name)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return false, nil
	}
	sort.Strings(names)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return false, err
	}

	prev, found, err := s.updatedAtLocked(ctx, "components", id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	q := s.sq.Update("components")
	for _, name := range names {
		q = q.Set(name, fields[name])
	}
	sqlStr, args, err := q.Set("updated_at", fmtTime(s.stamp(prev))).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update component: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		s.logger.Error("update component", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("%w: update component: %v", ErrEngine, err)
	}
	if err := s.persistLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteComponent removes the row if present; deleting a missing id succeeds.
func (s *Store) DeleteComponent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return err
	}

	sqlStr, args, err := s.sq.Delete("components").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete component: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("%w: delete component: %v", ErrEngine, err)
	}
	return s.persistLocked(ctx)
}

func (s *Store) updatedAtLocked(ctx context.Context, table, id string) (time.Time, bool, error) {
	sqlStr, args, err := s.sq.Select("updated_at").From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build read updated_at: %w", err)
	}
	var raw string
	if err := s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("%w: read updated_at: %v", ErrEngine, err)
	}
	t, err := parseTime(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return t, true, nil
}
