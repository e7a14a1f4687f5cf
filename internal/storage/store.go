package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DefaultKey is the slot key the engine image lives under.
const DefaultKey = "localizations_db"

// Store owns the embedded engine handle. The engine lives in memory; the slot
// holds the only durable copy, re-read before every call when another writer
// changed it and rewritten in full after every mutation.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	slot   Slot
	key    string
	logger *zap.Logger
	sq     sq.StatementBuilderType
	now    func() time.Time

	// last is the encoded image this store most recently loaded or saved.
	last string
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    DefaultKey,
		logger: zap.NewNop(),
		sq:     sq.StatementBuilder,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init brings the engine up once: restore the image from the slot if there is
// one, otherwise create and seed both tables. Later calls return immediately.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked(ctx)
}

func (s *Store) initLocked(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	db, err := openEngine()
	if err != nil {
		return err
	}

	saved, ok, err := s.slot.Load(ctx, s.key)
	if err != nil {
		_ = db.Close()
		s.logger.Error("load engine image", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: load image: %v", ErrEngine, err)
	}

	if ok {
		image, err := DecodeImage(saved)
		if err != nil {
			_ = db.Close()
			s.logger.Error("decode engine image", zap.String("key", s.key), zap.Error(err))
			return err
		}
		if err := restore(ctx, db, image); err != nil {
			_ = db.Close()
			s.logger.Error("restore engine image", zap.String("key", s.key), zap.Error(err))
			return fmt.Errorf("%w: restore image: %v", ErrEngine, err)
		}
		s.logger.Info("loaded existing database", zap.String("key", s.key), zap.Int("bytes", len(image)))
	} else {
		if err := createSchema(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("%w: %v", ErrEngine, err)
		}
		if err := seed(ctx, db, s.sq, s.now().UTC()); err != nil {
			_ = db.Close()
			return fmt.Errorf("%w: %v", ErrEngine, err)
		}
		s.logger.Info("created new database with seed data", zap.String("key", s.key))
	}

	s.db = db
	return s.persistLocked(ctx)
}

// syncLocked brings the engine up, or reloads it when the slot holds an image
// this store did not write. A slot that lost its value keeps the in-memory
// engine; the next mutation writes it back.
func (s *Store) syncLocked(ctx context.Context) error {
	if s.db == nil {
		return s.initLocked(ctx)
	}

	saved, ok, err := s.slot.Load(ctx, s.key)
	if err != nil {
		s.logger.Error("load engine image", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: load image: %v", ErrEngine, err)
	}
	if !ok || saved == s.last {
		return nil
	}

	image, err := DecodeImage(saved)
	if err != nil {
		s.logger.Error("decode engine image", zap.String("key", s.key), zap.Error(err))
		return err
	}
	if err := restore(ctx, s.db, image); err != nil {
		s.logger.Error("reload engine image", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: reload image: %v", ErrEngine, err)
	}
	s.last = saved
	s.logger.Info("reloaded database written elsewhere", zap.String("key", s.key), zap.Int("bytes", len(image)))
	return nil
}

// Close drops the engine handle. The next call restores from the slot.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Image returns the serialized engine, exactly what the slot receives.
func (s *Store) Image(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.syncLocked(ctx); err != nil {
		return nil, err
	}
	return serialize(ctx, s.db)
}

func (s *Store) persistLocked(ctx context.Context) error {
	image, err := serialize(ctx, s.db)
	if err != nil {
		s.logger.Error("serialize engine", zap.Error(err))
		return fmt.Errorf("%w: serialize: %v", ErrEngine, err)
	}
	encoded := EncodeImage(image)
	if err := s.slot.Save(ctx, s.key, encoded); err != nil {
		s.logger.Error("save engine image", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: save image: %v", ErrEngine, err)
	}
	s.last = encoded
	return nil
}

// stamp returns the current time, nudged past prev so updated_at always
// moves forward even on coarse clocks.
func (s *Store) stamp(prev time.Time) time.Time {
	now := s.now().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func openEngine() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("%w: open engine: %v", ErrEngine, err)
	}
	// one connection: an in-memory database is private to its connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping engine: %v", ErrEngine, err)
	}
	return db, nil
}

func withRawConn(ctx context.Context, db *sql.DB, fn func(*sqlite3.SQLiteConn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Raw(func(driverConn any) error {
		sc, ok := driverConn.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", driverConn)
		}
		return fn(sc)
	})
}

func serialize(ctx context.Context, db *sql.DB) ([]byte, error) {
	var image []byte
	err := withRawConn(ctx, db, func(c *sqlite3.SQLiteConn) error {
		b, err := c.Serialize("")
		if err != nil {
			return err
		}
		image = b
		return nil
	})
	return image, err
}

// restore deserializes image into a scratch connection and copies it into db
// with the backup API; a deserialized buffer has a fixed size and could not
// take new rows.
func restore(ctx context.Context, db *sql.DB, image []byte) error {
	scratch, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	defer scratch.Close()
	scratch.SetMaxOpenConns(1)

	return withRawConn(ctx, scratch, func(src *sqlite3.SQLiteConn) error {
		if err := src.Deserialize(image, ""); err != nil {
			return fmt.Errorf("deserialize: %w", err)
		}
		return withRawConn(ctx, db, func(dst *sqlite3.SQLiteConn) error {
			bk, err := dst.Backup("main", src, "main")
			if err != nil {
				return fmt.Errorf("backup init: %w", err)
			}
			if _, err := bk.Step(-1); err != nil {
				_ = bk.Finish()
				return fmt.Errorf("backup step: %w", err)
			}
			return bk.Finish()
		})
	})
}
