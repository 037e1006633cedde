// Package sqlite provides a SQLite-backed catalog of generated layouts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/OCharnyshevich/cavegen/internal/storage"
	"github.com/OCharnyshevich/cavegen/internal/storage/sqlite/migrations"
)

// ErrNotFound is returned when a layout id is unknown.
var ErrNotFound = errors.New("layout not found")

// Summary is a catalog row without the layout body.
type Summary struct {
	ID        string
	Seed      string
	Width     int
	Height    int
	Rooms     int
	Passages  int
	CreatedAt time.Time
}

// Store persists layouts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite layout store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveLayout inserts or replaces one layout.
func (s *Store) SaveLayout(ctx context.Context, ld *storage.LayoutData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ld == nil || strings.TrimSpace(ld.ID) == "" {
		return fmt.Errorf("layout id is required")
	}
	body, err := json.Marshal(ld)
	if err != nil {
		return fmt.Errorf("marshal layout %s: %w", ld.ID, err)
	}
	createdAt := ld.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT OR REPLACE INTO layouts (
		   id, seed, width, height, rooms, passages, created_at, data
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ld.ID,
		ld.Seed,
		ld.Width,
		ld.Height,
		len(ld.Rooms),
		len(ld.Passages),
		createdAt.UnixMilli(),
		string(body),
	)
	if err != nil {
		return fmt.Errorf("insert layout %s: %w", ld.ID, err)
	}
	return nil
}

// GetLayout returns the full layout with the given id.
func (s *Store) GetLayout(ctx context.Context, id string) (*storage.LayoutData, error) {
	var body string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM layouts WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("layout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get layout %s: %w", id, err)
	}

	var ld storage.LayoutData
	if err := json.Unmarshal([]byte(body), &ld); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", id, err)
	}
	return &ld, nil
}

// FindBySeed lists layouts generated from seed, newest first.
func (s *Store) FindBySeed(ctx context.Context, seed string) ([]Summary, error) {
	return s.list(ctx,
		`SELECT id, seed, width, height, rooms, passages, created_at
		 FROM layouts WHERE seed = ? ORDER BY created_at DESC, id`,
		seed,
	)
}

// ListLayouts returns up to limit layouts, newest first.
func (s *Store) ListLayouts(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.list(ctx,
		`SELECT id, seed, width, height, rooms, passages, created_at
		 FROM layouts ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Summary, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query layouts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			createdAt int64
		)
		if err := rows.Scan(&sum.ID, &sum.Seed, &sum.Width, &sum.Height, &sum.Rooms, &sum.Passages, &createdAt); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		sum.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layouts: %w", err)
	}
	return out, nil
}
