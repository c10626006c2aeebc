// Package history persists evaluated rolls in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/roll/internal/history/migrations"
	"github.com/louisbranch/roll/internal/platform/storage/sqlitemigrate"
)

// Entry is one recorded roll.
type Entry struct {
	ID        int64
	Notation  string
	Seed      int64
	Total     int
	Results   string
	CreatedAt time.Time
}

// Store persists roll history in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite history store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
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

// RecordRoll inserts one history entry and returns its id. A zero
// CreatedAt defaults to the current time.
func (s *Store) RecordRoll(ctx context.Context, entry Entry) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	notation := strings.TrimSpace(entry.Notation)
	if notation == "" {
		return 0, fmt.Errorf("notation is required")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO rolls (notation, seed, total, results, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		notation,
		entry.Seed,
		entry.Total,
		entry.Results,
		toMillis(createdAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert roll: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("roll insert id: %w", err)
	}
	return id, nil
}

// ListRecentRolls returns up to limit entries, newest first. A
// non-positive limit defaults to 20.
func (s *Store) ListRecentRolls(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT id, notation, seed, total, results, created_at
		  FROM rolls
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.Notation, &entry.Seed, &entry.Total, &entry.Results, &createdAt); err != nil {
			return nil, fmt.Errorf("scan roll: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rolls: %w", err)
	}
	return entries, nil
}
