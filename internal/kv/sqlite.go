package kv

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nikbrunner/termhome/internal/logging"
)

const (
	currentSchemaVersion = 2
	defaultPollInterval  = 500 * time.Millisecond
)

// SQLiteStore implements Store and Watcher on a SQLite database.
//
// Every row carries the origin of the instance that last wrote it and a
// database-wide revision number. Deletes leave a tombstone (NULL value) so
// watchers in other instances still observe them.
type SQLiteStore struct {
	db           *sql.DB
	path         string
	origin       string
	pollInterval time.Duration
	closed       atomic.Bool
	log          *slog.Logger
}

// NewSQLiteStore opens (and migrates) the database at path.
// A zero pollInterval uses the default.
func NewSQLiteStore(path string, pollInterval time.Duration) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas are per connection; one connection keeps them in effect.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	s := &SQLiteStore{
		db:           db,
		path:         path,
		origin:       uuid.NewString(),
		pollInterval: pollInterval,
		log:          logging.New("kv"),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Origin identifies this instance in the entries table.
func (s *SQLiteStore) Origin() string {
	return s.origin
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}
	if version >= currentSchemaVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the entries table.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT,
			origin TEXT NOT NULL DEFAULT '',
			rev INTEGER NOT NULL DEFAULT 0
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 indexes rev for the watcher's poll query.
func (s *SQLiteStore) migrateV2() error {
	migration := `
		CREATE INDEX IF NOT EXISTS idx_entries_rev ON entries(rev);
		UPDATE schema_version SET version = 2;
	`
	_, err := s.db.Exec(migration)
	return err
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}

	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	return s.write(key, sql.NullString{String: value, Valid: true})
}

func (s *SQLiteStore) Delete(key string) error {
	return s.write(key, sql.NullString{})
}

// write upserts a row and bumps it to the next revision in one statement,
// so concurrent writers from other processes serialize on the write lock.
func (s *SQLiteStore) write(key string, value sql.NullString) error {
	if s.closed.Load() {
		return ErrClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO entries (key, value, origin, rev)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(rev), 0) + 1 FROM entries))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			origin = excluded.origin,
			rev = excluded.rev
	`, key, value, s.origin)
	return err
}

// Watch polls for rows written by other origins and calls fn for each
// changed key, oldest first. It returns ctx.Err() once ctx is done.
func (s *SQLiteStore) Watch(ctx context.Context, fn func(key string)) error {
	last, err := s.maxRev(ctx)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if s.closed.Load() {
			return ErrClosed
		}

		keys, rev, err := s.changedSince(ctx, last)
		if err != nil {
			s.log.Warn("poll for changes failed", "error", err)
			continue
		}
		last = rev
		for _, key := range keys {
			fn(key)
		}
	}
}

func (s *SQLiteStore) maxRev(ctx context.Context) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(rev), 0) FROM entries").Scan(&rev)
	return rev, err
}

// changedSince returns keys written by other origins after rev, along with
// the highest revision seen (including our own writes, which are skipped).
func (s *SQLiteStore) changedSince(ctx context.Context, rev int64) ([]string, int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, origin, rev
		FROM entries
		WHERE rev > ?
		ORDER BY rev
	`, rev)
	if err != nil {
		return nil, rev, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key, origin string
		var r int64
		if err := rows.Scan(&key, &origin, &r); err != nil {
			return nil, rev, err
		}
		if r > rev {
			rev = r
		}
		if origin != s.origin {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, rev, err
	}

	return keys, rev, nil
}
