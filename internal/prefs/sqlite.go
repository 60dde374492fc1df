package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/constants"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/logger"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/migration"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/migrations"
)

// SQLite stores entries in the preferences table of a local database file.
type SQLite struct {
	path string
	db   *sql.DB
}

// NewSQLite returns a store for the database file at path.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// dsn enables a busy timeout so the daemon and CLI can share the file.
func (s *SQLite) dsn() string {
	return s.path + "?_pragma=busy_timeout(5000)"
}

func (s *SQLite) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLite) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLite) Path() string { return s.path }

// DB returns the underlying connection, or nil before Init/Load.
func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite), nil
}

func (s *SQLite) runMigrations() error {
	runner, err := s.runner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, ErrNotLoaded
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLite) Set(key string, value []byte) error {
	return s.Apply(NewBatch().Set(key, value))
}

func (s *SQLite) Remove(keys ...string) error {
	return s.Apply(NewBatch().Remove(keys...))
}

func (s *SQLite) Clear() error {
	if s.db == nil {
		return ErrNotLoaded
	}
	_, err := s.db.Exec("DELETE FROM preferences")
	return err
}

// Apply commits the batch in one transaction.
func (s *SQLite) Apply(b *Batch) error {
	if s.db == nil {
		return ErrNotLoaded
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert, err := tx.Prepare(`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer upsert.Close()

	del, err := tx.Prepare("DELETE FROM preferences WHERE key = ?")
	if err != nil {
		return err
	}
	defer del.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	err = b.Each(func(key string, value []byte, remove bool) error {
		if remove {
			_, err := del.Exec(key)
			return err
		}
		_, err := upsert.Exec(key, string(value), now)
		return err
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) Keys() ([]string, error) {
	if s.db == nil {
		return nil, ErrNotLoaded
	}
	rows, err := s.db.Query("SELECT key FROM preferences ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
