// Package sqlite implements storage on an embedded SQLite database.
package sqlite

import (
	"database/sql"
	"time"

	pblog "github.com/poundbot/gamewatch/log"
	"github.com/poundbot/gamewatch/storage"

	_ "modernc.org/sqlite" // Driver sqlite
)

var log = pblog.Log.WithField("sys", "SQLITE")

// A Config is the database file location.
type Config struct {
	Path string
}

// SQLite implements storage.Storage.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens the database file, creating it when missing.
func NewSQLite(c Config) (*SQLite, error) {
	dsn := c.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db, path: c.Path}, nil
}

// Init applies pending schema migrations.
func (s *SQLite) Init() error {
	log.WithField("path", s.path).Info("Database opened")
	return runMigrations(s.db)
}

// Close implements storage.Storage.Close
func (s *SQLite) Close() {
	if err := s.db.Close(); err != nil {
		log.WithError(err).Warn("close failed")
	}
}

// Servers implements storage.Storage.Servers
func (s *SQLite) Servers() storage.ServersStore {
	return Servers{db: s.db}
}

// Samples implements storage.Storage.Samples
func (s *SQLite) Samples() storage.SamplesStore {
	return Samples{db: s.db}
}

// unixNano stores zero times as 0 so they read back as the zero time.
func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
