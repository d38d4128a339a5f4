package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
  id            INTEGER PRIMARY KEY AUTOINCREMENT,
  original_text TEXT NOT NULL,
  summary       TEXT,
  persons       TEXT,
  category      TEXT,
  created_at    TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS analysis_failures (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  cause       TEXT NOT NULL,
  detail      TEXT,
  occurred_at TIMESTAMP NOT NULL
);
`

// Connect opens (and creates, if needed) the SQLite database file and
// bootstraps the schema. This is the zero-config default store.
func Connect(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx2, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
