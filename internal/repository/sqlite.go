package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS questions (
	id             TEXT PRIMARY KEY,
	question_text  TEXT NOT NULL,
	options        TEXT NOT NULL,
	correct_answer TEXT NOT NULL DEFAULT '',
	difficulty     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_questions_difficulty ON questions(difficulty);
CREATE INDEX IF NOT EXISTS idx_questions_text ON questions(question_text);

CREATE TABLE IF NOT EXISTS results (
	id                 TEXT PRIMARY KEY,
	user_id            TEXT NOT NULL,
	total_score        REAL NOT NULL,
	questions_answered INTEGER NOT NULL,
	correct_answers    INTEGER NOT NULL,
	final_difficulty   TEXT NOT NULL,
	feedback           TEXT NOT NULL,
	next_difficulty    TEXT NOT NULL,
	created_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_user ON results(user_id);
`

// OpenSQLite opens the database at dsn, applies pragmas and creates the schema
func OpenSQLite(dsn string) (*sql.DB, error) {
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each pooled connection to a private in-memory database sees its own
	// empty copy.
	if isPrivateMemory(dsn) {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func isPrivateMemory(dsn string) bool {
	if dsn == ":memory:" {
		return true
	}
	memory := strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
	return memory && !strings.Contains(dsn, "cache=shared")
}
