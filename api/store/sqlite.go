package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// NewSQLiteKV opens the database file at path with the pure Go modernc driver
func NewSQLiteKV(ctx context.Context, path string) (*SQLKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer keeps SQLITE_BUSY out of concurrent saves
	db.SetMaxOpenConns(1)
	return newSQLKV(ctx, db, questionPlaceholder)
}
