/* sql_kv.go
 * Contains the database/sql backend shared by the PostgreSQL and SQLite drivers. Both dialects accept the same
 * upsert syntax, so only the placeholder style differs.
 */

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const createRecordsTable = `CREATE TABLE IF NOT EXISTS match_records (
	record_key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at BIGINT NOT NULL
)`

// SQLKV stores records in the match_records table
type SQLKV struct {
	db          *sql.DB
	placeholder func(n int) string
}

func dollarPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func questionPlaceholder(int) string {
	return "?"
}

func newSQLKV(ctx context.Context, db *sql.DB, placeholder func(int) string) (*SQLKV, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, createRecordsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create match_records: %w", err)
	}
	return &SQLKV{db: db, placeholder: placeholder}, nil
}

// query rewrites each ? in q into the dialect's placeholder
func (s *SQLKV) query(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString(s.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.query(`SELECT value FROM match_records WHERE record_key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	q := s.query(`INSERT INTO match_records (record_key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, q, key, string(value), time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLKV) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	q := s.query(`INSERT INTO match_records (record_key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (record_key) DO NOTHING`)
	res, err := s.db.ExecContext(ctx, q, key, string(value), time.Now().UTC().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("insert %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected %s: %w", key, err)
	}
	return n == 1, nil
}

func (s *SQLKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}
	_, err := s.db.ExecContext(ctx, s.query(`DELETE FROM match_records WHERE record_key IN (`+marks+`)`), args...)
	return err
}

func (s *SQLKV) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
