package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewPostgresKV opens dsn with lib/pq and creates the records table when missing
func NewPostgresKV(ctx context.Context, dsn string) (*SQLKV, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newSQLKV(ctx, db, dollarPlaceholder)
}
