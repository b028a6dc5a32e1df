package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLKV stores blobs in a single kv_blobs table through sqlx. It works
// against both the postgres driver and the sqlite driver; queries are
// written with ? placeholders and rebound per driver.
type SQLKV struct {
	db *sqlx.DB
}

// NewSQLKV wraps an open sqlx connection. For sqlite the kv_blobs table is
// created on the spot; postgres deployments create it through migrations.
func NewSQLKV(db *sqlx.DB) (*SQLKV, error) {
	if db.DriverName() == "sqlite" {
		if _, err := db.Exec(schemaSQL); err != nil {
			return nil, fmt.Errorf("create kv_blobs table: %w", err)
		}
	}
	return &SQLKV{db: db}, nil
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS kv_blobs (
		key TEXT PRIMARY KEY,
		blob TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := s.db.Rebind(`SELECT blob FROM kv_blobs WHERE key = ?`)

	var blob []byte
	err := s.db.GetContext(ctx, &blob, query, key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get blob %q: %w", key, err)
	}
	return blob, true, nil
}

func (s *SQLKV) Set(ctx context.Context, key string, blob []byte) error {
	query := s.db.Rebind(`
		INSERT INTO kv_blobs (key, blob, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET blob = excluded.blob, updated_at = CURRENT_TIMESTAMP`)

	if _, err := s.db.ExecContext(ctx, query, key, blob); err != nil {
		return fmt.Errorf("set blob %q: %w", key, err)
	}
	return nil
}

func (s *SQLKV) Remove(ctx context.Context, key string) error {
	query := s.db.Rebind(`DELETE FROM kv_blobs WHERE key = ?`)

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("remove blob %q: %w", key, err)
	}
	return nil
}

func (s *SQLKV) Close() error {
	return s.db.Close()
}
