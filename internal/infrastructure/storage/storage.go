package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	kv "github.com/studytracker/core/internal/adapters/storage"
	"github.com/studytracker/core/internal/infrastructure/config"
	"github.com/studytracker/core/internal/ports"
)

// Store wraps the configured key-value backend and, for the sql backends,
// exposes the underlying connection for migrations and health checks.
type Store struct {
	Storage ports.Storage
	DB      *sqlx.DB
	backend string
}

// Open creates the key-value store selected by the storage configuration.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return &Store{Storage: kv.NewMemory(), backend: "memory"}, nil

	case "sqlite":
		db, err := openSQL("sqlite", cfg.Storage.SQLitePath, cfg.Database)
		if err != nil {
			return nil, err
		}
		s, err := kv.NewSQLKV(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Store{Storage: s, DB: db, backend: "sqlite"}, nil

	case "postgres":
		db, err := openSQL("postgres", cfg.Database.GetDSN(), cfg.Database)
		if err != nil {
			return nil, err
		}
		s, err := kv.NewSQLKV(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Store{Storage: s, DB: db, backend: "postgres"}, nil

	case "redis":
		s, err := kv.NewRedisKV(ctx, cfg.Redis.GetAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		return &Store{Storage: s, backend: "redis"}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

func openSQL(driver, dsn string, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	return db, nil
}

// Backend returns the name of the configured backend.
func (s *Store) Backend() string {
	return s.backend
}

// HealthCheck verifies the backend is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s.DB != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := s.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("storage health check failed: %w", err)
		}
		return nil
	}

	// Fall back to a probe read for non-sql backends.
	if _, _, err := s.Storage.Get(ctx, "healthcheck"); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}

// Close releases the backend resources.
func (s *Store) Close() error {
	return s.Storage.Close()
}
