package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

var _ Storage = (*SQLStorage)(nil)

type sqldb interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Close() error
}

// A SQLStorage keeps snapshots in the postgres table created by
// the migrations under migrations/.
type SQLStorage struct {
	sqldb sqldb
}

func NewSQLStorage(ctx context.Context, dsn string) (SQLStorage, error) {
	const op = "NewSQLStorage"

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return SQLStorage{}, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return SQLStorage{}, fmt.Errorf("%s: %w", op, err)
	}

	s := SQLStorage{db}
	if err := s.ping(ctx); err != nil {
		_ = db.Close()
		return SQLStorage{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func (s SQLStorage) ping(ctx context.Context) error {
	const op = "SQLStorage.ping"
	if err := s.sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: database unavailable: %w", op, err)
	}
	slog.Info("database is available", "op", op)
	return nil
}

func (s SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "SQLStorage.Get"

	query := `SELECT value FROM snapshots WHERE key = $1;`

	var v string
	err := s.sqldb.QueryRowContext(ctx, query, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %q: %w", op, key, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return []byte(v), nil
}

func (s SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	const op = "SQLStorage.Set"

	query := `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := s.sqldb.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (s SQLStorage) Delete(ctx context.Context, key string) error {
	const op = "SQLStorage.Delete"

	query := `DELETE FROM snapshots WHERE key = $1;`

	if _, err := s.sqldb.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}

func (s SQLStorage) Close() error {
	const op = "SQLStorage.Close"
	log := slog.With("op", op)

	log.Info("closing sql database...")

	if err := s.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("sql database is closed")
	return nil
}
