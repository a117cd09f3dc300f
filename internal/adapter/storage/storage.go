package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
)

// ErrNotFound is returned by every driver for an absent key.
var ErrNotFound = port.ErrNotFound

const (
	DriverMemory   = "memory"
	DriverLevelDB  = "leveldb"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// A Storage is a snapshot storage driver that owns a connection or file.
type Storage interface {
	port.SnapshotStorage
	io.Closer
}

// Config selects and configures a driver.
type Config struct {
	Driver        string
	LevelDBPath   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLDB         string
}

// Open returns the driver named by c.Driver.
func Open(ctx context.Context, c Config) (Storage, error) {
	const op = "storage.Open"
	log := slog.With("op", op, "driver", c.Driver)

	var (
		s   Storage
		err error
	)

	switch c.Driver {
	case DriverMemory, "":
		s = NewMemoryStorage()
	case DriverLevelDB:
		s, err = NewLevelDBStorage(c.LevelDBPath)
	case DriverRedis:
		s, err = NewRedisStorage(ctx, RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	case DriverPostgres:
		s, err = NewSQLStorage(ctx, c.SQLDB)
	default:
		err = fmt.Errorf("unknown driver %q", c.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("snapshot storage is open")
	return s, nil
}
