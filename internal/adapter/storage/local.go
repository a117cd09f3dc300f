package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gokastorage "github.com/lovoo/goka/storage"
	"github.com/syndtr/goleveldb/leveldb"
)

var _ Storage = (*LocalStorage)(nil)

// A LocalStorage keeps snapshots in process memory or in a leveldb
// directory on local disk.
//
// The in-memory goka storage is not safe for concurrent use, so all
// access goes through mu.
type LocalStorage struct {
	opPrefix string
	mu       *sync.RWMutex
	st       gokastorage.Storage
}

func NewMemoryStorage() LocalStorage {
	return LocalStorage{
		opPrefix: "MemoryStorage",
		mu:       new(sync.RWMutex),
		st:       gokastorage.NewMemory(),
	}
}

func NewLevelDBStorage(path string) (LocalStorage, error) {
	const op = "NewLevelDBStorage"

	if path == "" {
		return LocalStorage{}, fmt.Errorf("%s: empty path", op)
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return LocalStorage{}, fmt.Errorf("%s: %w", op, err)
	}

	st, err := gokastorage.New(db)
	if err != nil {
		_ = db.Close()
		return LocalStorage{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := st.Open(); err != nil {
		_ = st.Close()
		return LocalStorage{}, fmt.Errorf("%s: %w", op, err)
	}

	return LocalStorage{
		opPrefix: "LevelDBStorage",
		mu:       new(sync.RWMutex),
		st:       st,
	}, nil
}

func (s LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	op := s.opPrefix + ".Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	v, err := s.st.Get(key)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%s: %q: %w", op, key, ErrNotFound)
	}
	return v, nil
}

func (s LocalStorage) Set(ctx context.Context, key string, value []byte) error {
	op := s.opPrefix + ".Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.Set(key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s LocalStorage) Delete(ctx context.Context, key string) error {
	op := s.opPrefix + ".Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.Delete(key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s LocalStorage) Close() error {
	op := s.opPrefix + ".Close"
	log := slog.With("op", op)

	log.Info("closing storage...")
	if err := s.st.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("storage is closed")
	return nil
}
