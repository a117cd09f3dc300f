package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:"

var _ Storage = (*RedisStorage)(nil)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// A RedisStorage keeps snapshots as plain redis strings without expiry.
type RedisStorage struct {
	client redis.UniversalClient
}

func NewRedisStorage(ctx context.Context, o RedisOptions) (RedisStorage, error) {
	const op = "NewRedisStorage"

	client := redis.NewClient(&redis.Options{
		Addr:     o.Addr,
		Password: o.Password,
		DB:       o.DB,
	})

	s := NewRedisStorageFromClient(client)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return RedisStorage{}, fmt.Errorf("%s: redis unavailable: %w", op, err)
	}
	slog.Info("redis is available", "op", op, "addr", o.Addr)
	return s, nil
}

func NewRedisStorageFromClient(client redis.UniversalClient) RedisStorage {
	return RedisStorage{client}
}

func (s RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "RedisStorage.Get"

	data, err := s.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: %q: %w", op, key, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (s RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	const op = "RedisStorage.Set"

	if err := s.client.Set(ctx, redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s RedisStorage) Delete(ctx context.Context, key string) error {
	const op = "RedisStorage.Delete"

	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s RedisStorage) Close() error {
	const op = "RedisStorage.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")
	if err := s.client.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("redis client is closed")
	return nil
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}
