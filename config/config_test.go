package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/storefront/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadFile("")
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, ":8080", cfg.HTTPServerAddr)
		assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
		assert.Equal(t, 3, cfg.Catalog.MaxAttempts)
		assert.Equal(t, "memory", cfg.Storage.Driver)
		assert.Equal(t, "storefront.order", cfg.Broker.OrdersTopic)
		assert.False(t, cfg.Broker.Enabled())
		assert.False(t, cfg.Broker.TLS.Enabled())
		assert.Equal(t, "admin@demo.com", cfg.Admin.Email)
		assert.Equal(t, "admin123", cfg.Admin.Password)
	})

	t.Run("File", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
http_server_addr: 127.0.0.1:9000
catalog:
  base_url: http://catalog.local
  timeout: 2s
  max_attempts: 5
storage:
  driver: redis
  redis_addr: redis:6379
  redis_db: 2
broker:
  seed_brokers: [kafka-1:9092, kafka-2:9092]
  schema_registry_urls: [http://sr:8081]
  orders_topic: orders
admin:
  email: boss@shop.test
  password: s3cret
`)
		cfg, err := config.LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, "127.0.0.1:9000", cfg.HTTPServerAddr)
		assert.Equal(t, "http://catalog.local", cfg.Catalog.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
		assert.Equal(t, 5, cfg.Catalog.MaxAttempts)
		assert.Equal(t, "redis", cfg.Storage.Driver)
		assert.Equal(t, "redis:6379", cfg.Storage.RedisAddr)
		assert.Equal(t, 2, cfg.Storage.RedisDB)
		assert.Equal(t,
			[]string{"kafka-1:9092", "kafka-2:9092"}, cfg.Broker.SeedBrokers,
		)
		assert.True(t, cfg.Broker.Enabled())
		assert.Equal(t, "orders", cfg.Broker.OrdersTopic)
		assert.Equal(t, "boss@shop.test", cfg.Admin.Email)
	})

	t.Run("EnvOverridesFile", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: redis\n")
		t.Setenv("STOREFRONT_STORAGE_DRIVER", "leveldb")
		t.Setenv("STOREFRONT_BROKER_SEED_BROKERS", "a:9092,b:9092")

		cfg, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "leveldb", cfg.Storage.Driver)
		assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Broker.SeedBrokers)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  flavour: vanilla\n")
		_, err := config.LoadFile(path)
		require.Error(t, err)
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		path := writeConfig(t, "log_level: loud\n")
		_, err := config.LoadFile(path)
		require.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
