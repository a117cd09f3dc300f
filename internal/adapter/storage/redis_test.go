package storage_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := storage.NewRedisStorage(t.Context(), storage.RedisOptions{
		Addr: mr.Addr(),
	})
	require.NoError(t, err)
	defer s.Close()

	testDriver(t, s)

	t.Run("KeysArePrefixed", func(t *testing.T) {
		require.NoError(t, s.Set(t.Context(), "user", []byte("marker")))
		got, err := mr.Get("storefront:user")
		require.NoError(t, err)
		assert.Equal(t, "marker", got)
		assert.Zero(t, mr.TTL("storefront:user"))
	})

	t.Run("Unavailable", func(t *testing.T) {
		addr := mr.Addr()
		mr.Close()
		_, err := storage.NewRedisStorage(t.Context(), storage.RedisOptions{
			Addr: addr,
		})
		require.Error(t, err)
	})
}
