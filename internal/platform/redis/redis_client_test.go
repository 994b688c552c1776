package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	t.Run("connects to running server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		rdb, err := NewRedisClient(context.Background(), Options{Addr: mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = rdb.Close() })

		assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	})

	t.Run("fails when server is down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		rdb, err := NewRedisClient(context.Background(), Options{Addr: addr})
		assert.Error(t, err)
		assert.Nil(t, rdb)
	})
}
