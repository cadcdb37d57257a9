package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-service/internal/storage"
)

func TestNewBackend_EmptyAddr(t *testing.T) {
	_, err := NewBackend(context.Background(), Options{})
	assert.Error(t, err)
}

func TestNewBackend_Unreachable(t *testing.T) {
	_, err := NewBackend(context.Background(), Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

// TestBackend_RoundTrip требует живой Redis: MEMO_TEST_REDIS_ADDR=localhost:6379
func TestBackend_RoundTrip(t *testing.T) {
	addr := os.Getenv("MEMO_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("MEMO_TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	b, err := NewBackend(ctx, Options{Addr: addr})
	require.NoError(t, err)
	defer b.Close()

	key := "memo-test-" + t.Name()
	_, err = b.Get(ctx, key+"-absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, b.Set(ctx, key, []byte(`[]`)))
	got, err := b.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}
