package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-service/internal/storage"
)

func TestBackend_GetMissingKey(t *testing.T) {
	b := NewBackend()

	_, err := b.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBackend_SetCopiesValue(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	buf := []byte("first")
	require.NoError(t, b.Set(ctx, "k", buf))
	buf[0] = 'X'

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	got[0] = 'Y'
	again, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "first", string(again), "Get must return a copy")
}

func TestBackend_Overwrite(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	require.NoError(t, b.Set(ctx, "k", []byte("a")))
	require.NoError(t, b.Set(ctx, "k", []byte("b")))

	got, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
	assert.NoError(t, b.Close())
}
