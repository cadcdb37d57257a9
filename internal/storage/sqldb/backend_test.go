package sqldb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-service/internal/storage"
)

func openTestSQLite(t *testing.T) *Backend {
	t.Helper()
	b, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "memo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSQLite_GetMissingKey(t *testing.T) {
	b := openTestSQLite(t)

	_, err := b.Get(context.Background(), "memo-app-data")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSQLite_Upsert(t *testing.T) {
	ctx := context.Background()
	b := openTestSQLite(t)

	require.NoError(t, b.Set(ctx, "memo-app-data", []byte(`[]`)))
	require.NoError(t, b.Set(ctx, "memo-app-data", []byte(`[{"id":"a"}]`)))
	require.NoError(t, b.Set(ctx, "other", []byte(`x`)))

	got, err := b.Get(ctx, "memo-app-data")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	other, err := b.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "x", string(other))
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "memo.db")

	b, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "k", []byte("v")))
	require.NoError(t, b.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestOpen_EmptyArguments(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	assert.Error(t, err)

	_, err = OpenPostgres(context.Background(), "")
	assert.Error(t, err)
}

// TestPostgres_Upsert требует живую базу: MEMO_TEST_POSTGRES_DSN=postgres://...
func TestPostgres_Upsert(t *testing.T) {
	dsn := os.Getenv("MEMO_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("MEMO_TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	b, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer b.Close()

	key := "memo-test-" + t.Name()
	require.NoError(t, b.Set(ctx, key, []byte(`[]`)))
	require.NoError(t, b.Set(ctx, key, []byte(`[1]`)))

	got, err := b.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}
