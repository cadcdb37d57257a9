package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"memo-service/internal/model"
	"memo-service/internal/repository"
	"memo-service/internal/repository/kv"
	"memo-service/internal/service/notes"
	"memo-service/internal/storage/memory"
)

const testToken = "secret"

// startServer поднимает полный стек поверх bufconn и возвращает фабрику клиентов
func startServer(t *testing.T) (func(token string) *Client, *notes.EventService) {
	t.Helper()

	repo, err := kv.NewRepository(memory.NewBackend(), "test-key")
	require.NoError(t, err)

	events := notes.NewEventService()
	serverCtx, cancel := context.WithCancel(context.Background())
	handler := NewHandler(serverCtx, notes.NewNoteService(repo, events, nil), events, nil)
	server := NewServer(handler, testToken, zap.NewNop())

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = server.Serve(lis)
	}()

	t.Cleanup(func() {
		cancel()
		server.Stop()
	})

	dialer := grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})

	return func(token string) *Client {
		c, err := Dial("passthrough:///bufnet", token, dialer)
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		return c
	}, events
}

func TestClient_RoundTrip(t *testing.T) {
	newClient, _ := startServer(t)
	client := newClient(testToken)
	ctx := context.Background()

	list, err := client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := client.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTitle, created.Title)
	assert.NotEmpty(t, created.ID)

	updated, err := client.Update(ctx, model.Note{ID: created.ID, Title: "A", Content: "B"})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "A", updated[0].Title)
	assert.Equal(t, created.CreatedAt, updated[0].CreatedAt)

	got, err := client.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Content)

	remaining, err := client.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = client.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestClient_ValidationRejected(t *testing.T) {
	newClient, _ := startServer(t)
	client := newClient(testToken)

	_, err := client.Get(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestClient_Unauthenticated(t *testing.T) {
	newClient, _ := startServer(t)

	for _, token := range []string{"", "wrong"} {
		_, err := newClient(token).List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), codes.Unauthenticated.String())
	}
}

func TestClient_Watch(t *testing.T) {
	newClient, events := startServer(t)
	client := newClient(testToken)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := client.Watch(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return events.Subscribers() == 1
	}, 2*time.Second, 10*time.Millisecond)

	created, err := client.Create(ctx)
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, notes.EventCreated, ev.Kind)
		assert.Equal(t, created.ID, ev.Note.ID)
	case <-ctx.Done():
		t.Fatal("event not received")
	}
}

func TestFromStatus(t *testing.T) {
	assert.ErrorIs(t, fromStatus(status.Error(codes.NotFound, "x")), repository.ErrNoteNotFound)
	assert.EqualError(t, fromStatus(status.Error(codes.InvalidArgument, "bad id")), "bad id")
	assert.True(t, repository.IsPersistWarning(warningError("disk full")))
	assert.NoError(t, warningError(""))
}
