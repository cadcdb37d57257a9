package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"memo-service/internal/config"
	"memo-service/internal/model"
	"memo-service/internal/repository/kv"
	"memo-service/internal/service/notes"
	"memo-service/internal/storage"
	"memo-service/internal/storage/memory"
	memov1 "memo-service/pkg/api/memo/v1"
)

const testToken = "secret"

// failingBackend читает из памяти, но отказывает в записи
type failingBackend struct {
	*memory.Backend
	fail bool
}

func (b *failingBackend) Set(ctx context.Context, key string, value []byte) error {
	if b.fail {
		return errors.New("quota exceeded")
	}
	return b.Backend.Set(ctx, key, value)
}

var _ storage.Backend = (*failingBackend)(nil)

type testEnv struct {
	server  *httptest.Server
	backend *failingBackend
	events  *notes.EventService
	cancel  context.CancelFunc
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.ConfigGateway{CORSAllowedOrigins: "*", RateLimitRPS: 1000, RateLimitBurst: 1000}
	return newTestEnvWith(t, cfg, zap.NewNop())
}

func newTestEnvWith(t *testing.T, cfg *config.ConfigGateway, logger *zap.Logger) *testEnv {
	t.Helper()

	backend := &failingBackend{Backend: memory.NewBackend()}
	repo, err := kv.NewRepository(backend, "test-key")
	require.NoError(t, err)

	events := notes.NewEventService()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHandler(ctx, notes.NewNoteService(repo, events, nil), events, nil)

	server := httptest.NewServer(NewRouter(h, cfg, testToken, logger))
	t.Cleanup(func() {
		cancel()
		server.Close()
	})

	return &testEnv{server: server, backend: backend, events: events, cancel: cancel}
}

func (e *testEnv) do(t *testing.T, method, path, body string, out any) int {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestNotesLifecycle(t *testing.T) {
	env := newTestEnv(t)

	var list memov1.ListNotesResponse
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/notes", "", &list))
	assert.NotNil(t, list.Notes)
	assert.Empty(t, list.Notes)

	var created memov1.CreateNoteResponse
	assert.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/notes", "", &created))
	assert.Equal(t, model.DefaultTitle, created.Note.Title)
	assert.Empty(t, created.Warning)
	id := created.Note.Id

	var updated memov1.UpdateNoteResponse
	code := env.do(t, http.MethodPut, "/api/v1/notes/"+id, `{"id":"ignored","title":"A","content":"B"}`, &updated)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, id, updated.Notes[0].Id)
	assert.Equal(t, "A", updated.Notes[0].Title)
	assert.Equal(t, created.Note.CreatedAt, updated.Notes[0].CreatedAt)
	assert.GreaterOrEqual(t, updated.Notes[0].UpdatedAt, updated.Notes[0].CreatedAt)

	var got memov1.GetNoteResponse
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/notes/"+id, "", &got))
	assert.Equal(t, "B", got.Note.Content)

	var deleted memov1.DeleteNoteResponse
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/v1/notes/"+id, "", &deleted))
	assert.Empty(t, deleted.Notes)

	var notFound errorResponse
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/v1/notes/"+id, "", &notFound))
	assert.Equal(t, "NOTE_NOT_FOUND", notFound.Reason)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	env := newTestEnv(t)

	var created memov1.CreateNoteResponse
	env.do(t, http.MethodPost, "/api/v1/notes", "", &created)

	var updated memov1.UpdateNoteResponse
	code := env.do(t, http.MethodPut, "/api/v1/notes/missing", `{"title":"X"}`, &updated)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, created.Note.Title, updated.Notes[0].Title)
}

func TestUpdate_BadBody(t *testing.T) {
	env := newTestEnv(t)

	var resp errorResponse
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, "/api/v1/notes/1", `{`, &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Reason)

	long := strings.Repeat("x", memov1.MaxTitleLength+1)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, "/api/v1/notes/1", `{"title":"`+long+`"}`, &resp))
}

func TestCreate_PersistWarning(t *testing.T) {
	env := newTestEnv(t)
	env.backend.fail = true

	var created memov1.CreateNoteResponse
	assert.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/v1/notes", "", &created))
	assert.NotEmpty(t, created.Note.Id)
	assert.Contains(t, created.Warning, "quota exceeded")
}

func TestUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.server.Client().Get(env.server.URL + "/api/v1/notes")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWatchNotes(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/v1/notes/events?access_token=" + testToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return env.events.Subscribers() == 1
	}, 2*time.Second, 10*time.Millisecond)

	var created memov1.CreateNoteResponse
	env.do(t, http.MethodPost, "/api/v1/notes", "", &created)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev memov1.NoteEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, string(notes.EventCreated), ev.Kind)
	assert.Equal(t, created.Note.Id, ev.Note.Id)

	// остановка сервера закрывает ленту
	env.cancel()
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}

func TestSwaggerWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.server.Client().Get(env.server.URL + "/swagger.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWatchNotes_CheckOrigin(t *testing.T) {
	cfg := &config.ConfigGateway{CORSAllowedOrigins: "http://localhost:3000, https://*.memo.test", RateLimitRPS: 1000, RateLimitBurst: 1000}
	env := newTestEnvWith(t, cfg, zap.NewNop())
	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/v1/notes/events?access_token=" + testToken

	dial := func(origin string) (int, error) {
		header := http.Header{}
		if origin != "" {
			header.Set("Origin", origin)
		}
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
		if conn != nil {
			conn.Close()
		}
		if resp == nil {
			return 0, err
		}
		return resp.StatusCode, err
	}

	code, err := dial("https://evil.example")
	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, code)

	code, err = dial("http://localhost:3000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSwitchingProtocols, code)

	code, err = dial("https://app.memo.test")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSwitchingProtocols, code)

	// клиент вне браузера
	code, err = dial("")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSwitchingProtocols, code)
}

func TestWatchNotes_SameOriginByDefault(t *testing.T) {
	h := NewHandler(context.Background(), nil, notes.NewEventService(), nil)
	mux := http.NewServeMux()
	h.Register(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/api/v1/notes/events", header)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRejectedRequestsAreLoggedAndLimited(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := &config.ConfigGateway{CORSAllowedOrigins: "*", RateLimitRPS: 1, RateLimitBurst: 1}
	env := newTestEnvWith(t, cfg, zap.New(core))

	get := func() int {
		resp, err := env.server.Client().Get(env.server.URL + "/api/v1/notes")
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, get())
	// запросы без токена тоже расходуют лимит
	assert.Equal(t, http.StatusTooManyRequests, get())

	var statuses []int64
	for _, entry := range logs.FilterMessage("http request").All() {
		statuses = append(statuses, entry.ContextMap()["status"].(int64))
	}
	assert.Equal(t, []int64{http.StatusUnauthorized, http.StatusTooManyRequests}, statuses)
}
