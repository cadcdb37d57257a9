package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"memo-service/internal/converter"
	memov1 "memo-service/pkg/api/memo/v1"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// newUpgrader без списка разрешенных источников принимает только
// same-origin запросы (проверка gorilla по умолчанию)
func newUpgrader(origins []string) *websocket.Upgrader {
	u := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(origins) > 0 {
		u.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Клиенты вне браузера Origin не передают
			return origin == "" || originAllowed(origins, origin)
		}
	}
	return u
}

// originAllowed сопоставляет Origin со списком так же, как CORS:
// "*" разрешает все, одна звездочка внутри шаблона заменяет любую подстроку
func originAllowed(origins []string, origin string) bool {
	origin = strings.ToLower(origin)
	for _, allowed := range origins {
		allowed = strings.ToLower(allowed)
		if allowed == "*" || allowed == origin {
			return true
		}
		prefix, suffix, ok := strings.Cut(allowed, "*")
		if ok && len(origin) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// watchNotes отдает события изменений в websocket, пока клиент не отключится
// или сервер не начнет остановку
func (h *Handler) watchNotes(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		h.writeJSON(w, http.StatusNotImplemented, &errorResponse{Error: "change events are not enabled", Reason: "UNIMPLEMENTED"})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже записал ответ с ошибкой
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.events.Subscribe()
	defer h.events.Unsubscribe(sub)

	// Читаем из соединения только чтобы обработать pong и close
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-clientGone:
			return
		case <-h.serverCtx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server is shutting down"),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case ev, ok := <-sub:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(&memov1.NoteEvent{
				Kind: string(ev.Kind),
				Note: converter.ModelToWire(ev.Note),
			}); err != nil {
				h.logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
