// Package http реализует REST API заметок и websocket-ленту изменений.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"memo-service/internal/converter"
	"memo-service/internal/repository"
	svc "memo-service/internal/service"
	"memo-service/internal/service/notes"
	memov1 "memo-service/pkg/api/memo/v1"
)

// maxBodyBytes ограничение на размер тела запроса
const maxBodyBytes = memov1.MaxContentLength + memov1.MaxTitleLength + 1024

// Handler обрабатывает HTTP запросы к заметкам
type Handler struct {
	noteService svc.NoteService
	events      *notes.EventService
	serverCtx   context.Context
	upgrader    *websocket.Upgrader
	logger      *zap.Logger
}

// NewHandler создает HTTP хэндлер. events может быть nil, тогда лента изменений недоступна.
func NewHandler(serverCtx context.Context, noteService svc.NoteService, events *notes.EventService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if serverCtx == nil {
		serverCtx = context.Background()
	}
	return &Handler{
		noteService: noteService,
		events:      events,
		serverCtx:   serverCtx,
		upgrader:    newUpgrader(nil),
		logger:      logger,
	}
}

// AllowOrigins задает источники, с которых браузер может открыть ленту изменений
func (h *Handler) AllowOrigins(origins []string) {
	h.upgrader = newUpgrader(origins)
}

// Register регистрирует маршруты на mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/notes", h.listNotes)
	mux.HandleFunc("POST /api/v1/notes", h.createNote)
	mux.HandleFunc("GET /api/v1/notes/events", h.watchNotes)
	mux.HandleFunc("GET /api/v1/notes/{id}", h.getNote)
	mux.HandleFunc("PUT /api/v1/notes/{id}", h.updateNote)
	mux.HandleFunc("DELETE /api/v1/notes/{id}", h.deleteNote)
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.noteService.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, &memov1.ListNotesResponse{Notes: converter.ModelsToWire(list)})
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	req := &memov1.GetNoteRequest{Id: r.PathValue("id")}
	if err := req.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	note, err := h.noteService.Get(r.Context(), req.Id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, &memov1.GetNoteResponse{Note: converter.ModelToWire(note)})
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Create(r.Context())
	warning, err := splitWarning(err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, &memov1.CreateNoteResponse{
		Note:    converter.ModelToWire(note),
		Warning: warning,
	})
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	var req memov1.UpdateNoteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, badRequest("invalid request body: "+err.Error()))
		return
	}
	// id берется только из пути
	req.Id = r.PathValue("id")
	if err := req.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	list, err := h.noteService.Update(r.Context(), converter.WireToModel(&memov1.Note{
		Id:      req.Id,
		Title:   req.Title,
		Content: req.Content,
	}))
	warning, err := splitWarning(err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, &memov1.UpdateNoteResponse{
		Notes:   converter.ModelsToWire(list),
		Warning: warning,
	})
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	req := &memov1.DeleteNoteRequest{Id: r.PathValue("id")}
	if err := req.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	list, err := h.noteService.Delete(r.Context(), req.Id)
	warning, err := splitWarning(err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, &memov1.DeleteNoteResponse{
		Notes:   converter.ModelsToWire(list),
		Warning: warning,
	})
}

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

type badRequest string

func (e badRequest) Error() string { return string(e) }

func splitWarning(err error) (string, error) {
	if repository.IsPersistWarning(err) {
		return err.Error(), nil
	}
	return "", err
}

// writeError конвертирует внутренние ошибки в HTTP статусы
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var br badRequest
	errMsg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		h.writeJSON(w, http.StatusNotFound, &errorResponse{Error: "note not found", Reason: "NOTE_NOT_FOUND"})
	case errors.As(err, &br),
		strings.Contains(errMsg, "cannot be empty"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "too long"):
		h.writeJSON(w, http.StatusBadRequest, &errorResponse{Error: err.Error(), Reason: "VALIDATION_ERROR"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.writeJSON(w, http.StatusServiceUnavailable, &errorResponse{Error: err.Error(), Reason: "CANCELED"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, &errorResponse{Error: "internal error", Reason: "INTERNAL_ERROR"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}
