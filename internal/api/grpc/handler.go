package grpc

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"memo-service/internal/converter"
	"memo-service/internal/repository"
	svc "memo-service/internal/service"
	"memo-service/internal/service/notes"
	memov1 "memo-service/pkg/api/memo/v1"
)

// errorDomain домен для errdetails.ErrorInfo
const errorDomain = "memo.v1"

// Handler реализует gRPC сервер для MemoService
type Handler struct {
	memov1.UnimplementedMemoServiceServer

	noteService svc.NoteService
	events      *notes.EventService
	// serverCtx отменяется при остановке сервера, чтобы завершить стримы
	serverCtx context.Context
	logger    *zap.Logger
}

// NewHandler создает новый экземпляр gRPC хэндлера.
// events может быть nil, тогда WatchNotes недоступен.
func NewHandler(serverCtx context.Context, noteService svc.NoteService, events *notes.EventService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		noteService: noteService,
		events:      events,
		serverCtx:   serverCtx,
		logger:      logger,
	}
}

// ListNotes возвращает список всех заметок
func (h *Handler) ListNotes(ctx context.Context, req *memov1.ListNotesRequest) (*memov1.ListNotesResponse, error) {
	list, err := h.noteService.List(ctx)
	if err != nil {
		return nil, handleError(err)
	}

	return &memov1.ListNotesResponse{
		Notes: converter.ModelsToWire(list),
	}, nil
}

// GetNote возвращает заметку по ID
func (h *Handler) GetNote(ctx context.Context, req *memov1.GetNoteRequest) (*memov1.GetNoteResponse, error) {
	note, err := h.noteService.Get(ctx, req.Id)
	if err != nil {
		return nil, handleError(err, "note_id", req.Id)
	}

	return &memov1.GetNoteResponse{
		Note: converter.ModelToWire(note),
	}, nil
}

// CreateNote создает новую заметку
func (h *Handler) CreateNote(ctx context.Context, req *memov1.CreateNoteRequest) (*memov1.CreateNoteResponse, error) {
	note, err := h.noteService.Create(ctx)
	warning, err := splitWarning(err)
	if err != nil {
		return nil, handleError(err)
	}

	return &memov1.CreateNoteResponse{
		Note:    converter.ModelToWire(note),
		Warning: warning,
	}, nil
}

// UpdateNote обновляет title и content заметки
func (h *Handler) UpdateNote(ctx context.Context, req *memov1.UpdateNoteRequest) (*memov1.UpdateNoteResponse, error) {
	list, err := h.noteService.Update(ctx, converter.WireToModel(&memov1.Note{
		Id:      req.Id,
		Title:   req.Title,
		Content: req.Content,
	}))
	warning, err := splitWarning(err)
	if err != nil {
		return nil, handleError(err, "note_id", req.Id)
	}

	return &memov1.UpdateNoteResponse{
		Notes:   converter.ModelsToWire(list),
		Warning: warning,
	}, nil
}

// DeleteNote удаляет заметку по ID
func (h *Handler) DeleteNote(ctx context.Context, req *memov1.DeleteNoteRequest) (*memov1.DeleteNoteResponse, error) {
	list, err := h.noteService.Delete(ctx, req.Id)
	warning, err := splitWarning(err)
	if err != nil {
		return nil, handleError(err, "note_id", req.Id)
	}

	return &memov1.DeleteNoteResponse{
		Notes:   converter.ModelsToWire(list),
		Warning: warning,
	}, nil
}

// WatchNotes отправляет клиенту события изменения заметок, пока клиент
// не отключится или сервер не начнет остановку
func (h *Handler) WatchNotes(req *memov1.WatchNotesRequest, stream memov1.MemoService_WatchNotesServer) error {
	if h.events == nil {
		return status.Error(codes.Unimplemented, "change events are not enabled")
	}

	sub := h.events.Subscribe()
	defer h.events.Unsubscribe(sub)

	serverDone := make(<-chan struct{})
	if h.serverCtx != nil {
		serverDone = h.serverCtx.Done()
	}

	for {
		select {
		case <-stream.Context().Done():
			return nil
		case <-serverDone:
			return status.Error(codes.Unavailable, "server is shutting down")
		case ev, ok := <-sub:
			if !ok {
				return nil
			}
			if err := stream.Send(&memov1.NoteEvent{
				Kind: string(ev.Kind),
				Note: converter.ModelToWire(ev.Note),
			}); err != nil {
				return err
			}
		}
	}
}

// splitWarning отделяет предупреждение о неудачной записи от настоящей ошибки
func splitWarning(err error) (string, error) {
	if repository.IsPersistWarning(err) {
		return err.Error(), nil
	}
	return "", err
}

// handleError конвертирует внутренние ошибки в gRPC статусы с errdetails.ErrorInfo.
// kv - пары ключ-значение для ErrorInfo.Metadata.
func handleError(err error, kv ...string) error {
	if err == nil {
		return nil
	}

	metadata := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		metadata[kv[i]] = kv[i+1]
	}

	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		return withInfo(codes.NotFound, "note not found", "NOTE_NOT_FOUND", metadata)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "cannot be empty") || strings.Contains(errMsg, "invalid") {
		return withInfo(codes.InvalidArgument, err.Error(), "VALIDATION_ERROR", metadata)
	}

	metadata["cause"] = err.Error()
	return withInfo(codes.Internal, "internal error", "INTERNAL_ERROR", metadata)
}

func withInfo(code codes.Code, msg, reason string, metadata map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: metadata,
	})
	if err != nil {
		// Если не удалось добавить Details, возвращаем ошибку без деталей
		return st.Err()
	}
	return detailed.Err()
}
