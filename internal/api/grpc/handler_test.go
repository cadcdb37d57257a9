package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"memo-service/internal/model"
	"memo-service/internal/repository"
	memov1 "memo-service/pkg/api/memo/v1"
)

// mockNoteService - мок сервиса для тестирования handler
type mockNoteService struct {
	listFunc   func(ctx context.Context) ([]model.Note, error)
	getFunc    func(ctx context.Context, id string) (model.Note, error)
	createFunc func(ctx context.Context) (model.Note, error)
	updateFunc func(ctx context.Context, note model.Note) ([]model.Note, error)
	deleteFunc func(ctx context.Context, id string) ([]model.Note, error)
}

func (m *mockNoteService) List(ctx context.Context) ([]model.Note, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockNoteService) Get(ctx context.Context, id string) (model.Note, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return model.Note{}, nil
}

func (m *mockNoteService) Create(ctx context.Context) (model.Note, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx)
	}
	return model.Note{}, nil
}

func (m *mockNoteService) Update(ctx context.Context, note model.Note) ([]model.Note, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, note)
	}
	return nil, nil
}

func (m *mockNoteService) Delete(ctx context.Context, id string) ([]model.Note, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil, nil
}

func errorInfo(t *testing.T, err error) *errdetails.ErrorInfo {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok, "error must be a gRPC status")
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info
		}
	}
	t.Fatalf("no ErrorInfo in status details: %v", st.Details())
	return nil
}

func TestGetNote_NotFoundWithDetails(t *testing.T) {
	ctx := context.Background()
	noteID := "non-existent-id"

	handler := NewHandler(ctx, &mockNoteService{
		getFunc: func(ctx context.Context, id string) (model.Note, error) {
			return model.Note{}, repository.ErrNoteNotFound
		},
	}, nil, nil)

	_, err := handler.GetNote(ctx, &memov1.GetNoteRequest{Id: noteID})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))

	info := errorInfo(t, err)
	assert.Equal(t, "NOTE_NOT_FOUND", info.Reason)
	assert.Equal(t, errorDomain, info.Domain)
	assert.Equal(t, noteID, info.Metadata["note_id"])
}

func TestGetNote_Success(t *testing.T) {
	ctx := context.Background()
	created := time.UnixMilli(1_700_000_000_000)

	handler := NewHandler(ctx, &mockNoteService{
		getFunc: func(ctx context.Context, id string) (model.Note, error) {
			return model.Note{ID: id, Title: "t", CreatedAt: created, UpdatedAt: created}, nil
		},
	}, nil, nil)

	resp, err := handler.GetNote(ctx, &memov1.GetNoteRequest{Id: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.Note.Id)
	assert.Equal(t, created.UnixMilli(), resp.Note.CreatedAt)
}

func TestCreateNote_PersistWarningIsNotAnError(t *testing.T) {
	ctx := context.Background()

	handler := NewHandler(ctx, &mockNoteService{
		createFunc: func(ctx context.Context) (model.Note, error) {
			return model.Note{ID: "n1", Title: model.DefaultTitle},
				fmt.Errorf("%w: %w", repository.ErrPersist, errors.New("quota exceeded"))
		},
	}, nil, nil)

	resp, err := handler.CreateNote(ctx, &memov1.CreateNoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, "n1", resp.Note.Id)
	assert.Contains(t, resp.Warning, "quota exceeded")
}

func TestUpdateNote_PassesOnlyEditableFields(t *testing.T) {
	ctx := context.Background()
	var got model.Note

	handler := NewHandler(ctx, &mockNoteService{
		updateFunc: func(ctx context.Context, note model.Note) ([]model.Note, error) {
			got = note
			return []model.Note{note}, nil
		},
	}, nil, nil)

	resp, err := handler.UpdateNote(ctx, &memov1.UpdateNoteRequest{Id: "1", Title: "A", Content: "B"})
	require.NoError(t, err)
	assert.Empty(t, resp.Warning)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, model.Note{ID: "1", Title: "A", Content: "B"}, got)
}

func TestDeleteNote_EmptyResultIsNotNil(t *testing.T) {
	ctx := context.Background()
	handler := NewHandler(ctx, &mockNoteService{
		deleteFunc: func(ctx context.Context, id string) ([]model.Note, error) {
			return []model.Note{}, nil
		},
	}, nil, nil)

	resp, err := handler.DeleteNote(ctx, &memov1.DeleteNoteRequest{Id: "1"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Notes)
	assert.Empty(t, resp.Notes)
}

func TestListNotes_InternalError(t *testing.T) {
	ctx := context.Background()
	handler := NewHandler(ctx, &mockNoteService{
		listFunc: func(ctx context.Context) ([]model.Note, error) {
			return nil, errors.New("disk on fire")
		},
	}, nil, nil)

	_, err := handler.ListNotes(ctx, &memov1.ListNotesRequest{})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))

	info := errorInfo(t, err)
	assert.Equal(t, "INTERNAL_ERROR", info.Reason)
	assert.Contains(t, info.Metadata["cause"], "disk on fire")
}

func TestHandleError_Validation(t *testing.T) {
	err := handleError(errors.New("id cannot be empty"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "VALIDATION_ERROR", errorInfo(t, err).Reason)

	assert.Nil(t, handleError(nil))
	assert.Equal(t, codes.Canceled, status.Code(handleError(context.Canceled)))
}

func TestWatchNotes_DisabledWithoutEvents(t *testing.T) {
	handler := NewHandler(context.Background(), &mockNoteService{}, nil, nil)

	err := handler.WatchNotes(&memov1.WatchNotesRequest{}, nil)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}
