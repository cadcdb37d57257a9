package grpc

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"memo-service/internal/converter"
	"memo-service/internal/model"
	"memo-service/internal/repository"
	svc "memo-service/internal/service"
	"memo-service/internal/service/notes"
	memov1 "memo-service/pkg/api/memo/v1"
)

var _ svc.NoteService = (*Client)(nil)

// Client реализует service.NoteService поверх удаленного MemoService,
// так что CLI и TUI работают одинаково с локальным и удаленным хранилищем
type Client struct {
	conn   *grpc.ClientConn
	client memov1.MemoServiceClient
	token  string
}

// Dial создает клиента для адреса сервера (plaintext)
func Dial(address, token string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Client{
		conn:   conn,
		client: memov1.NewMemoServiceClient(conn),
		token:  token,
	}, nil
}

// Close закрывает соединение
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) withAuth(ctx context.Context) context.Context {
	if c.token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
}

// List возвращает список всех заметок
func (c *Client) List(ctx context.Context) ([]model.Note, error) {
	resp, err := c.client.ListNotes(c.withAuth(ctx), &memov1.ListNotesRequest{})
	if err != nil {
		return nil, fromStatus(err)
	}
	return converter.WireToModels(resp.Notes), nil
}

// Get возвращает заметку по ID
func (c *Client) Get(ctx context.Context, id string) (model.Note, error) {
	resp, err := c.client.GetNote(c.withAuth(ctx), &memov1.GetNoteRequest{Id: id})
	if err != nil {
		return model.Note{}, fromStatus(err)
	}
	return converter.WireToModel(resp.Note), nil
}

// Create создает заметку
func (c *Client) Create(ctx context.Context) (model.Note, error) {
	resp, err := c.client.CreateNote(c.withAuth(ctx), &memov1.CreateNoteRequest{})
	if err != nil {
		return model.Note{}, fromStatus(err)
	}
	return converter.WireToModel(resp.Note), warningError(resp.Warning)
}

// Update обновляет title и content заметки
func (c *Client) Update(ctx context.Context, note model.Note) ([]model.Note, error) {
	resp, err := c.client.UpdateNote(c.withAuth(ctx), &memov1.UpdateNoteRequest{
		Id:      note.ID,
		Title:   note.Title,
		Content: note.Content,
	})
	if err != nil {
		return nil, fromStatus(err)
	}
	return converter.WireToModels(resp.Notes), warningError(resp.Warning)
}

// Delete удаляет заметку по ID
func (c *Client) Delete(ctx context.Context, id string) ([]model.Note, error) {
	resp, err := c.client.DeleteNote(c.withAuth(ctx), &memov1.DeleteNoteRequest{Id: id})
	if err != nil {
		return nil, fromStatus(err)
	}
	return converter.WireToModels(resp.Notes), warningError(resp.Warning)
}

// Watch подписывается на события изменений. Канал закрывается, когда стрим завершен.
func (c *Client) Watch(ctx context.Context) (<-chan notes.Event, error) {
	stream, err := c.client.WatchNotes(c.withAuth(ctx), &memov1.WatchNotesRequest{})
	if err != nil {
		return nil, fromStatus(err)
	}

	events := make(chan notes.Event)
	go func() {
		defer close(events)
		for {
			ev, err := stream.Recv()
			if err != nil {
				return
			}
			select {
			case events <- notes.Event{Kind: notes.EventKind(ev.Kind), Note: converter.WireToModel(ev.Note)}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

// warningError восстанавливает предупреждение сервера как ошибку ErrPersist
func warningError(warning string) error {
	if warning == "" {
		return nil
	}
	return fmt.Errorf("%w: remote: %s", repository.ErrPersist, warning)
}

// fromStatus восстанавливает доменные ошибки из gRPC статуса
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return repository.ErrNoteNotFound
	case codes.InvalidArgument:
		return errors.New(st.Message())
	}
	return fmt.Errorf("%s: %s", st.Code(), st.Message())
}
