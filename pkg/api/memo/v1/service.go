package memov1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "memo.v1.MemoService"

// Полные имена методов
const (
	MemoService_ListNotes_FullMethodName  = "/" + ServiceName + "/ListNotes"
	MemoService_GetNote_FullMethodName    = "/" + ServiceName + "/GetNote"
	MemoService_CreateNote_FullMethodName = "/" + ServiceName + "/CreateNote"
	MemoService_UpdateNote_FullMethodName = "/" + ServiceName + "/UpdateNote"
	MemoService_DeleteNote_FullMethodName = "/" + ServiceName + "/DeleteNote"
	MemoService_WatchNotes_FullMethodName = "/" + ServiceName + "/WatchNotes"
)

// MemoServiceServer серверная часть memo.v1.MemoService
type MemoServiceServer interface {
	ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error)
	GetNote(context.Context, *GetNoteRequest) (*GetNoteResponse, error)
	CreateNote(context.Context, *CreateNoteRequest) (*CreateNoteResponse, error)
	UpdateNote(context.Context, *UpdateNoteRequest) (*UpdateNoteResponse, error)
	DeleteNote(context.Context, *DeleteNoteRequest) (*DeleteNoteResponse, error)
	WatchNotes(*WatchNotesRequest, MemoService_WatchNotesServer) error
}

// UnimplementedMemoServiceServer встраивается в реализации для совместимости вперед
type UnimplementedMemoServiceServer struct{}

func (UnimplementedMemoServiceServer) ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListNotes not implemented")
}
func (UnimplementedMemoServiceServer) GetNote(context.Context, *GetNoteRequest) (*GetNoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetNote not implemented")
}
func (UnimplementedMemoServiceServer) CreateNote(context.Context, *CreateNoteRequest) (*CreateNoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateNote not implemented")
}
func (UnimplementedMemoServiceServer) UpdateNote(context.Context, *UpdateNoteRequest) (*UpdateNoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateNote not implemented")
}
func (UnimplementedMemoServiceServer) DeleteNote(context.Context, *DeleteNoteRequest) (*DeleteNoteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteNote not implemented")
}
func (UnimplementedMemoServiceServer) WatchNotes(*WatchNotesRequest, MemoService_WatchNotesServer) error {
	return status.Errorf(codes.Unimplemented, "method WatchNotes not implemented")
}

// MemoService_WatchNotesServer поток событий на стороне сервера
type MemoService_WatchNotesServer interface {
	Send(*NoteEvent) error
	grpc.ServerStream
}

type memoServiceWatchNotesServer struct {
	grpc.ServerStream
}

func (x *memoServiceWatchNotesServer) Send(m *NoteEvent) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterMemoServiceServer регистрирует реализацию на gRPC сервере
func RegisterMemoServiceServer(s grpc.ServiceRegistrar, srv MemoServiceServer) {
	s.RegisterService(&MemoService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(MemoServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MemoServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MemoServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchNotesHandler(srv any, stream grpc.ServerStream) error {
	m := new(WatchNotesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MemoServiceServer).WatchNotes(m, &memoServiceWatchNotesServer{stream})
}

// MemoService_ServiceDesc дескриптор сервиса memo.v1.MemoService
var MemoService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MemoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListNotes",
			Handler: unaryHandler(MemoService_ListNotes_FullMethodName,
				MemoServiceServer.ListNotes),
		},
		{
			MethodName: "GetNote",
			Handler: unaryHandler(MemoService_GetNote_FullMethodName,
				MemoServiceServer.GetNote),
		},
		{
			MethodName: "CreateNote",
			Handler: unaryHandler(MemoService_CreateNote_FullMethodName,
				MemoServiceServer.CreateNote),
		},
		{
			MethodName: "UpdateNote",
			Handler: unaryHandler(MemoService_UpdateNote_FullMethodName,
				MemoServiceServer.UpdateNote),
		},
		{
			MethodName: "DeleteNote",
			Handler: unaryHandler(MemoService_DeleteNote_FullMethodName,
				MemoServiceServer.DeleteNote),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchNotes",
			Handler:       watchNotesHandler,
			ServerStreams: true,
		},
	},
	Metadata: "memo/v1",
}
