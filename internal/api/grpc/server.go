package grpc

import (
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"memo-service/internal/api/grpc/interceptors"
	memov1 "memo-service/pkg/api/memo/v1"
)

// NewServer создает и настраивает gRPC сервер с интерцепторами.
// Порядок интерцепторов важен:
// 1. Logger - логирует все запросы (включая заблокированные)
// 2. Validate - валидирует запросы
// 3. Auth - проверяет авторизацию
func NewServer(handler memov1.MemoServiceServer, authToken string, logger *zap.Logger) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.MaxConcurrentStreams(25),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute,
			MaxConnectionAge:      1 * time.Hour,
			MaxConnectionAgeGrace: 5 * time.Second,
			Time:                  10 * time.Minute,
			Timeout:               20 * time.Second,
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerUnaryInterceptor(logger),
			interceptors.ValidateUnaryInterceptor,
			interceptors.AuthUnaryInterceptor(authToken),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamInterceptor(logger),
			interceptors.AuthStreamInterceptor(authToken),
		),
	)

	memov1.RegisterMemoServiceServer(grpcServer, handler)
	logger.Info("registered MemoService", zap.Bool("auth", authToken != ""))

	return grpcServer
}
