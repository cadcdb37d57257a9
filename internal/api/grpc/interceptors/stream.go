package interceptors

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// wrappedServerStream оборачивает grpc.ServerStream для логирования каждого сообщения
type wrappedServerStream struct {
	grpc.ServerStream
	logger *zap.Logger
}

func (w *wrappedServerStream) RecvMsg(m any) error {
	err := w.ServerStream.RecvMsg(m)
	switch {
	case err == nil:
		w.logger.Debug("stream message received", zap.String("type", typeName(m)))
	case errors.Is(err, io.EOF):
		w.logger.Debug("stream closed by client")
	default:
		w.logger.Warn("stream receive failed", zap.Error(err))
	}
	return err
}

func (w *wrappedServerStream) SendMsg(m any) error {
	err := w.ServerStream.SendMsg(m)
	if err != nil {
		w.logger.Warn("stream send failed", zap.String("type", typeName(m)), zap.Error(err))
	} else {
		w.logger.Debug("stream message sent", zap.String("type", typeName(m)))
	}
	return err
}

// StreamInterceptor логирует установку стрима, каждое сообщение и его завершение
func StreamInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		log := logger.With(zap.String("method", info.FullMethod))
		log.Info("stream established")

		err := handler(srv, &wrappedServerStream{ServerStream: ss, logger: log})
		if err != nil {
			log.Warn("stream handler error", zap.Error(err))
		} else {
			log.Info("stream completed")
		}

		return err
	}
}

func typeName(m any) string {
	return fmt.Sprintf("%T", m)
}
