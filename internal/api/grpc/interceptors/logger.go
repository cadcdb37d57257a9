package interceptors

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggerUnaryInterceptor логирует каждый запрос:
// - начало запроса (имя метода)
// - конец запроса (код статуса + затраченное время)
func LoggerUnaryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		logger.Debug("incoming request", zap.String("method", info.FullMethod))

		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)

		if err != nil {
			st, _ := status.FromError(err)
			logger.Warn("request failed",
				zap.String("method", info.FullMethod),
				zap.String("code", st.Code().String()),
				zap.String("message", st.Message()),
				zap.Duration("duration", duration))
		} else {
			logger.Info("request completed",
				zap.String("method", info.FullMethod),
				zap.Duration("duration", duration))
		}

		return resp, err
	}
}
