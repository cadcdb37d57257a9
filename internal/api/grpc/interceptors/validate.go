package interceptors

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// validator реализуется сообщениями запросов с правилами валидации
type validator interface {
	Validate() error
}

// ValidateUnaryInterceptor вызывает Validate у запроса, если он его реализует.
// Если валидация не пройдена, возвращается ошибка с кодом InvalidArgument.
func ValidateUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if v, ok := req.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "validation failed: %v", err)
		}
	}

	return handler(ctx, req)
}
