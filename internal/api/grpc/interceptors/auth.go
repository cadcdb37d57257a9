package interceptors

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthorizationHeader имя заголовка для авторизации в metadata
const AuthorizationHeader = "authorization"

// AuthUnaryInterceptor проверяет токен в заголовке "authorization: Bearer <token>".
// Пустой expectedToken отключает проверку.
func AuthUnaryInterceptor(expectedToken string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := authorize(ctx, expectedToken); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// AuthStreamInterceptor та же проверка для стримов
func AuthStreamInterceptor(expectedToken string) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := authorize(ss.Context(), expectedToken); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func authorize(ctx context.Context, expectedToken string) error {
	if expectedToken == "" {
		return nil
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return status.Errorf(codes.Unauthenticated, "metadata not provided")
	}

	authHeaders := md.Get(AuthorizationHeader)
	if len(authHeaders) == 0 {
		return status.Errorf(codes.Unauthenticated, "authorization header not provided")
	}

	token, ok := strings.CutPrefix(authHeaders[0], "Bearer ")
	if !ok {
		return status.Errorf(codes.Unauthenticated, "invalid authorization header format")
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
		return status.Errorf(codes.Unauthenticated, "invalid token")
	}

	return nil
}
