package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func okHandler(ctx context.Context, req any) (any, error) {
	return "ok", nil
}

func TestAuthUnaryInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/memo.v1.MemoService/ListNotes"}

	tests := []struct {
		name     string
		expected string
		header   []string
		code     codes.Code
	}{
		{name: "auth disabled", expected: "", code: codes.OK},
		{name: "no metadata", expected: "t", code: codes.Unauthenticated},
		{name: "valid token", expected: "t", header: []string{"Bearer t"}, code: codes.OK},
		{name: "wrong token", expected: "t", header: []string{"Bearer x"}, code: codes.Unauthenticated},
		{name: "no bearer prefix", expected: "t", header: []string{"t"}, code: codes.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.header != nil {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(AuthorizationHeader, tt.header[0]))
			}

			resp, err := AuthUnaryInterceptor(tt.expected)(ctx, nil, info, okHandler)
			assert.Equal(t, tt.code, status.Code(err))
			if tt.code == codes.OK {
				assert.Equal(t, "ok", resp)
			}
		})
	}
}

type validatedRequest struct{ err error }

func (r validatedRequest) Validate() error { return r.err }

func TestValidateUnaryInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{}

	_, err := ValidateUnaryInterceptor(context.Background(), validatedRequest{err: assert.AnError}, info, okHandler)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := ValidateUnaryInterceptor(context.Background(), validatedRequest{}, info, okHandler)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)

	resp, err = ValidateUnaryInterceptor(context.Background(), struct{}{}, info, okHandler)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
