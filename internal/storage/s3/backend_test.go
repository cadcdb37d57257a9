package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-service/internal/storage"
)

// fakeObjectAPI хранит объекты в map
type fakeObjectAPI struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeObjectAPI) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestBackend_GetMissingKey(t *testing.T) {
	b := NewBackendWithClient(&fakeObjectAPI{objects: map[string][]byte{}}, "bucket", "")

	_, err := b.Get(context.Background(), "memo-app-data")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBackend_SetThenGet(t *testing.T) {
	ctx := context.Background()
	api := &fakeObjectAPI{objects: map[string][]byte{}}
	b := NewBackendWithClient(api, "bucket", "notes/")

	require.NoError(t, b.Set(ctx, "memo-app-data", []byte(`[]`)))
	assert.Contains(t, api.objects, "bucket/notes/memo-app-data.json")

	got, err := b.Get(ctx, "memo-app-data")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestBackend_SetError(t *testing.T) {
	api := &fakeObjectAPI{objects: map[string][]byte{}, putErr: errors.New("quota exceeded")}
	b := NewBackendWithClient(api, "bucket", "")

	err := b.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewBackend_EmptyBucket(t *testing.T) {
	_, err := NewBackend(context.Background(), Options{})
	assert.Error(t, err)
}
