// Package s3 хранит каждое значение отдельным объектом в бакете S3 (или MinIO).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"memo-service/internal/storage"
)

var _ storage.Backend = (*Backend)(nil)

// Options параметры подключения к объектному хранилищу
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string // пустой для AWS, адрес для MinIO
	AccessKey string
	SecretKey string
	Prefix    string
}

// ObjectAPI подмножество s3.Client, которое использует хранилище
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// Backend хранилище объектов
type Backend struct {
	client ObjectAPI
	bucket string
	prefix string
}

// NewBackend создает клиента S3 по параметрам
func NewBackend(ctx context.Context, opts Options) (*Backend, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 storage: bucket cannot be empty")
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewBackendWithClient(client, opts.Bucket, opts.Prefix), nil
}

// NewBackendWithClient создает хранилище поверх готового клиента
func NewBackendWithClient(client ObjectAPI, bucket, prefix string) *Backend {
	return &Backend{client: client, bucket: bucket, prefix: prefix}
}

func (b *Backend) objectKey(key string) string {
	return b.prefix + key + ".json"
}

// Get скачивает объект ключа
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %q: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %q: %w", key, err)
	}

	return data, nil
}

// Set загружает объект ключа целиком
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.objectKey(key)),
		Body:        bytes.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %q: %w", key, err)
	}
	return nil
}

// Close ничего не делает: у клиента S3 нет соединений, требующих закрытия
func (b *Backend) Close() error {
	return nil
}
