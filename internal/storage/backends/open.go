// Package backends выбирает реализацию storage.Backend по имени драйвера из конфигурации.
package backends

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"memo-service/internal/config"
	"memo-service/internal/storage"
	"memo-service/internal/storage/file"
	"memo-service/internal/storage/memory"
	redisstorage "memo-service/internal/storage/redis"
	s3storage "memo-service/internal/storage/s3"
	"memo-service/internal/storage/sqldb"
)

// Имена драйверов хранилища
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// Open создает хранилище по настройкам
func Open(ctx context.Context, cfg *config.ConfigStorage, logger *zap.Logger) (storage.Backend, error) {
	if cfg == nil {
		return nil, errors.New("storage config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		backend storage.Backend
		err     error
	)

	switch cfg.Driver {
	case DriverMemory:
		backend = memory.NewBackend()
	case DriverFile:
		if cfg.File == nil {
			return nil, errors.New("storage.file is not configured")
		}
		backend, err = file.NewBackend(cfg.File.Dir, logger)
	case DriverSQLite:
		if cfg.SQLite == nil {
			return nil, errors.New("storage.sqlite is not configured")
		}
		backend, err = sqldb.OpenSQLite(ctx, cfg.SQLite.Path)
	case DriverPostgres:
		if cfg.Postgres == nil {
			return nil, errors.New("storage.postgres is not configured")
		}
		backend, err = sqldb.OpenPostgres(ctx, cfg.Postgres.DSN)
	case DriverRedis:
		if cfg.Redis == nil {
			return nil, errors.New("storage.redis is not configured")
		}
		backend, err = redisstorage.NewBackend(ctx, redisstorage.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case DriverS3:
		if cfg.S3 == nil {
			return nil, errors.New("storage.s3 is not configured")
		}
		backend, err = s3storage.NewBackend(ctx, s3storage.Options{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Driver, err)
	}

	logger.Info("storage opened", zap.String("driver", cfg.Driver), zap.String("key", cfg.Key))

	return backend, nil
}
