package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"memo-service/internal/config"
	"memo-service/internal/logging"
	"memo-service/internal/server"
	"memo-service/internal/storage/backends"
)

const configFile = "config.yml"

func main() {
	configPath := flag.String("config", configFile, "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "memo server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Загружаем конфигурацию из файла
	appConfig, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	logger, err := logging.New(appConfig.Logger.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Канал для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := backends.Open(ctx, appConfig.Storage, logger.Named("storage"))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()
	logger.Info("storage opened",
		zap.String("driver", appConfig.Storage.Driver),
		zap.String("key", appConfig.Storage.Key),
	)

	srv, err := server.NewServer(appConfig, backend, logger)
	if err != nil {
		return err
	}

	logger.Info("starting Memo Service",
		zap.Stringer("grpc", srv.GRPCAddr()),
		zap.Stringer("http", srv.HTTPAddr()),
	)
	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("Memo Service stopped")
	return nil
}
