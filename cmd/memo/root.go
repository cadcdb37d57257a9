package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	grpcapi "memo-service/internal/api/grpc"
	"memo-service/internal/config"
	"memo-service/internal/logging"
	"memo-service/internal/repository"
	"memo-service/internal/repository/kv"
	svc "memo-service/internal/service"
	"memo-service/internal/service/notes"
	"memo-service/internal/storage"
	"memo-service/internal/storage/backends"
	memov1 "memo-service/pkg/api/memo/v1"
)

// app общее состояние команд
type app struct {
	configPath string
	remote     string
	token      string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// session открытый сервис заметок и источник уведомлений об изменениях
type session struct {
	service svc.NoteService
	watch   func(ctx context.Context) (<-chan struct{}, error)
	close   func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "memo",
		Short: "Local-first notes in the terminal",
		Long: `memo keeps a collection of notes in a key-value store (file, SQLite, Postgres,
Redis or S3) or talks to a running memo server with --remote.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := "error"
			if a.verbose {
				level = "debug"
			}
			a.logger, err = logging.New(level)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&a.remote, "remote", "", "address of a memo gRPC server (host:port)")
	rootCmd.PersistentFlags().StringVar(&a.token, "token", "", "auth token for --remote (defaults to server.auth_token)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newTUICmd(a),
		newWatchCmd(a),
	)

	return rootCmd
}

// open открывает локальное хранилище или подключается к серверу
func (a *app) open(ctx context.Context) (*session, error) {
	if a.remote != "" {
		return a.openRemote()
	}

	backend, err := backends.Open(ctx, a.cfg.Storage, a.logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	repo, err := kv.NewRepository(backend, a.cfg.Storage.Key, kv.WithLogger(a.logger.Named("repository")))
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	s := &session{
		service: notes.NewNoteService(repo, nil, a.logger.Named("service")),
		close:   backend.Close,
	}
	if w, ok := backend.(storage.Watcher); ok {
		key := a.cfg.Storage.Key
		s.watch = func(ctx context.Context) (<-chan struct{}, error) {
			return w.Watch(ctx, key)
		}
	}
	return s, nil
}

func (a *app) openRemote() (*session, error) {
	token := a.token
	if token == "" && a.cfg.Server != nil {
		token = a.cfg.Server.AuthToken
	}

	client, err := grpcapi.Dial(a.remote, token)
	if err != nil {
		return nil, err
	}

	return &session{
		service: client,
		close:   client.Close,
		watch: func(ctx context.Context) (<-chan struct{}, error) {
			events, err := client.Watch(ctx)
			if err != nil {
				return nil, err
			}
			changes := make(chan struct{}, 1)
			go func() {
				defer close(changes)
				for range events {
					select {
					case changes <- struct{}{}:
					default:
					}
				}
			}()
			return changes, nil
		},
	}, nil
}

// withSession открывает сессию на время выполнения fn
func (a *app) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.close(); err != nil {
			a.logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	return fn(ctx, s)
}

// checkWarning печатает предупреждение о несохраненном изменении в stderr.
// Такая ошибка не считается провалом команды.
func checkWarning(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if repository.IsPersistWarning(err) {
		fmt.Fprintf(w, "warning: %v\n", err)
		return nil
	}
	return err
}

var errNothingToChange = errors.New("nothing to change: pass --title and/or --content")

// validateFields проверяет ограничения API до записи, чтобы CLI не создавал
// заметки, которые не примут gRPC и HTTP клиенты
func validateFields(title, content string) error {
	if len(title) > memov1.MaxTitleLength {
		return fmt.Errorf("title is too long: %d bytes, max %d", len(title), memov1.MaxTitleLength)
	}
	if len(content) > memov1.MaxContentLength {
		return fmt.Errorf("content is too long: %d bytes, max %d", len(content), memov1.MaxContentLength)
	}
	return nil
}
