package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	grpcapi "memo-service/internal/api/grpc"
	httpapi "memo-service/internal/api/http"
	"memo-service/internal/config"
	"memo-service/internal/repository/kv"
	"memo-service/internal/service/notes"
	"memo-service/internal/storage"
)

// Server представляет сервер приложения с gRPC и HTTP API
type Server struct {
	grpcServer   *grpc.Server
	grpcListener net.Listener

	httpServer   *http.Server
	httpListener net.Listener

	// Контекст сервера для graceful shutdown стримов.
	// Отменяется при shutdown, чтобы WatchNotes и websocket-лента завершились.
	ctx    context.Context
	cancel context.CancelFunc

	cfg    *config.Config
	logger *zap.Logger
}

// NewServer открывает порты и собирает компоненты (Repository → Service → Handlers)
// поверх переданного хранилища. Хранилище закрывает вызывающий.
func NewServer(cfg *config.Config, backend storage.Backend, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	noteRepo, err := kv.NewRepository(backend, cfg.Storage.Key, kv.WithLogger(logger.Named("repository")))
	if err != nil {
		return nil, fmt.Errorf("kv.NewRepository: %w", err)
	}

	events := notes.NewEventService()
	noteSvc := notes.NewNoteService(noteRepo, events, logger.Named("service"))

	serverCtx, serverCancel := context.WithCancel(context.Background())

	grpcAddr := net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Server.PortGRPC))
	grpcListener, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		serverCancel()
		return nil, fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}

	httpAddr := net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Server.PortHTTP))
	httpListener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		serverCancel()
		_ = grpcListener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	grpcHandler := grpcapi.NewHandler(serverCtx, noteSvc, events, logger.Named("grpc"))
	grpcServer := grpcapi.NewServer(grpcHandler, cfg.Server.AuthToken, logger.Named("grpc"))

	httpHandler := httpapi.NewHandler(serverCtx, noteSvc, events, logger.Named("http"))
	httpServer := &http.Server{
		Handler:           httpapi.NewRouter(httpHandler, cfg.Gateway, cfg.Server.AuthToken, logger.Named("http")),
		ReadTimeout:       seconds(cfg.Server.HTTPReadTimeout),
		WriteTimeout:      seconds(cfg.Server.HTTPWriteTimeout),
		IdleTimeout:       seconds(cfg.Server.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(cfg.Server.HTTPReadHeaderTimeout),
	}

	return &Server{
		grpcServer:   grpcServer,
		grpcListener: grpcListener,
		httpServer:   httpServer,
		httpListener: httpListener,
		ctx:          serverCtx,
		cancel:       serverCancel,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

// GRPCAddr адрес, на котором слушает gRPC сервер
func (s *Server) GRPCAddr() net.Addr {
	return s.grpcListener.Addr()
}

// HTTPAddr адрес, на котором слушает HTTP API
func (s *Server) HTTPAddr() net.Addr {
	return s.httpListener.Addr()
}

// Run запускает gRPC и HTTP серверы и блокируется до отмены ctx или ошибки
// одного из серверов. В обоих случаях выполняется graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("gRPC server listening", zap.Stringer("addr", s.GRPCAddr()))
		if err := s.grpcServer.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.logger.Info("HTTP API listening", zap.Stringer("addr", s.HTTPAddr()))
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown выполняет graceful shutdown серверов в пределах graceful_shutdown_timeout
func (s *Server) Shutdown() error {
	s.logger.Info("starting graceful shutdown")

	// Контекст сервера отменяется ПЕРЕД GracefulStop: стримы не завершаются
	// сами по себе, в отличие от unary методов
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), seconds(s.cfg.Server.GracefulShutdownTimeout))
	defer cancel()

	var httpErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		httpErr = fmt.Errorf("http shutdown: %w", err)
		_ = s.httpServer.Close()
	}

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.logger.Info("gRPC server stopped gracefully")
	case <-ctx.Done():
		s.logger.Warn("graceful shutdown timeout, forcing stop")
		s.grpcServer.Stop()
		return errors.Join(httpErr, ctx.Err())
	}

	return httpErr
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
