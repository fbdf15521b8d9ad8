// Package app wires configuration, storage, services, and transport into a
// running waitlist server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/waitlist-backend/internal/adapter/notify"
	"github.com/heartmarshall/waitlist-backend/internal/adapter/postgres"
	pgwaitlist "github.com/heartmarshall/waitlist-backend/internal/adapter/postgres/waitlist"
	"github.com/heartmarshall/waitlist-backend/internal/adapter/resend"
	"github.com/heartmarshall/waitlist-backend/internal/config"
	"github.com/heartmarshall/waitlist-backend/internal/service/waitlist"
	"github.com/heartmarshall/waitlist-backend/internal/transport/middleware"
	"github.com/heartmarshall/waitlist-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the waitlist service with its notifier, and serves
// HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := waitlist.NewService(
		logger,
		pgwaitlist.New(pool),
		postgres.NewTxManager(pool),
		newNotifier(cfg.Notify, logger),
		cfg.Waitlist,
	)

	mux := rest.NewRouter(
		rest.NewWaitlistHandler(svc, logger),
		rest.NewHealthHandler(pool, BuildVersion()),
	)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newNotifier picks the delivery mode: Resend email when enabled and an API
// key is present, the log otherwise.
func newNotifier(cfg config.NotifyConfig, logger *slog.Logger) waitlist.Notifier {
	if cfg.Enabled && cfg.APIKey != "" {
		return notify.NewEmailNotifier(resend.NewClient(cfg.APIKey, logger), cfg, logger)
	}
	return notify.NewLogNotifier(logger)
}
