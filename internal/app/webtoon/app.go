// Package webtoon собирает приложение платформы: хранилище, сервисы,
// уведомления и HTTP-сервер.
package webtoon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/toonpulse/webtoon-platform/internal/config"
	"github.com/toonpulse/webtoon-platform/internal/kvstore"
	"github.com/toonpulse/webtoon-platform/internal/lib/jwt"
	"github.com/toonpulse/webtoon-platform/internal/lib/password"
	"github.com/toonpulse/webtoon-platform/internal/migrations"
	"github.com/toonpulse/webtoon-platform/internal/notify"
	authservice "github.com/toonpulse/webtoon-platform/internal/services/auth"
	billingservice "github.com/toonpulse/webtoon-platform/internal/services/billing"
	billingstore "github.com/toonpulse/webtoon-platform/internal/storage/billing"
	"github.com/toonpulse/webtoon-platform/internal/storage/credentials"
	"github.com/toonpulse/webtoon-platform/internal/storage/session"
)

// App объединяет HTTP-сервер и ресурсы, требующие закрытия при остановке.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	closers []io.Closer
}

// New собирает приложение из конфигурации: выбирает бэкенд хранилища,
// схему паролей и канал уведомлений, строит сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "webtoon.New"

	var closers []io.Closer

	kv, closer, err := newKV(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	var notifier notify.Notifier
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.NotificationQueue, logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		closers = append(closers, amqpNotifier)
		notifier = amqpNotifier
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	scheme := password.Scheme(cfg.PasswordScheme)
	sessions := session.New(kv, logger)
	creds := credentials.New(kv, sessions, scheme, logger)
	billingRepo := billingstore.New(kv, logger)

	authService := authservice.New(creds, sessions, notifier, logger)
	billingService := billingservice.New(billingRepo, logger)
	tokens := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, billingService, tokens)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		closers: closers,
	}, nil
}

// newKV создаёт бэкенд хранилища по конфигурации. Для PostgreSQL перед
// использованием накатываются миграции.
func newKV(ctx context.Context, cfg *config.Config) (kvstore.Store, io.Closer, error) {
	switch cfg.KVBackend {
	case "memory":
		return kvstore.NewMemory(), nil, nil
	case "redis":
		rdb, err := kvstore.NewRedis(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, nil, err
		}
		return rdb, rdb, nil
	case "postgres":
		pg, err := kvstore.NewPostgres(cfg.StorageConnectionString)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.Run(pg.DB, "./migrations"); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		return pg, pg, nil
	default:
		return nil, nil, fmt.Errorf("unknown kv backend: %s", cfg.KVBackend)
	}
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		for _, c := range a.closers {
			_ = c.Close()
		}
		return err
	}
}
