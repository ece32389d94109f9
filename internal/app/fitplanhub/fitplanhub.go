// Package fitplanhub собирает приложение: хранилище, кеш, сессии,
// сервисы и HTTP-сервер с graceful shutdown.
package fitplanhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/fitplanhub/internal/cache"
	"github.com/magabrotheeeer/fitplanhub/internal/config"
	"github.com/magabrotheeeer/fitplanhub/internal/descriptiongen"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/migrations"
	"github.com/magabrotheeeer/fitplanhub/internal/session"
	accessservice "github.com/magabrotheeeer/fitplanhub/internal/services/access"
	authservice "github.com/magabrotheeeer/fitplanhub/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/fitplanhub/internal/services/catalog"
	feedservice "github.com/magabrotheeeer/fitplanhub/internal/services/feed"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и ресурсы приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует все зависимости приложения и возвращает готовый App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	sessions := session.New(cacheRedis, cfg.TokenTTL)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	generator := descriptiongen.NewClient(cfg.DescriptionGen)

	authService := authservice.NewAuthService(db, sessions, jwtMaker, logger)
	catalogService := catalogservice.NewCatalogService(db, cacheRedis, generator, logger)
	accessService := accessservice.NewAccessService(db, logger)
	feedService := feedservice.NewFeedService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, catalogService, accessService, feedService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до завершения контекста.
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
		_ = a.db.DB.Close()
		return err
	}
}
