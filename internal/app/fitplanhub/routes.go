// Package fitplanhub предоставляет маршруты для основного приложения.
package fitplanhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/access/check"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/auth/register"
	feedlist "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/feed/list"
	followcreate "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/follow/follow"
	followstatus "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/follow/status"
	followremove "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/follow/unfollow"
	plancreate "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/create"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/health"
	planlist "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/list"
	planread "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/read"
	planremove "github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/remove"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/plan/trainerplans"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/subscription/owned"
	"github.com/magabrotheeeer/fitplanhub/internal/http/handlers/subscription/purchase"
	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	accessservice "github.com/magabrotheeeer/fitplanhub/internal/services/access"
	authservice "github.com/magabrotheeeer/fitplanhub/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/fitplanhub/internal/services/catalog"
	feedservice "github.com/magabrotheeeer/fitplanhub/internal/services/feed"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	catalogService *catalogservice.CatalogService,
	accessService *accessservice.AccessService,
	feedService *feedservice.FeedService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/plans", planlist.New(logger, catalogService).ServeHTTP)
		r.Get("/plans/{id}", planread.New(logger, catalogService).ServeHTTP)
		r.Get("/trainers/{id}/plans", trainerplans.New(logger, catalogService).ServeHTTP)

		// Группа с JWT аутентификацией и проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Get("/me", me.New(logger, authService).ServeHTTP)
			r.Post("/plans", plancreate.New(logger, catalogService).ServeHTTP)
			r.Delete("/plans/{id}", planremove.New(logger, catalogService).ServeHTTP)
			r.Get("/plans/owned", owned.New(logger, feedService).ServeHTTP)
			r.Get("/plans/{id}/access", check.New(logger, accessService).ServeHTTP)
			r.Post("/plans/{id}/purchase", purchase.New(logger, accessService).ServeHTTP)
			r.Put("/trainers/{id}/follow", followcreate.New(logger, feedService).ServeHTTP)
			r.Delete("/trainers/{id}/follow", followremove.New(logger, feedService).ServeHTTP)
			r.Get("/trainers/{id}/follow", followstatus.New(logger, feedService).ServeHTTP)
			r.Get("/feed", feedlist.New(logger, feedService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
