package webtoon

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/toonpulse/webtoon-platform/internal/http/handlers/auth/login"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/auth/logout"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/auth/profile"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/auth/register"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/auth/remove"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/methodadd"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/methoddefault"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/methodlist"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/methodremove"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/packagelist"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/planlist"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/promo"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/purchase"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/subcancel"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/subscribe"
	"github.com/toonpulse/webtoon-platform/internal/http/handlers/billing/transactions"
	"github.com/toonpulse/webtoon-platform/internal/http/middlewarectx"
	"github.com/toonpulse/webtoon-platform/internal/lib/jwt"
	authservice "github.com/toonpulse/webtoon-platform/internal/services/auth"
	billingservice "github.com/toonpulse/webtoon-platform/internal/services/billing"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.Service, billingService *billingservice.Service, tokens jwt.Maker) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService, tokens).ServeHTTP)
		r.Post("/login", login.New(logger, authService, tokens).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Patch("/profile", profile.New(logger, authService).ServeHTTP)
			r.Delete("/users/{id}", remove.New(logger, authService).ServeHTTP)

			r.Get("/billing/packages", packagelist.New(logger, billingService).ServeHTTP)
			r.Get("/billing/plans", planlist.New(logger, billingService).ServeHTTP)
			r.Post("/billing/methods", methodadd.New(logger, billingService).ServeHTTP)
			r.Get("/billing/methods", methodlist.New(logger, billingService).ServeHTTP)
			r.Put("/billing/methods/{id}/default", methoddefault.New(logger, billingService).ServeHTTP)
			r.Delete("/billing/methods/{id}", methodremove.New(logger, billingService).ServeHTTP)
			r.Post("/billing/purchase", purchase.New(logger, billingService).ServeHTTP)
			r.Get("/billing/transactions", transactions.New(logger, billingService).ServeHTTP)
			r.Post("/billing/subscriptions", subscribe.New(logger, billingService).ServeHTTP)
			r.Delete("/billing/subscriptions/{id}", subcancel.New(logger, billingService).ServeHTTP)
			r.Post("/billing/promo/validate", promo.New(logger, billingService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
