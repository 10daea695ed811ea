// Package packagelist реализует HTTP-обработчик каталога пакетов монет.
package packagelist

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/toonpulse/webtoon-platform/internal/http/response"
	"github.com/toonpulse/webtoon-platform/internal/models"
)

// Service описывает интерфейс каталога пакетов монет.
type Service interface {
	CoinPackages() []models.CoinPackage
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог пакетов монет
// @Tags Billing
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Пакеты монет"
// @Router /billing/packages [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.packagelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	packages := h.service.CoinPackages()

	log.Info("coin packages listed", slog.Int("count", len(packages)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"packages": packages,
	}))
}
