// Package methodlist реализует HTTP-обработчик списка платёжных методов пользователя.
package methodlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/toonpulse/webtoon-platform/internal/http/middlewarectx"
	"github.com/toonpulse/webtoon-platform/internal/http/response"
	"github.com/toonpulse/webtoon-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики списка платёжных методов.
type Service interface {
	PaymentMethods(ctx context.Context, userUID string) []models.PaymentMethod
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
// @Summary Список платёжных методов
// @Description Возвращает платёжные методы текущего пользователя в порядке сохранения.
// @Tags Billing
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Платёжные методы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /billing/methods [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.methodlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	methods := h.service.PaymentMethods(r.Context(), userUID)

	log.Info("payment methods listed", slog.Int("count", len(methods)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_methods": methods,
	}))
}
