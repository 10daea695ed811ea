// Package subcancel реализует HTTP-обработчик отмены подписки.
//
// По умолчанию отмена отложенная: подписка остаётся активной до конца
// оплаченного периода. Параметр запроса immediate=true отменяет сразу.
package subcancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/toonpulse/webtoon-platform/internal/http/middlewarectx"
	"github.com/toonpulse/webtoon-platform/internal/http/response"
	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/services/billing"
)

// Service описывает интерфейс бизнес-логики отмены подписки.
type Service interface {
	CancelSubscription(ctx context.Context, userUID, subscriptionID string, immediate bool) (*models.Subscription, error)
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
// @Summary Отменить подписку
// @Description Отменяет подписку отложенно или сразу при immediate=true.
// @Tags Billing
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор подписки"
// @Param immediate query bool false "Отменить сразу"
// @Success 200 {object} map[string]any "Обновлённая подписка"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /billing/subscriptions/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.subcancel"

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

	subscriptionID := chi.URLParam(r, "id")
	immediate := r.URL.Query().Get("immediate") == "true"

	sub, err := h.service.CancelSubscription(r.Context(), userUID, subscriptionID, immediate)
	if err != nil {
		if errors.Is(err, billing.ErrNoSubscriptions) || errors.Is(err, billing.ErrSubscriptionNotFound) {
			log.Error("subscription not found", slog.String("subscription_id", subscriptionID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
			return
		}
		log.Error("failed to cancel subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to cancel subscription"))
		return
	}

	log.Info("subscription canceled",
		slog.String("subscription_id", subscriptionID),
		slog.Bool("immediate", immediate))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"subscription": sub,
	}))
}
