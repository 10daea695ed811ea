// Package methodremove реализует HTTP-обработчик удаления платёжного метода.
package methodremove

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

// Service описывает интерфейс бизнес-логики удаления платёжного метода.
type Service interface {
	DeletePaymentMethod(ctx context.Context, userUID, methodID string) ([]models.PaymentMethod, error)
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
// @Summary Удалить платёжный метод
// @Description Удаляет метод; если удалён дефолтный и остались другие, дефолт переназначается.
// @Tags Billing
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор платёжного метода"
// @Success 200 {object} map[string]any "Оставшиеся платёжные методы"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Метод не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /billing/methods/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.methodremove"

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

	methodID := chi.URLParam(r, "id")
	methods, err := h.service.DeletePaymentMethod(r.Context(), userUID, methodID)
	if err != nil {
		if errors.Is(err, billing.ErrNoPaymentMethods) || errors.Is(err, billing.ErrPaymentMethodNotFound) {
			log.Error("payment method not found", slog.String("method_id", methodID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("payment method not found"))
			return
		}
		log.Error("failed to delete payment method", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete payment method"))
		return
	}

	log.Info("payment method deleted", slog.String("method_id", methodID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_methods": methods,
	}))
}
