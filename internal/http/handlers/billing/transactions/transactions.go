// Package transactions реализует HTTP-обработчик истории транзакций пользователя.
package transactions

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

// Service описывает интерфейс истории транзакций.
type Service interface {
	Transactions(ctx context.Context, userUID string) []models.Transaction
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
// @Summary История транзакций
// @Description Возвращает транзакции текущего пользователя в порядке записи.
// @Tags Billing
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Транзакции"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /billing/transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.transactions"

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

	txs := h.service.Transactions(r.Context(), userUID)

	log.Info("transactions listed", slog.Int("count", len(txs)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transactions": txs,
	}))
}
