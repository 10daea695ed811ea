// Package logout реализует HTTP-обработчик выхода пользователя из системы.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/toonpulse/webtoon-platform/internal/http/response"
	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	SignOut(ctx context.Context) error
}

type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Очищает слот активной сессии.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сессия закрыта"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.SignOut(r.Context()); err != nil {
		log.Error("failed to sign out", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign out"))
		return
	}

	log.Info("user signed out")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "signed out",
	}))
}
