// Package purchase реализует HTTP-обработчик покупки пакета монет.
//
// Handler принимает JSON-запрос с идентификаторами пакета и платёжного метода,
// опционально промокодом, и возвращает завершённую транзакцию. Нераспознанный
// промокод не является ошибкой.
package purchase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/toonpulse/webtoon-platform/internal/http/middlewarectx"
	"github.com/toonpulse/webtoon-platform/internal/http/response"
	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/services/billing"
)

// Request — входные данные покупки монет
type Request struct {
	PackageID       string `json:"package_id" validate:"required"`
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
	PromoCode       string `json:"promo_code" validate:"omitempty,max=30"`
}

// Service описывает интерфейс бизнес-логики покупки монет.
type Service interface {
	PurchaseCoins(ctx context.Context, userUID, packageID, paymentMethodID, promoCode string) (*models.Transaction, error)
}

// Handler управляет HTTP-запросами на покупку монет.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Купить пакет монет
// @Description Оформляет покупку пакета монет и возвращает завершённую транзакцию.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Пакет, платёжный метод и опциональный промокод"
// @Success 200 {object} map[string]any "Транзакция покупки"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Неизвестный пакет или ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /billing/purchase [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.purchase"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	tx, err := h.service.PurchaseCoins(r.Context(), userUID, req.PackageID, req.PaymentMethodID, req.PromoCode)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidPackage) {
			log.Error("unknown coin package", slog.String("package_id", req.PackageID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("unknown coin package"))
			return
		}
		log.Error("failed to purchase coins", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to purchase coins"))
		return
	}

	log.Info("coins purchased", slog.String("transaction_id", tx.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"transaction": tx,
	}))
}
