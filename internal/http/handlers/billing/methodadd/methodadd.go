// Package methodadd реализует HTTP-обработчик добавления платёжного метода.
//
// Handler принимает JSON-запрос с данными метода, валидирует их, извлекает
// идентификатор пользователя из контекста и возвращает сохранённый метод.
// Первый метод пользователя всегда становится дефолтным.
package methodadd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/toonpulse/webtoon-platform/internal/http/middlewarectx"
	"github.com/toonpulse/webtoon-platform/internal/http/response"
	"github.com/toonpulse/webtoon-platform/internal/lib/sl"
	"github.com/toonpulse/webtoon-platform/internal/models"
)

// Request — входные данные нового платёжного метода
type Request struct {
	Type         string `json:"type" validate:"required,oneof=credit_card paypal google_pay apple_pay bank_transfer"`
	Label        string `json:"label" validate:"omitempty,max=50"`
	CardBrand    string `json:"card_brand" validate:"omitempty,max=20"`
	CardLast4    string `json:"card_last4" validate:"omitempty,len=4,numeric"`
	CardExpiry   string `json:"card_expiry" validate:"omitempty,datetime=01/06"`
	AccountEmail string `json:"account_email" validate:"omitempty,email"`
	IsDefault    bool   `json:"is_default"`
}

// Service описывает интерфейс бизнес-логики добавления платёжного метода.
type Service interface {
	AddPaymentMethod(ctx context.Context, userUID string, method models.PaymentMethod) (*models.PaymentMethod, error)
}

// Handler управляет HTTP-запросами на добавление платёжных методов.
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
// @Summary Добавить платёжный метод
// @Description Сохраняет платёжный метод текущего пользователя. Первый метод становится дефолтным.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные платёжного метода"
// @Success 200 {object} map[string]any "Сохранённый метод"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /billing/methods [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.methodadd"

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

	method, err := h.service.AddPaymentMethod(r.Context(), userUID, models.PaymentMethod{
		Type:         models.PaymentMethodType(req.Type),
		Label:        req.Label,
		CardBrand:    req.CardBrand,
		CardLast4:    req.CardLast4,
		CardExpiry:   req.CardExpiry,
		AccountEmail: req.AccountEmail,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		log.Error("failed to add payment method", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add payment method"))
		return
	}

	log.Info("payment method added", slog.String("method_id", method.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment_method": method,
	}))
}
