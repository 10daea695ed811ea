package methodadd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/toonpulse/webtoon-platform/internal/http/middlewarectx"
	"github.com/toonpulse/webtoon-platform/internal/models"
)

// MockService реализует интерфейс methodadd.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddPaymentMethod(ctx context.Context, userUID string, method models.PaymentMethod) (*models.PaymentMethod, error) {
	args := m.Called(ctx, userUID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func TestMethodAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	saved := &models.PaymentMethod{ID: "pm-1", UserUID: "uid-1", Type: models.MethodCreditCard, IsDefault: true}

	tests := []struct {
		name           string
		body           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное добавление карты",
			body:     `{"type":"credit_card","card_brand":"visa","card_last4":"4242","card_expiry":"12/27"}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("AddPaymentMethod", mock.Anything, "uid-1", mock.MatchedBy(func(pm models.PaymentMethod) bool {
					return pm.Type == models.MethodCreditCard && pm.CardLast4 == "4242"
				})).Return(saved, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"is_default":true`,
		},
		{
			name:           "неизвестный тип метода",
			body:           `{"type":"cash"}`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Type must be one of the allowed values`,
		},
		{
			name:           "неполный номер карты",
			body:           `{"type":"credit_card","card_last4":"42"}`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field CardLast4 has invalid length`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"type":"credit_card"}`,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/billing/methods", strings.NewReader(tt.body))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
