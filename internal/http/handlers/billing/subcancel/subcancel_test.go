package subcancel

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/toonpulse/webtoon-platform/internal/http/middlewarectx"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/services/billing"
)

// MockService реализует интерфейс subcancel.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CancelSubscription(ctx context.Context, userUID, subscriptionID string, immediate bool) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, subscriptionID, immediate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func TestSubCancelHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	deferred := &models.Subscription{ID: "sub-1", Status: models.SubActive, CancelAtPeriodEnd: true}
	canceled := &models.Subscription{ID: "sub-1", Status: models.SubCanceled}

	tests := []struct {
		name           string
		url            string
		subID          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "отложенная отмена",
			url:   "/billing/subscriptions/sub-1",
			subID: "sub-1",
			setupMock: func(m *MockService) {
				m.On("CancelSubscription", mock.Anything, "uid-1", "sub-1", false).Return(deferred, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"cancel_at_period_end":true`,
		},
		{
			name:  "немедленная отмена",
			url:   "/billing/subscriptions/sub-1?immediate=true",
			subID: "sub-1",
			setupMock: func(m *MockService) {
				m.On("CancelSubscription", mock.Anything, "uid-1", "sub-1", true).Return(canceled, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"canceled"`,
		},
		{
			name:  "подписка не найдена",
			url:   "/billing/subscriptions/sub-x",
			subID: "sub-x",
			setupMock: func(m *MockService) {
				m.On("CancelSubscription", mock.Anything, "uid-1", "sub-x", false).
					Return(nil, billing.ErrSubscriptionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `subscription not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.subID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.UserUID, "uid-1")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
