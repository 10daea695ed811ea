package login

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/toonpulse/webtoon-platform/internal/lib/jwt"
	"github.com/toonpulse/webtoon-platform/internal/models"
	"github.com/toonpulse/webtoon-platform/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SignIn(ctx context.Context, email, rawPassword string) (*models.User, error) {
	args := m.Called(ctx, email, rawPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	tokens := jwt.NewMaker("test-secret", time.Hour)

	user := &models.User{UID: "uid-1", Name: "Ann", Email: "ann@x.com", Role: models.RoleReader}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			body: `{"email":"ann@x.com","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("SignIn", mock.Anything, "ann@x.com", "secret1").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "пустой пароль",
			body:           `{"email":"ann@x.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "неверные учётные данные",
			body: `{"email":"ann@x.com","password":"wrong12"}`,
			setupMock: func(m *MockService) {
				m.On("SignIn", mock.Anything, "ann@x.com", "wrong12").
					Return(nil, auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `invalid email or password`,
		},
		{
			name: "ошибка сервиса",
			body: `{"email":"ann@x.com","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("SignIn", mock.Anything, "ann@x.com", "secret1").
					Return(nil, errors.New("storage down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to sign in`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, tokens)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_TokenRoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	tokens := jwt.NewMaker("test-secret", time.Hour)

	user := &models.User{UID: "uid-1", Email: "ann@x.com", Role: models.RoleReader}
	mockService := new(MockService)
	mockService.On("SignIn", mock.Anything, "ann@x.com", "secret1").Return(user, nil)

	handler := New(logger, mockService, tokens)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"ann@x.com","password":"secret1"}`))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Выданный токен должен парситься тем же maker и нести uid пользователя.
	body := w.Body.String()
	start := strings.Index(body, `"token":"`)
	assert.GreaterOrEqual(t, start, 0)
	rest := body[start+len(`"token":"`):]
	tokenStr := rest[:strings.Index(rest, `"`)]

	claims, err := tokens.ParseToken(tokenStr)
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserUID)
	assert.Equal(t, "reader", claims.Role)
}
