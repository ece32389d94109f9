package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// MockService реализует интерфейс purchase.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Purchase(ctx context.Context, userUID, planID string) (*models.Subscription, error) {
	args := m.Called(ctx, userUID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func TestPurchaseHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sub := &models.Subscription{ID: "sub-1", UserUID: "member-1", PlanID: "plan-1"}

	tests := []struct {
		name           string
		planID         string
		authed         bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешная покупка",
			planID: "plan-1",
			authed: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "member-1", "plan-1").Return(sub, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"sub-1"`,
		},
		{
			name:   "план не найден",
			planID: "ghost",
			authed: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "member-1", "ghost").
					Return(nil, fmt.Errorf("storage.GetPlan: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"plan not found"}`,
		},
		{
			name:   "повторная покупка",
			planID: "plan-1",
			authed: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "member-1", "plan-1").
					Return(nil, fmt.Errorf("storage.CreateSubscription: %w", repository.ErrAlreadySubscribed))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"already subscribed"}`,
		},
		{
			name:           "пользователь не авторизован",
			planID:         "plan-1",
			authed:         false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:   "ошибка сервиса",
			planID: "plan-1",
			authed: true,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "member-1", "plan-1").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to purchase plan"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/plans/"+tt.planID+"/purchase", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.planID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.authed {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "member-1"))
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
