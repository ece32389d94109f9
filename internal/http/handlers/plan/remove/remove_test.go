package remove

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
	catalogservice "github.com/magabrotheeeer/fitplanhub/internal/services/catalog"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, requesterUID, planID string) error {
	return m.Called(ctx, requesterUID, planID).Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		planID         string
		authed         bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное удаление",
			planID: "plan-1",
			authed: true,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "trainer-1", "plan-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted":"plan-1"`,
		},
		{
			name:   "план не найден",
			planID: "ghost",
			authed: true,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "trainer-1", "ghost").
					Return(fmt.Errorf("storage.GetPlan: %w", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"plan not found"}`,
		},
		{
			name:   "чужой план",
			planID: "plan-2",
			authed: true,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, "trainer-1", "plan-2").
					Return(fmt.Errorf("services.catalog.Delete: %w", catalogservice.ErrNotAllowed))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"only the owner can delete a plan"}`,
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
				m.On("Delete", mock.Anything, "trainer-1", "plan-1").Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to delete plan"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/plans/"+tt.planID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.planID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.authed {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "trainer-1"))
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
