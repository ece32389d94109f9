// Package follow реализует HTTP-обработчик подписки на тренера.
// Операция идемпотентна: повторная подписка — no-op.
package follow

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики подписки.
type Service interface {
	Follow(ctx context.Context, followerUID, trainerUID string) error
}

// Handler управляет HTTP-запросами на подписку.
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
// @Summary Подписаться на тренера
// @Description Создаёт подписку текущего пользователя на тренера. Идемпотентна.
// @Tags Follows
// @Produce  json
// @Param id path string true "UID тренера"
// @Success 200 {object} map[string]any "Подписка активна"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /trainers/{id}/follow [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.follow.follow"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	trainerUID := chi.URLParam(r, "id")
	if trainerUID == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	followerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || followerUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Follow(r.Context(), followerUID, trainerUID); err != nil {
		log.Error("failed to follow trainer", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to follow trainer"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"following": true,
	}))
}
