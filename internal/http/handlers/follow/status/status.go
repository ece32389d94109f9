// Package status реализует HTTP-обработчик проверки подписки на тренера.
package status

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

// Service описывает интерфейс бизнес-логики проверки подписки.
type Service interface {
	IsFollowing(ctx context.Context, followerUID, trainerUID string) (bool, error)
}

// Handler управляет HTTP-запросами на проверку подписки.
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
// @Summary Проверить подписку на тренера
// @Description Сообщает, подписан ли текущий пользователь на тренера.
// @Tags Follows
// @Produce  json
// @Param id path string true "UID тренера"
// @Success 200 {object} map[string]any "Статус подписки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /trainers/{id}/follow [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.follow.status"
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

	following, err := h.service.IsFollowing(r.Context(), followerUID, trainerUID)
	if err != nil {
		log.Error("failed to check follow status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check follow status"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"following": following,
	}))
}
