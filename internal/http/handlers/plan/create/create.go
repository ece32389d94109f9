// Package create реализует HTTP-обработчик публикации нового плана.
//
// Handler принимает JSON-запрос с данными плана, валидирует их, собирает
// владельца из контекста запроса и вызывает бизнес-логику каталога.
// Право публикации (роль trainer) проверяется в сервисе, а не на клиенте.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitplanhub/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitplanhub/internal/http/response"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/sl"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	catalogservice "github.com/magabrotheeeer/fitplanhub/internal/services/catalog"
)

// Service описывает интерфейс бизнес-логики публикации плана.
type Service interface {
	Create(ctx context.Context, owner *models.User, req models.DummyPlan) (*models.Plan, error)
}

// Handler управляет HTTP-запросами на публикацию планов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики каталога
	validate *validator.Validate // Валидатор структуры входящих данных
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
// @Summary Опубликовать план
// @Description Создает новый план от имени текущего тренера. Описание может быть сгенерировано AI-ассистентом.
// @Tags Plans
// @Accept  json
// @Produce  json
// @Param request body models.DummyPlan true "Данные нового плана"
// @Success 200 {object} map[string]any "Созданный план"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Публикация доступна только тренерам"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /plans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPlan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	owner := ownerFromContext(r.Context())
	if owner == nil {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	plan, err := h.service.Create(r.Context(), owner, req)
	if err != nil {
		if errors.Is(err, catalogservice.ErrNotAllowed) {
			log.Error("plan creation not allowed", slog.String("role", owner.Role))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("only trainers can publish plans"))
			return
		}
		log.Error("failed to create plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create plan"))
		return
	}

	log.Info("plan created", slog.String("id", plan.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plan": plan,
	}))
}

func ownerFromContext(ctx context.Context) *models.User {
	uid, ok := ctx.Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		return nil
	}
	name, _ := ctx.Value(middlewarectx.UserName).(string)
	role, _ := ctx.Value(middlewarectx.Role).(string)
	return &models.User{UID: uid, Name: name, Role: role}
}
