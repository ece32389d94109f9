// Package services содержит бизнес-логику каталога тренировочных планов:
// создание, удаление, листинг и кеширование чтений.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/magabrotheeeer/fitplanhub/internal/descriptiongen"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// ErrNotAllowed возвращается, когда у пользователя нет прав на операцию:
// создание плана не тренером или удаление чужого плана.
var ErrNotAllowed = errors.New("not allowed")

// PlanRepository определяет методы для работы с планами в хранилище.
type PlanRepository interface {
	// CreatePlan вставляет новый план.
	CreatePlan(ctx context.Context, plan models.Plan) error
	// GetPlan возвращает план по ID.
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	// DeletePlan удаляет план по ID и возвращает количество удалённых записей.
	DeletePlan(ctx context.Context, planID string) (int, error)
	// ListPlans возвращает все планы, новые в начале.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	// ListPlansByTrainer возвращает планы тренера.
	ListPlansByTrainer(ctx context.Context, trainerUID string) ([]*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует бизнес-логику каталога планов.
type CatalogService struct {
	repo      PlanRepository
	cache     Cache
	generator descriptiongen.Generator
	sanitizer *bluemonday.Policy
	log       *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo PlanRepository, cache Cache, generator descriptiongen.Generator, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		cache:     cache,
		generator: generator,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}
}

// Create публикует новый план от имени владельца.
// Право публикации проверяется здесь, а не на клиенте: только пользователь
// с ролью trainer проходит дальше. Имя владельца снимается в план
// в момент создания. Генерация описания не блокирует создание:
// любой сбой генератора заменяется запасным текстом.
func (s *CatalogService) Create(ctx context.Context, owner *models.User, req models.DummyPlan) (*models.Plan, error) {
	const op = "services.catalog.Create"

	if owner.Role != models.RoleTrainer {
		return nil, fmt.Errorf("%s: %w", op, ErrNotAllowed)
	}

	title := strings.TrimSpace(s.sanitizer.Sanitize(req.Title))
	description := strings.TrimSpace(s.sanitizer.Sanitize(req.Description))

	if req.GenerateDescription {
		generated, err := s.generator.Generate(ctx, title, req.DurationDays, owner.Name)
		if err != nil {
			s.log.Warn("description generation failed, using fallback", slog.Any("err", err))
			generated = descriptiongen.Fallback
		}
		description = generated
	}

	plan := models.Plan{
		ID:           uuid.New().String(),
		TrainerUID:   owner.UID,
		TrainerName:  owner.Name,
		Title:        title,
		Description:  description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Tags:         req.Tags,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	s.log.Info("created new plan", slog.String("id", plan.ID), slog.String("trainer_uid", owner.UID))

	cacheKey := fmt.Sprintf("plan:%s", plan.ID)
	if err := s.cache.Set(cacheKey, plan, time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return &plan, nil
}

// Read возвращает план по ID, используя кеш или репозиторий.
func (s *CatalogService) Read(ctx context.Context, planID string) (*models.Plan, error) {
	var result *models.Plan
	cacheKey := fmt.Sprintf("plan:%s", planID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey),
				slog.Any("err", err))
		}
	}
	return result, nil
}

// Delete удаляет план. Разрешено только владельцу; отсутствующий план
// приводит к ошибке хранилища ErrNotFound. Покупки и подписки не трогаются.
func (s *CatalogService) Delete(ctx context.Context, requesterUID, planID string) error {
	const op = "services.catalog.Delete"

	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return err
	}
	if plan.TrainerUID != requesterUID {
		return fmt.Errorf("%s: %w", op, ErrNotAllowed)
	}

	if _, err := s.repo.DeletePlan(ctx, planID); err != nil {
		return err
	}

	// Кеш чистится после удаления строки: конкурентное чтение между
	// инвалидацией и удалением иначе вернуло бы план обратно в кеш.
	cacheKey := fmt.Sprintf("plan:%s", planID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.log.Info("deleted plan", slog.String("id", planID))
	return nil
}

// List возвращает полный каталог планов, новые в начале.
func (s *CatalogService) List(ctx context.Context) ([]*models.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// ListByTrainer возвращает планы конкретного тренера.
func (s *CatalogService) ListByTrainer(ctx context.Context, trainerUID string) ([]*models.Plan, error) {
	return s.repo.ListPlansByTrainer(ctx, trainerUID)
}
