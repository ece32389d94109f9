// Package services содержит бизнес-логику контроля доступа к платному
// контенту планов: решение о доступе и оформление покупки.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// AccessRepository определяет методы хранилища, нужные контролю доступа.
type AccessRepository interface {
	// GetPlan возвращает план по ID или ошибку ErrNotFound.
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	// CreateSubscription фиксирует покупку; повтор — ErrAlreadySubscribed.
	CreateSubscription(ctx context.Context, sub models.Subscription) error
	// HasAccess отвечает, открыт ли пользователю контент плана.
	HasAccess(ctx context.Context, userUID, planID string) (bool, error)
}

// AccessService реализует решение о доступе и покупку планов.
type AccessService struct {
	repo AccessRepository
	log  *slog.Logger
}

// NewAccessService создает новый экземпляр AccessService.
func NewAccessService(repo AccessRepository, log *slog.Logger) *AccessService {
	return &AccessService{
		repo: repo,
		log:  log,
	}
}

// Grants решает, открыт ли пользователю контент плана.
// Порядок: план отсутствует — отказ; владелец — доступ; покупка — доступ;
// иначе отказ. Чистый предикат без побочных эффектов, безопасен
// для конкурентных вызовов.
func (s *AccessService) Grants(ctx context.Context, userUID, planID string) (bool, error) {
	return s.repo.HasAccess(ctx, userUID, planID)
}

// Purchase оформляет покупку плана пользователем.
// Покупка несуществующего плана — ErrNotFound, повторная покупка —
// ErrAlreadySubscribed. Проверка и вставка сериализуются уникальным
// индексом хранилища, отдельной блокировки здесь нет.
func (s *AccessService) Purchase(ctx context.Context, userUID, planID string) (*models.Subscription, error) {
	if _, err := s.repo.GetPlan(ctx, planID); err != nil {
		return nil, err
	}

	sub := models.Subscription{
		ID:          uuid.New().String(),
		UserUID:     userUID,
		PlanID:      planID,
		PurchasedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.log.Info("plan purchased",
		slog.String("user_uid", userUID), slog.String("plan_id", planID))
	return &sub, nil
}
