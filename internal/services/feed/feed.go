// Package services содержит бизнес-логику социальных связей и ленты:
// подписки на тренеров и подбор планов для пользователя.
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// FeedRepository определяет методы хранилища для связей и ленты.
type FeedRepository interface {
	// CreateFollow создаёт подписку на тренера, идемпотентно.
	CreateFollow(ctx context.Context, follow models.Follow) error
	// DeleteFollow удаляет подписку, отсутствие — не ошибка.
	DeleteFollow(ctx context.Context, followerUID, trainerUID string) error
	// IsFollowing проверяет наличие подписки.
	IsFollowing(ctx context.Context, followerUID, trainerUID string) (bool, error)
	// ListOwnedPlans возвращает купленные планы пользователя.
	ListOwnedPlans(ctx context.Context, userUID string) ([]*models.Plan, error)
	// ListFeedPlans возвращает ленту за вычетом купленного.
	ListFeedPlans(ctx context.Context, userUID string) ([]*models.Plan, error)
}

// FeedService реализует подписки на тренеров и сборку ленты.
type FeedService struct {
	repo FeedRepository
	log  *slog.Logger
}

// NewFeedService создает новый экземпляр FeedService.
func NewFeedService(repo FeedRepository, log *slog.Logger) *FeedService {
	return &FeedService{
		repo: repo,
		log:  log,
	}
}

// Follow подписывает пользователя на тренера. Повторная подписка — no-op.
// Роль тренера намеренно не проверяется: это социальная связь,
// а не выдача доступа.
func (s *FeedService) Follow(ctx context.Context, followerUID, trainerUID string) error {
	follow := models.Follow{
		ID:          uuid.New().String(),
		FollowerUID: followerUID,
		TrainerUID:  trainerUID,
	}
	if err := s.repo.CreateFollow(ctx, follow); err != nil {
		return err
	}
	s.log.Info("follow created",
		slog.String("follower_uid", followerUID), slog.String("trainer_uid", trainerUID))
	return nil
}

// Unfollow отписывает пользователя от тренера, идемпотентно.
func (s *FeedService) Unfollow(ctx context.Context, followerUID, trainerUID string) error {
	return s.repo.DeleteFollow(ctx, followerUID, trainerUID)
}

// IsFollowing проверяет, подписан ли пользователь на тренера.
func (s *FeedService) IsFollowing(ctx context.Context, followerUID, trainerUID string) (bool, error) {
	return s.repo.IsFollowing(ctx, followerUID, trainerUID)
}

// Owned возвращает купленные планы пользователя. Покупки удалённых
// планов молча выпадают из результата.
func (s *FeedService) Owned(ctx context.Context, userUID string) ([]*models.Plan, error) {
	return s.repo.ListOwnedPlans(ctx, userUID)
}

// Feed возвращает планы тренеров, на которых подписан пользователь,
// исключая уже купленные. Исключение пересчитывается на каждом вызове.
func (s *FeedService) Feed(ctx context.Context, userUID string) ([]*models.Plan, error) {
	return s.repo.ListFeedPlans(ctx, userUID)
}
