package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// CreateFollow создаёт подписку на тренера. Идемпотентна:
// существующая пара (follower, trainer) молча остаётся единственной.
func (s *Storage) CreateFollow(ctx context.Context, follow models.Follow) error {
	const op = "storage.CreateFollow"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO follows (id, follower_uid, trainer_uid)
			  VALUES ($1, $2, $3)
			  ON CONFLICT ON CONSTRAINT follows_follower_trainer_unique DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query,
		follow.ID, follow.FollowerUID, follow.TrainerUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteFollow удаляет подписку на тренера. Отсутствие пары не ошибка.
func (s *Storage) DeleteFollow(ctx context.Context, followerUID, trainerUID string) error {
	const op = "storage.DeleteFollow"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM follows WHERE follower_uid = $1 AND trainer_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, followerUID, trainerUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsFollowing проверяет наличие подписки на тренера.
func (s *Storage) IsFollowing(ctx context.Context, followerUID, trainerUID string) (bool, error) {
	const op = "storage.IsFollowing"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM follows
			      WHERE follower_uid = $1 AND trainer_uid = $2
			  )`
	var following bool
	if err := s.DB.QueryRowContext(ctx, query, followerUID, trainerUID).Scan(&following); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return following, nil
}

// ListFeedPlans возвращает планы тренеров, на которых подписан пользователь,
// за вычетом уже купленных. Исключение пересчитывается на каждом вызове,
// флаг нигде не хранится.
func (s *Storage) ListFeedPlans(ctx context.Context, userUID string) ([]*models.Plan, error) {
	const op = "storage.ListFeedPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.trainer_uid, p.trainer_name, p.title, p.description,
			      p.price, p.duration_days, p.tags, p.created_at
			  FROM plans p
			  JOIN follows f ON f.trainer_uid = p.trainer_uid AND f.follower_uid = $1
			  WHERE NOT EXISTS (
			      SELECT 1 FROM subscriptions s
			      WHERE s.user_uid = $1 AND s.plan_id = p.id
			  )
			  ORDER BY p.created_at DESC, p.id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result, err := collectPlans(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
