package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// CreateSubscription фиксирует покупку плана пользователем.
// Инвариант "не более одной покупки на пару (пользователь, план)"
// обеспечивается уникальным индексом: повторная покупка, в том числе
// конкурентная, получает ErrAlreadySubscribed.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) error {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (id, user_uid, plan_id, purchased_at)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		sub.ID, sub.UserUID, sub.PlanID, sub.PurchasedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, ErrAlreadySubscribed)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// HasAccess решает, открыт ли пользователю контент плана.
// Порядок решения: план отсутствует — отказ; владелец — доступ;
// есть покупка — доступ; иначе отказ. Один запрос, чистое чтение.
func (s *Storage) HasAccess(ctx context.Context, userUID, planID string) (bool, error) {
	const op = "storage.HasAccess"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1
			      FROM plans p
			      WHERE p.id = $2
			        AND (p.trainer_uid = $1
			             OR EXISTS (
			                 SELECT 1 FROM subscriptions s
			                 WHERE s.user_uid = $1 AND s.plan_id = $2))
			  )`
	var granted bool
	if err := s.DB.QueryRowContext(ctx, query, userUID, planID).Scan(&granted); err != nil {
		// Строка, не приводимая к UUID, эквивалентна несуществующему
		// плану: решение отказоустойчиво в сторону запрета.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return granted, nil
}

// ListOwnedPlans возвращает планы, купленные пользователем.
// Покупки удалённых планов отбрасываются внутренним join.
func (s *Storage) ListOwnedPlans(ctx context.Context, userUID string) ([]*models.Plan, error) {
	const op = "storage.ListOwnedPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.trainer_uid, p.trainer_name, p.title, p.description,
			      p.price, p.duration_days, p.tags, p.created_at
			  FROM subscriptions s
			  JOIN plans p ON p.id = s.plan_id
			  WHERE s.user_uid = $1
			  ORDER BY s.purchased_at DESC`
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
