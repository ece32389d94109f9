package models

import "time"

// Subscription представляет покупку плана пользователем.
// На пару (UserUID, PlanID) может существовать не более одной записи —
// инвариант обеспечивается уникальным индексом в базе данных.
// Записи не удаляются: возвратов и отмен в системе нет.
type Subscription struct {
	ID          string    `json:"id"`           // Уникальный идентификатор покупки
	UserUID     string    `json:"user_uid"`     // Покупатель
	PlanID      string    `json:"plan_id"`      // Купленный план
	PurchasedAt time.Time `json:"purchased_at"` // Время покупки
}
