// Package models содержит доменные структуры маркетплейса тренировочных планов:
// пользователей, планы, покупки и подписки на тренеров.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

// Роли пользователей. Роль назначается при регистрации и далее не меняется.
const (
	RoleMember  = "member"  // Обычный пользователь, покупает планы
	RoleTrainer = "trainer" // Тренер, публикует планы
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string `json:"uid"`   // Уникальный идентификатор пользователя
	Name         string `json:"name"`  // Отображаемое имя
	Email        string `json:"email"` // Электронная почта (уникальная)
	Role         string `json:"role"`  // Роль: member или trainer
	PasswordHash string `json:"-"`     // Хэш пароля; обнуляется перед выдачей наружу
}

// Sanitized возвращает копию пользователя без хэша пароля.
// Все User, покидающие сервис аутентификации, проходят через этот метод.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	return &u
}
