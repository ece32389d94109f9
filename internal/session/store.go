// Package session реализует явное хранилище сессий поверх Redis.
//
// Сессия создаётся при регистрации и логине, удаляется при логауте.
// JWT сам по себе недостаточен: токен остаётся криптографически валидным
// до истечения TTL, поэтому middleware дополнительно проверяет наличие
// живой сессии — удалённая сессия означает разлогиненного пользователя.
package session

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// Cache описывает минимальный контракт кеша, нужный хранилищу сессий.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Store хранит сессии пользователей с TTL, равным времени жизни токена.
type Store struct {
	cache Cache
	ttl   time.Duration
}

// New создаёт новое хранилище сессий.
func New(cache Cache, ttl time.Duration) *Store {
	return &Store{cache: cache, ttl: ttl}
}

func sessionKey(userUID string) string {
	return fmt.Sprintf("session:%s", userUID)
}

// Save записывает сессию пользователя, перезаписывая существующую.
func (s *Store) Save(user *models.User) error {
	const op = "session.Save"
	if err := s.cache.Set(sessionKey(user.UID), user.Sanitized(), s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Current возвращает пользователя текущей сессии.
// Отсутствие сессии не является ошибкой: возвращается (nil, false, nil).
func (s *Store) Current(userUID string) (*models.User, bool, error) {
	const op = "session.Current"
	var user models.User
	found, err := s.cache.Get(sessionKey(userUID), &user)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, false, nil
	}
	return &user, true, nil
}

// Delete удаляет сессию пользователя. Идемпотентна: удаление
// отсутствующей сессии не возвращает ошибку.
func (s *Store) Delete(userUID string) error {
	const op = "session.Delete"
	if err := s.cache.Invalidate(sessionKey(userUID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
