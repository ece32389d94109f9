// Package repository реализует хранилище данных на основе PostgreSQL
// для четырёх коллекций маркетплейса: пользователей, планов, покупок
// и подписок на тренеров. Уникальные индексы базы сериализуют все
// check-then-insert пути (email, пара покупки, пара подписки), поэтому
// прикладных блокировок не требуется.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Доменные ошибки хранилища. Сервисы проверяют их через errors.Is.
var (
	// ErrNotFound возвращается, когда запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrEmailExists возвращается при регистрации с занятым email.
	ErrEmailExists = errors.New("email already exists")
	// ErrAlreadySubscribed возвращается при повторной покупке плана.
	ErrAlreadySubscribed = errors.New("already subscribed")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с коллекциями маркетплейса.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'plans'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table plans missing or query error: %w", err)
	}
	return nil
}
