// Package services содержит логику бизнес-уровня для работы с пользователями,
// аутентификацией и сессиями.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/password"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Текст намеренно общий: по нему нельзя понять, существует ли email.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore описывает явное хранилище сессий.
type SessionStore interface {
	// Save записывает сессию пользователя, перезаписывая существующую.
	Save(user *models.User) error
	// Current возвращает пользователя сессии; отсутствие — не ошибка.
	Current(userUID string) (*models.User, bool, error)
	// Delete удаляет сессию, идемпотентно.
	Delete(userUID string) error
}

// AuthService отвечает за регистрацию, авторизацию, сессии и валидацию JWT.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля, открывает
// для него сессию и возвращает пользователя без хэша вместе с токеном.
// Занятый email приводит к ошибке хранилища ErrEmailExists.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword, role string) (*models.User, string, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hashed,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.UID = uid

	safe := user.Sanitized()
	if err := s.sessions.Save(safe); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(safe.Name, safe.Role, safe.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user", slog.String("uid", uid), slog.String("role", role))
	return safe, token, nil
}

// Login проверяет пароль пользователя, открывает сессию и генерирует JWT.
// Несуществующий email и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	safe := user.Sanitized()
	if err := s.sessions.Save(safe); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(safe.Name, safe.Role, safe.UID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user logged in", slog.String("uid", safe.UID))
	return safe, token, nil
}

// Logout закрывает сессию пользователя. Повторный вызов безвреден.
func (s *AuthService) Logout(_ context.Context, userUID string) error {
	return s.sessions.Delete(userUID)
}

// Current возвращает пользователя текущей сессии или (nil, false) для
// неаутентифицированного запроса. Ошибочных исходов нет, кроме сбоя хранилища.
func (s *AuthService) Current(_ context.Context, userUID string) (*models.User, bool, error) {
	return s.sessions.Current(userUID)
}

// ValidateToken проверяет JWT и наличие живой сессии.
// Валидный токен с закрытой сессией отвергается: логаут действует немедленно.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	const op = "services.auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, found, err := s.sessions.Current(claims.UserUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: session is closed", op)
	}
	return user, nil
}
