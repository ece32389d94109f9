package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/fitplanhub/internal/lib/jwt"
	"github.com/magabrotheeeer/fitplanhub/internal/lib/password"
	"github.com/magabrotheeeer/fitplanhub/internal/models"
	services "github.com/magabrotheeeer/fitplanhub/internal/services/auth"
	"github.com/magabrotheeeer/fitplanhub/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для SessionStore
type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) Save(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *SessionStoreMock) Current(userUID string) (*models.User, bool, error) {
	args := m.Called(userUID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *SessionStoreMock) Delete(userUID string) error {
	return m.Called(userUID).Error(0)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GenerateToken(name, role, userUID string) (string, error) {
	args := m.Called(name, role, userUID)
	return args.String(0), args.Error(1)
}

func (m *JwtMakerMock) ParseToken(token string) (*customjwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.CustomClaims), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		setupMocks func(r *UserRepoMock, s *SessionStoreMock, j *JwtMakerMock)
		wantToken  string
		wantErr    error
	}{
		{
			name: "successful registration of member",
			role: models.RoleMember,
			setupMocks: func(r *UserRepoMock, s *SessionStoreMock, j *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Email == "test@example.com" &&
						u.Name == "testuser" &&
						u.Role == models.RoleMember &&
						u.PasswordHash != "" &&
						u.PasswordHash != "password123"
				})).Return("uid-1", nil).Once()
				s.On("Save", mock.MatchedBy(func(u *models.User) bool {
					return u.UID == "uid-1" && u.PasswordHash == ""
				})).Return(nil).Once()
				j.On("GenerateToken", "testuser", models.RoleMember, "uid-1").
					Return("signed-token", nil).Once()
			},
			wantToken: "signed-token",
		},
		{
			name: "duplicate email",
			role: models.RoleTrainer,
			setupMocks: func(r *UserRepoMock, _ *SessionStoreMock, _ *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).
					Return("", repository.ErrEmailExists).Once()
			},
			wantErr: repository.ErrEmailExists,
		},
		{
			name: "session store failure",
			role: models.RoleMember,
			setupMocks: func(r *UserRepoMock, s *SessionStoreMock, _ *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return("uid-2", nil).Once()
				s.On("Save", mock.Anything).Return(errors.New("redis down")).Once()
			},
			wantErr: nil, // проверяем только факт ошибки
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			sessions := new(SessionStoreMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, sessions, jwtMock)

			svc := services.NewAuthService(repo, sessions, jwtMock, newNoopLogger())

			user, token, err := svc.Register(context.Background(),
				"testuser", "test@example.com", "password123", tt.role)

			if tt.name == "successful registration of member" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, "uid-1", user.UID)
				assert.Empty(t, user.PasswordHash, "hash must never leave the service")
			} else {
				require.Error(t, err)
				assert.Nil(t, user)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
			}

			repo.AssertExpectations(t)
			sessions.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	storedUser := &models.User{
		UID:          "uid-42",
		Name:         "trainer",
		Email:        "trainer@example.com",
		Role:         models.RoleTrainer,
		PasswordHash: hash,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, s *SessionStoreMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			email:    "trainer@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, s *SessionStoreMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "trainer@example.com").
					Return(storedUser, nil).Once()
				s.On("Save", mock.MatchedBy(func(u *models.User) bool {
					return u.UID == "uid-42" && u.PasswordHash == ""
				})).Return(nil).Once()
				j.On("GenerateToken", "trainer", models.RoleTrainer, "uid-42").
					Return("signed-token", nil).Once()
			},
		},
		{
			name:     "wrong password",
			email:    "trainer@example.com",
			password: "wrongpassword",
			setupMocks: func(r *UserRepoMock, _ *SessionStoreMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "trainer@example.com").
					Return(storedUser, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: rawPassword,
			setupMocks: func(r *UserRepoMock, _ *SessionStoreMock, _ *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			sessions := new(SessionStoreMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, sessions, jwtMock)

			svc := services.NewAuthService(repo, sessions, jwtMock, newNoopLogger())

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				// Неизвестный email и неверный пароль неразличимы снаружи
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "signed-token", token)
				assert.Empty(t, user.PasswordHash)
			}

			repo.AssertExpectations(t)
			sessions.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := new(UserRepoMock)
	sessions := new(SessionStoreMock)
	jwtMock := new(JwtMakerMock)
	sessions.On("Delete", "uid-1").Return(nil).Twice()

	svc := services.NewAuthService(repo, sessions, jwtMock, newNoopLogger())

	// Повторный логаут безвреден
	assert.NoError(t, svc.Logout(context.Background(), "uid-1"))
	assert.NoError(t, svc.Logout(context.Background(), "uid-1"))
	sessions.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	claims := &customjwt.CustomClaims{Name: "testuser", Role: models.RoleMember, UserUID: "uid-7"}
	sessionUser := &models.User{UID: "uid-7", Name: "testuser", Role: models.RoleMember}

	tests := []struct {
		name       string
		setupMocks func(s *SessionStoreMock, j *JwtMakerMock)
		wantErr    bool
	}{
		{
			name: "valid token with live session",
			setupMocks: func(s *SessionStoreMock, j *JwtMakerMock) {
				j.On("ParseToken", "token").Return(claims, nil).Once()
				s.On("Current", "uid-7").Return(sessionUser, true, nil).Once()
			},
		},
		{
			name: "valid token but session closed by logout",
			setupMocks: func(s *SessionStoreMock, j *JwtMakerMock) {
				j.On("ParseToken", "token").Return(claims, nil).Once()
				s.On("Current", "uid-7").Return(nil, false, nil).Once()
			},
			wantErr: true,
		},
		{
			name: "malformed token",
			setupMocks: func(_ *SessionStoreMock, j *JwtMakerMock) {
				j.On("ParseToken", "token").Return(nil, errors.New("invalid token")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			sessions := new(SessionStoreMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(sessions, jwtMock)

			svc := services.NewAuthService(repo, sessions, jwtMock, newNoopLogger())

			user, err := svc.ValidateToken(context.Background(), "token")
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "uid-7", user.UID)
			}

			sessions.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}
