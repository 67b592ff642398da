package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/repositories"
	"github.com/Askhat-B/esports-hub/utils"
	"github.com/golang-jwt/jwt/v4"
)

const minPasswordLength = 8

// RegisterUserRequest — регистрация нового пользователя.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult возвращается после успешного входа.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type UserService struct {
	repo         repositories.UserRepository
	jwtSecret    []byte
	tokenExpires time.Duration
}

func NewUserService(repo repositories.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		repo:         repo,
		jwtSecret:    []byte(jwtSecret),
		tokenExpires: 24 * time.Hour,
	}
}

func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrValidationFailed
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hash,
		Role:          "user",
		WalletBalance: 0,
		Active:        true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		}
		return nil, err
	}
	return user, nil
}

// Authenticate проверяет пару username/password и выдаёт JWT.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Одинаковый ответ для неизвестного имени и неверного пароля.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenExpires).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}
