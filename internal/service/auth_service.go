package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/auth"
	"task-manager/internal/logging"
	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// RegisterInput is the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// AuthService registers users, logs them in, and resolves bearer tokens to users.
type AuthService struct {
	users      *repository.UserRepository
	hasher     *auth.PasswordHasher
	tokens     *auth.TokenService
	sessionTTL time.Duration
}

func NewAuthService(users *repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, sessionTTL time.Duration) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, sessionTTL: sessionTTL}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)
	switch {
	case input.Username == "":
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	case input.Email == "":
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	case input.FullName == "":
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	case input.Password == "":
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	_, err := s.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, ErrConflict
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: digest,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}

	logging.WithComponent("auth").WithField("user_id", user.ID).Info("user registered")
	return &user, nil
}

// Login verifies credentials and issues a session token whose subject is the email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnauthorized
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrUnauthorized
	}

	token, err := s.tokens.Issue(map[string]any{"sub": user.Email}, s.sessionTTL)
	if err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user. Every rejection is ErrUnauthorized;
// only store failures are returned as other errors.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	email, ok := auth.Subject(claims)
	if !ok {
		return nil, fmt.Errorf("%w: missing subject", ErrUnauthorized)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", ErrUnauthorized)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
