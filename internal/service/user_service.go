package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/repository"
)

// UserService handles registration and credential verification.
type UserService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// RegisterParams holds the validated input for Register.
type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

// Register creates a user with a hashed password and issues an access token.
// A duplicate email surfaces as domain.ErrEmailTaken from the store.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*domain.User, string, error) {
	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:        p.Email,
		Name:         p.Name,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleUser},
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)

	return user, token, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
