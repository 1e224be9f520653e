package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"postlike/internal/models"
	"postlike/internal/repository"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentityService registers users and exchanges credentials for tokens.
type IdentityService struct {
	repo   *repository.Repository
	hasher *PasswordHasher
	tokens *TokenService
	now    func() time.Time
}

func NewIdentityService(repo *repository.Repository, hasher *PasswordHasher, tokens *TokenService) *IdentityService {
	return &IdentityService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
	}
}

func (s *IdentityService) WithClock(now func() time.Time) *IdentityService {
	s.now = now
	return s
}

func identityLogger() *slog.Logger {
	return slog.Default().With("module", "identity")
}

// Register creates the user and returns an access token. A taken email is
// reported before any field validation.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if in.Email != "" {
		exists, err := s.repo.EmailExists(ctx, in.Email)
		if err != nil {
			return "", err
		}
		if exists {
			return "", fmt.Errorf("%w: not unique email", models.ErrConflict)
		}
	}

	if err := errors.Join(ValidateName(in.Name), ValidateEmail(in.Email), ValidatePassword(in.Password)); err != nil {
		return "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:        in.Name,
		Email:       in.Email,
		Password:    hash,
		LastRequest: s.now().Unix(),
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return "", err
	}

	identityLogger().InfoContext(ctx, "user registered", "user_id", user.ID)
	return s.tokens.Issue(user.ID)
}

func (s *IdentityService) Login(ctx context.Context, in LoginInput) (string, error) {
	if err := errors.Join(ValidateEmail(in.Email), ValidatePassword(in.Password)); err != nil {
		return "", err
	}

	user, err := s.repo.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, models.ErrNotFound) {
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !s.hasher.Matches(user.Password, in.Password) {
		return "", models.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}
