package service

import (
	"context"
	"crypto/subtle"

	"voci/internal/repository"
)

// AuthService handles bot access control
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	if s.botPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(ctx context.Context, userID int64) error {
	return s.userRepo.AuthorizeUser(ctx, userID)
}

// Admit registers the user and reports whether they may use the bot
func (s *AuthService) Admit(ctx context.Context, userID int64) (bool, error) {
	if err := s.userRepo.EnsureUserExists(ctx, userID); err != nil {
		return false, err
	}
	return s.userRepo.IsAuthorized(ctx, userID)
}
