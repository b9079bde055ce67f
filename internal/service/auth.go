package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"orfoepiya/internal/domain"
	"orfoepiya/internal/repository"

	"go.uber.org/zap"
)

// AuthService handles nickname login
type AuthService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// LoginByNickname returns the learner for nickname, creating it on first use.
// Repeated logins with the same nickname return the same account.
func (s *AuthService) LoginByNickname(ctx context.Context, nickname string) (*domain.UserAccount, error) {
	nickname, err := NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpsertByNickname(ctx, nickname)
	if err != nil {
		return nil, fmt.Errorf("login %q: %w", nickname, err)
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("nickname", user.Nickname),
	)
	return user, nil
}

// GetUser returns the learner with the given id
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.UserAccount, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return user, nil
}

// NormalizeNickname trims the nickname and checks its length
func NormalizeNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", domain.NewValidationError("nickname", "must not be empty")
	}
	if utf8.RuneCountInString(nickname) > domain.MaxNicknameLength {
		return "", domain.NewValidationError("nickname", fmt.Sprintf("must be at most %d characters", domain.MaxNicknameLength))
	}
	return nickname, nil
}
