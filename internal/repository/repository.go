package repository

import (
	"context"

	"orfoepiya/internal/domain"
)

// UserRepository defines learner identity operations
type UserRepository interface {
	// UpsertByNickname returns the account for nickname, creating it on first
	// use and touching its last login time otherwise.
	UpsertByNickname(ctx context.Context, nickname string) (*domain.UserAccount, error)
	GetByID(ctx context.Context, id int64) (*domain.UserAccount, error)
}

// StatsRepository defines per-module statistics operations
type StatsRepository interface {
	// GetStats returns nil when the learner has no record for the module
	GetStats(ctx context.Context, userID int64, moduleID string) (*domain.UserStat, error)
	ListStats(ctx context.Context, userID int64) ([]domain.UserStat, error)
	// UpsertStats overwrites the counters of the (userID, moduleID) record
	UpsertStats(ctx context.Context, stat domain.UserStat) (*domain.UserStat, error)
}

// WordSource provides the drill word list
type WordSource interface {
	Words(ctx context.Context) ([]domain.Word, error)
}
