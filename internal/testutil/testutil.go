package testutil

import (
	"time"

	"orfoepiya/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(id int64, nickname string) *domain.UserAccount {
	now := time.Now()
	return &domain.UserAccount{
		ID:          id,
		Nickname:    nickname,
		LastLoginAt: now,
		CreatedAt:   now,
	}
}

// NewTestStat creates a test stats record
func NewTestStat(userID int64, moduleID string, total, correct int) *domain.UserStat {
	now := time.Now()
	return &domain.UserStat{
		UserID:         userID,
		ModuleID:       moduleID,
		TotalAttempts:  total,
		CorrectAnswers: correct,
		LastAttemptAt:  &now,
	}
}

// NewTestWords returns a small valid word list
func NewTestWords() []domain.Word {
	return []domain.Word{
		{Plain: "заняла", Marked: "занялА"},
		{Plain: "агент", Marked: "агЕнт"},
		{Plain: "алфавит", Marked: "алфавИт"},
	}
}
