package domain

import "time"

// UserStat is the persisted attempt record of a learner in one module
type UserStat struct {
	UserID         int64
	ModuleID       string
	TotalAttempts  int
	CorrectAnswers int
	LastAttemptAt  *time.Time
}

// Accuracy returns the share of correct answers in whole percent
func (s UserStat) Accuracy() int {
	return Accuracy(s.CorrectAnswers, s.TotalAttempts)
}

// Accuracy returns round(100*correct/total) with halves rounded up, or 0 when
// there were no attempts.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}
