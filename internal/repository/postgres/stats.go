package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"orfoepiya/internal/domain"

	"github.com/lib/pq"
)

// foreignKeyViolation is the PostgreSQL error code for a missing referenced row
const foreignKeyViolation = "23503"

// StatsRepo implements repository.StatsRepository
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo creates a new stats repository
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetStats returns the learner's record for a module, nil if there is none
func (r *StatsRepo) GetStats(ctx context.Context, userID int64, moduleID string) (*domain.UserStat, error) {
	query := `
		SELECT user_id, module_id, total_attempts, correct_answers, last_attempt_at
		FROM user_stats
		WHERE user_id = $1 AND module_id = $2
	`
	s, err := scanStat(r.db.QueryRowContext(ctx, query, userID, moduleID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListStats returns all module records of the learner ordered by module
func (r *StatsRepo) ListStats(ctx context.Context, userID int64) ([]domain.UserStat, error) {
	query := `
		SELECT user_id, module_id, total_attempts, correct_answers, last_attempt_at
		FROM user_stats
		WHERE user_id = $1
		ORDER BY module_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.UserStat
	for rows.Next() {
		s, err := scanStat(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *s)
	}

	return stats, rows.Err()
}

// UpsertStats overwrites the counters of the record, creating it if needed.
// Counters are absolute values, never increments.
func (r *StatsRepo) UpsertStats(ctx context.Context, stat domain.UserStat) (*domain.UserStat, error) {
	query := `
		INSERT INTO user_stats (user_id, module_id, total_attempts, correct_answers, last_attempt_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, module_id)
		DO UPDATE SET
			total_attempts = EXCLUDED.total_attempts,
			correct_answers = EXCLUDED.correct_answers,
			last_attempt_at = EXCLUDED.last_attempt_at,
			updated_at = NOW()
		RETURNING user_id, module_id, total_attempts, correct_answers, last_attempt_at
	`
	s, err := scanStat(r.db.QueryRowContext(ctx, query,
		stat.UserID, stat.ModuleID, stat.TotalAttempts, stat.CorrectAnswers,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("user %d: %w", stat.UserID, domain.ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStat(row rowScanner) (*domain.UserStat, error) {
	var s domain.UserStat
	var lastAttempt sql.NullTime
	if err := row.Scan(&s.UserID, &s.ModuleID, &s.TotalAttempts, &s.CorrectAnswers, &lastAttempt); err != nil {
		return nil, err
	}
	if lastAttempt.Valid {
		s.LastAttemptAt = &lastAttempt.Time
	}
	return &s, nil
}
