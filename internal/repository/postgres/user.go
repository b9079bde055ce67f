package postgres

import (
	"context"
	"database/sql"

	"orfoepiya/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// UpsertByNickname creates the account or refreshes its last login time
func (r *UserRepo) UpsertByNickname(ctx context.Context, nickname string) (*domain.UserAccount, error) {
	query := `
		INSERT INTO user_accounts (nickname)
		VALUES ($1)
		ON CONFLICT (nickname)
		DO UPDATE SET last_login_at = NOW(), updated_at = NOW()
		RETURNING id, nickname, last_login_at, created_at
	`
	var u domain.UserAccount
	err := r.db.QueryRowContext(ctx, query, nickname).Scan(&u.ID, &u.Nickname, &u.LastLoginAt, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns the account or nil if it doesn't exist
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	query := `SELECT id, nickname, last_login_at, created_at FROM user_accounts WHERE id = $1`

	var u domain.UserAccount
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Nickname, &u.LastLoginAt, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
