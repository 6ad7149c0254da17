package postgres

import (
	"context"
	"time"

	"go-freelance-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type lifecycleRepo struct {
	db *pgxpool.Pool
}

func NewLifecycleRepository(db *pgxpool.Pool) domain.LifecycleRepository {
	return &lifecycleRepo{db: db}
}

// DeleteExpiredUnconfirmed removes every profile whose register-confirm
// token expired before now. Child rows go with the profile via cascade.
func (r *lifecycleRepo) DeleteExpiredUnconfirmed(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM freelancers
		WHERE id IN (
			SELECT freelancer_id FROM freelancer_tokens
			WHERE type = $1 AND expire < $2
		)`, domain.TokenRegisterConfirm, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// PullExpiredResetTokens drops expired password-reset tokens while
// leaving the owning profiles untouched.
func (r *lifecycleRepo) PullExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM freelancer_tokens
		WHERE type = $1 AND expire < $2`, domain.TokenPasswordReset, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
