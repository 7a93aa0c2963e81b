package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, password_hash, email_verified_at, created_at, updated_at`

func scanAccount(row scanner) (domain.Account, error) {
	var (
		a        domain.Account
		verified sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &verified, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.EmailVerifiedAt = timePtr(verified)
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, nullTime(a.EmailVerifiedAt), utc(a.CreatedAt), utc(a.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email))
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, utc(now), id))
}

func (r *accountsRepo) MarkEmailVerified(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE accounts SET email_verified_at = COALESCE(email_verified_at, ?), updated_at = ? WHERE id = ?`,
		utc(at), utc(at), id))
}
