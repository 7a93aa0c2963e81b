package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type codesRepo struct {
	db dbtx
}

const codeColumns = `id, account_id, purpose, secret, expires_at, created_at`

func (r *codesRepo) CreateCode(ctx context.Context, c domain.VerificationCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_codes (`+codeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.AccountID, string(c.Purpose), c.Secret, utc(c.ExpiresAt), utc(c.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *codesRepo) ListActiveCodes(
	ctx context.Context,
	accountID string,
	purpose domain.CodePurpose,
	now time.Time,
) ([]domain.VerificationCode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+codeColumns+` FROM verification_codes
		WHERE account_id = ? AND purpose = ? AND expires_at > ?
		ORDER BY id DESC`,
		accountID, string(purpose), utc(now))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.VerificationCode
	for rows.Next() {
		var c domain.VerificationCode
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Purpose, &c.Secret, &c.ExpiresAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *codesRepo) DeleteCodes(ctx context.Context, accountID string, purpose domain.CodePurpose) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE account_id = ? AND purpose = ?`, accountID, string(purpose))
	return err
}

func (r *codesRepo) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE expires_at <= ?`, utc(now)))
}
