package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, account_id, token_hash, expires_at, revoked, created_at, updated_at`

func scanSession(row scanner) (domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.AccountID, &s.TokenHash, &s.ExpiresAt, &s.Revoked, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.AccountID, s.TokenHash, utc(s.ExpiresAt), s.Revoked, utc(s.CreatedAt), utc(s.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	return scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE token_hash = ?`, hash))
}

func (r *sessionsRepo) GetSession(ctx context.Context, id string) (domain.Session, error) {
	return scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id))
}

func (r *sessionsRepo) RotateSession(ctx context.Context, id, oldHash, newHash string, expiresAt, now time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE sessions
		SET token_hash = ?, expires_at = ?, updated_at = ?
		WHERE id = ? AND token_hash = ? AND revoked = 0 AND expires_at > ?`,
		newHash, utc(expiresAt), utc(now), id, oldHash, utc(now),
	))
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string, now time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1, updated_at = ? WHERE id = ?`, utc(now), id))
}

func (r *sessionsRepo) RevokeAccountSessions(ctx context.Context, accountID string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1, updated_at = ? WHERE account_id = ? AND revoked = 0`,
		utc(now), accountID)
	return err
}

func (r *sessionsRepo) DeleteStaleSessions(ctx context.Context, now time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE revoked = 1 OR expires_at <= ?`, utc(now)))
}
