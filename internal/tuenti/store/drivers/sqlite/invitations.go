package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, code_hash, created_by, used, used_by, expires_at, created_at, updated_at`

func scanInvitation(row scanner) (domain.Invitation, error) {
	var (
		inv               domain.Invitation
		createdBy, usedBy sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.CodeHash, &createdBy, &inv.Used, &usedBy,
		&inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.CreatedBy = createdBy.String
	inv.UsedBy = usedBy.String
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.CodeHash, nullString(inv.CreatedBy), inv.Used, nullString(inv.UsedBy),
		utc(inv.ExpiresAt), utc(inv.CreatedAt), utc(inv.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByCodeHash(ctx context.Context, hash string) (domain.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE code_hash = ?`, hash))
}

func (r *invitationsRepo) ListInvitationsByCreator(ctx context.Context, createdBy string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE created_by = ? ORDER BY id DESC`, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) ConsumeInvitation(ctx context.Context, id, usedBy string, now time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE invitations
		SET used = 1, used_by = ?, updated_at = ?
		WHERE id = ? AND used = 0 AND expires_at > ?`,
		usedBy, utc(now), id, utc(now),
	))
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE used = 0 AND expires_at <= ?`, utc(now)))
}
