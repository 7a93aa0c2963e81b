package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type profilesRepo struct {
	db dbtx
}

const profileColumns = `id, first_name, last_name, bio, city, avatar_media_id, created_at, updated_at`

// profileColumnsAs qualifies profileColumns with a table alias.
func profileColumnsAs(alias string) string {
	return alias + `.id, ` + alias + `.first_name, ` + alias + `.last_name, ` + alias + `.bio, ` +
		alias + `.city, ` + alias + `.avatar_media_id, ` + alias + `.created_at, ` + alias + `.updated_at`
}

// profileDest returns scan targets for profileColumns; call finish after Scan.
func profileDest(p *domain.Profile) (dest []any, finish func()) {
	var avatar sql.NullString
	dest = []any{&p.ID, &p.FirstName, &p.LastName, &p.Bio, &p.City, &avatar, &p.CreatedAt, &p.UpdatedAt}
	return dest, func() { p.AvatarMediaID = avatar.String }
}

func scanProfile(row scanner) (domain.Profile, error) {
	var p domain.Profile
	dest, finish := profileDest(&p)
	if err := row.Scan(dest...); err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	finish()
	return p, nil
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FirstName, p.LastName, p.Bio, p.City, nullString(p.AvatarMediaID),
		utc(p.CreatedAt), utc(p.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *profilesRepo) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
}

func (r *profilesRepo) GetProfiles(ctx context.Context, ids []string) (map[string]domain.Profile, error) {
	out := make(map[string]domain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, p domain.Profile) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE profiles
		SET first_name = ?, last_name = ?, bio = ?, city = ?, avatar_media_id = ?, updated_at = ?
		WHERE id = ?`,
		p.FirstName, p.LastName, p.Bio, p.City, nullString(p.AvatarMediaID), utc(p.UpdatedAt), p.ID,
	))
}
