package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type friendshipsRepo struct {
	db dbtx
}

const friendshipColumns = `id, requester_id, addressee_id, status, created_at, updated_at`

func scanFriendship(row scanner) (domain.Friendship, error) {
	var f domain.Friendship
	err := row.Scan(&f.ID, &f.RequesterID, &f.AddresseeID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return domain.Friendship{}, mapNotFound(err)
	}
	return f, nil
}

func (r *friendshipsRepo) CreateFriendship(ctx context.Context, f domain.Friendship) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO friendships (`+friendshipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.RequesterID, f.AddresseeID, string(f.Status), utc(f.CreatedAt), utc(f.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *friendshipsRepo) GetFriendship(ctx context.Context, id string) (domain.Friendship, error) {
	return scanFriendship(r.db.QueryRowContext(ctx,
		`SELECT `+friendshipColumns+` FROM friendships WHERE id = ?`, id))
}

func (r *friendshipsRepo) GetFriendshipBetween(ctx context.Context, a, b string) (domain.Friendship, error) {
	return scanFriendship(r.db.QueryRowContext(ctx, `
		SELECT `+friendshipColumns+` FROM friendships
		WHERE status IN ('pending', 'accepted')
		  AND ((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?))
		LIMIT 1`,
		a, b, b, a))
}

func (r *friendshipsRepo) TransitionFriendship(
	ctx context.Context,
	id string,
	from, to domain.FriendshipStatus,
	now time.Time,
) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE friendships SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), utc(now), id, string(from)))
}

func (r *friendshipsRepo) ListFriends(ctx context.Context, userID string) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumnsAs("pr")+`
		FROM profiles pr
		WHERE pr.id IN (`+friendIDsSubquery+`)
		ORDER BY pr.first_name, pr.last_name, pr.id`,
		userID, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *friendshipsRepo) CountFriends(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM friendships
		WHERE status = 'accepted' AND (requester_id = ? OR addressee_id = ?)`,
		userID, userID).Scan(&n)
	return n, err
}

func (r *friendshipsRepo) ListIncomingRequests(ctx context.Context, userID string) ([]domain.Friendship, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+friendshipColumns+` FROM friendships
		WHERE addressee_id = ? AND status = 'pending'
		ORDER BY id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Friendship
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
