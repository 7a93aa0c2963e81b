package sqlite

import (
	"context"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type notificationsRepo struct {
	db dbtx
}

const notificationColumns = `id, user_id, actor_id, type, reference_id, read, created_at`

func scanNotification(row scanner) (domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.ActorID, &n.Type, &n.ReferenceID, &n.Read, &n.CreatedAt)
	if err != nil {
		return domain.Notification{}, mapNotFound(err)
	}
	return n, nil
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.ActorID, string(n.Type), n.ReferenceID, n.Read, utc(n.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) GetNotification(ctx context.Context, userID, id string) (domain.Notification, error) {
	return scanNotification(r.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = ? AND user_id = ?`, id, userID))
}

func (r *notificationsRepo) ListNotifications(
	ctx context.Context,
	userID string,
	unreadOnly bool,
	limit int,
) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND read = 0`
	}
	query += ` ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read = 0`, userID).Scan(&n)
	return n, err
}

func (r *notificationsRepo) MarkRead(ctx context.Context, userID, id string) error {
	// read notifications match too, so marking twice is not an error
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE id = ? AND user_id = ?`, id, userID))
}

func (r *notificationsRepo) MarkReadByReference(
	ctx context.Context,
	userID string,
	typ domain.NotificationType,
	refID string,
) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `
		UPDATE notifications SET read = 1
		WHERE user_id = ? AND type = ? AND reference_id = ? AND read = 0`,
		userID, string(typ), refID))
}

func (r *notificationsRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0`, userID))
}
