package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

type mediaRepo struct {
	db dbtx
}

const mediaColumns = `id, owner_id, object_key, content_type, size_bytes, width, height, created_at`

func scanMedia(row scanner) (domain.Media, error) {
	var (
		m             domain.Media
		width, height sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.OwnerID, &m.ObjectKey, &m.ContentType, &m.SizeBytes, &width, &height, &m.CreatedAt)
	if err != nil {
		return domain.Media{}, mapNotFound(err)
	}
	m.Width, m.Height = int(width.Int64), int(height.Int64)
	return m, nil
}

func (r *mediaRepo) CreateMedia(ctx context.Context, m domain.Media) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO media_uploads (`+mediaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.OwnerID, m.ObjectKey, m.ContentType, m.SizeBytes,
		nullInt(m.Width), nullInt(m.Height), utc(m.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *mediaRepo) GetMedia(ctx context.Context, id string) (domain.Media, error) {
	return scanMedia(r.db.QueryRowContext(ctx,
		`SELECT `+mediaColumns+` FROM media_uploads WHERE id = ?`, id))
}
