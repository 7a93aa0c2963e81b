package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
)

type postsRepo struct {
	db dbtx
}

// Ids of the accepted friends of the bound user; binds the user three times.
const friendIDsSubquery = `
	SELECT CASE WHEN f.requester_id = ? THEN f.addressee_id ELSE f.requester_id END
	FROM friendships f
	WHERE f.status = 'accepted' AND (f.requester_id = ? OR f.addressee_id = ?)`

// A post joins at most one media row through posts.media_id.
var postSelect = `
	SELECT p.id, p.author_id, p.content, p.media_id, p.created_at,
		` + profileColumnsAs("a") + `,
		m.id, m.owner_id, m.object_key, m.content_type, m.size_bytes, m.width, m.height, m.created_at
	FROM posts p
	JOIN profiles a ON a.id = p.author_id
	LEFT JOIN media_uploads m ON m.id = p.media_id`

func scanPostRow(row scanner) (store.PostRow, error) {
	var (
		out     store.PostRow
		mediaID sql.NullString

		mID, mOwner, mKey, mType sql.NullString
		mSize, mWidth, mHeight   sql.NullInt64
		mCreated                 sql.NullTime
	)

	authorDest, finishAuthor := profileDest(&out.Author)

	dest := []any{&out.Post.ID, &out.Post.AuthorID, &out.Post.Content, &mediaID, &out.Post.CreatedAt}
	dest = append(dest, authorDest...)
	dest = append(dest, &mID, &mOwner, &mKey, &mType, &mSize, &mWidth, &mHeight, &mCreated)

	if err := row.Scan(dest...); err != nil {
		return store.PostRow{}, mapNotFound(err)
	}
	finishAuthor()
	out.Post.MediaID = mediaID.String

	if mID.Valid {
		out.Media = &domain.Media{
			ID:          mID.String,
			OwnerID:     mOwner.String,
			ObjectKey:   mKey.String,
			ContentType: mType.String,
			SizeBytes:   mSize.Int64,
			Width:       int(mWidth.Int64),
			Height:      int(mHeight.Int64),
			CreatedAt:   mCreated.Time.UTC(),
		}
	}
	return out, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, author_id, content, media_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.AuthorID, p.Content, nullString(p.MediaID), utc(p.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *postsRepo) GetPost(ctx context.Context, id string) (store.PostRow, error) {
	return scanPostRow(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id))
}

func (r *postsRepo) ListPosts(ctx context.Context, q store.PostQuery) ([]store.PostRow, error) {
	var (
		where []string
		args  []any
	)

	friends := func() string {
		args = append(args, q.ViewerID, q.ViewerID, q.ViewerID)
		return `p.author_id IN (` + friendIDsSubquery + `)`
	}

	switch {
	case q.AuthorID != "":
		where = append(where, `p.author_id = ?`)
		args = append(args, q.AuthorID)
	case q.Filter == domain.FeedMine:
		where = append(where, `p.author_id = ?`)
		args = append(args, q.ViewerID)
	case q.Filter == domain.FeedFriends:
		where = append(where, friends())
	default: // all, photos
		args = append(args, q.ViewerID)
		where = append(where, `(p.author_id = ? OR `+friends()+`)`)
	}

	if q.Filter == domain.FeedPhotos {
		where = append(where, `p.media_id IS NOT NULL`)
	}
	if q.Before != "" {
		where = append(where, `p.id < ?`)
		args = append(args, q.Before)
	}

	query := postSelect + ` WHERE ` + strings.Join(where, ` AND `) + ` ORDER BY p.id DESC LIMIT ?`
	args = append(args, q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.PostRow
	for rows.Next() {
		row, err := scanPostRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
