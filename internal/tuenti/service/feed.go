package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
)

var (
	ErrInvalidFeedQuery = errors.New("invalid feed query")
	ErrPostNotFound     = errors.New("post not found")
	ErrMediaNotOwned    = errors.New("media not found or not owned by caller")
)

// FeedQuery pages through posts newest first. Before is the id of the last
// post already seen.
type FeedQuery struct {
	Filter domain.FeedFilter
	Limit  int
	Before string
}

func (q FeedQuery) normalize() (FeedQuery, error) {
	if q.Filter == "" {
		q.Filter = domain.FeedAll
	}
	if _, err := domain.ParseFeedFilter(string(q.Filter)); err != nil {
		return q, err
	}
	switch {
	case q.Limit == 0:
		q.Limit = DefaultFeedLimit
	case q.Limit < 1 || q.Limit > MaxFeedLimit:
		return q, ErrInvalidFeedQuery
	}
	if q.Before != "" {
		if _, err := idx.Parse(q.Before); err != nil {
			return q, ErrInvalidFeedQuery
		}
	}
	return q, nil
}

type FeedService struct {
	Store store.Store
	Now   func() time.Time
}

// LoadFeed returns the dashboard feed of viewerID.
func (s *FeedService) LoadFeed(ctx context.Context, viewerID string, q FeedQuery) (items []domain.FeedItem, err error) {
	ctx, span := tracer.Start(ctx, "FeedService.LoadFeed")
	defer func() { endSpan(span, err) }()

	q, err = q.normalize()
	if err != nil {
		return nil, err
	}

	rows, err := s.Store.Posts().ListPosts(ctx, store.PostQuery{
		ViewerID: viewerID,
		Filter:   q.Filter,
		Before:   q.Before,
		Limit:    q.Limit,
	})
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load feed", slog.Any("error", err))
		return nil, err
	}
	return s.items(rows), nil
}

// ListProfilePosts returns the posts written by profileID.
func (s *FeedService) ListProfilePosts(ctx context.Context, viewerID, profileID string, q FeedQuery) (items []domain.FeedItem, err error) {
	ctx, span := tracer.Start(ctx, "FeedService.ListProfilePosts")
	defer func() { endSpan(span, err) }()

	q, err = q.normalize()
	if err != nil {
		return nil, err
	}

	if _, err := s.Store.Profiles().GetProfile(ctx, profileID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	filter := q.Filter
	if filter != domain.FeedPhotos {
		filter = domain.FeedAll
	}
	rows, err := s.Store.Posts().ListPosts(ctx, store.PostQuery{
		ViewerID: viewerID,
		Filter:   filter,
		AuthorID: profileID,
		Before:   q.Before,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, err
	}
	return s.items(rows), nil
}

// CreatePost publishes a status update, optionally with media the author
// uploaded earlier.
func (s *FeedService) CreatePost(ctx context.Context, authorID, content, mediaID string) (item domain.FeedItem, err error) {
	ctx, span := tracer.Start(ctx, "FeedService.CreatePost")
	defer func() { endSpan(span, err) }()

	now := clock(s.Now)
	content = strings.TrimSpace(content)
	mediaID = strings.TrimSpace(mediaID)

	if err := validatePostContent(content, mediaID != ""); err != nil {
		return domain.FeedItem{}, err
	}

	var row store.PostRow
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if mediaID != "" {
			if err := checkMediaOwner(ctx, tx, authorID, mediaID); err != nil {
				return err
			}
		}
		p := domain.Post{
			ID:        idx.NewAt(now).String(),
			AuthorID:  authorID,
			Content:   content,
			MediaID:   mediaID,
			CreatedAt: now,
		}
		if err := tx.Posts().CreatePost(ctx, p); err != nil {
			return err
		}
		row, err = tx.Posts().GetPost(ctx, p.ID)
		return err
	})
	if err != nil {
		return domain.FeedItem{}, err
	}

	slogx.FromContext(ctx).Info("post created",
		slog.String("post_id", row.Post.ID),
		slog.String("author_id", authorID),
		slog.Bool("has_media", mediaID != ""),
	)
	return s.item(row, now), nil
}

func (s *FeedService) items(rows []store.PostRow) []domain.FeedItem {
	now := clock(s.Now)
	items := make([]domain.FeedItem, len(rows))
	for i, r := range rows {
		items[i] = s.item(r, now)
	}
	return items
}

func (s *FeedService) item(r store.PostRow, now time.Time) domain.FeedItem {
	return domain.FeedItem{
		Post:    r.Post,
		Author:  r.Author,
		Media:   r.Media,
		TimeAgo: domain.TimeAgo(r.Post.CreatedAt, now),
	}
}

func validatePostContent(content string, hasMedia bool) error {
	switch {
	case content == "" && !hasMedia:
		return &ValidationError{Fields: map[string]string{"content": "required"}}
	case utf8.RuneCountInString(content) > domain.MaxPostRunes:
		return &ValidationError{Fields: map[string]string{"content": "too long (max 1000)"}}
	}
	return nil
}

func checkMediaOwner(ctx context.Context, st store.Store, ownerID, mediaID string) error {
	m, err := st.Media().GetMedia(ctx, mediaID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMediaNotOwned
		}
		return err
	}
	if m.OwnerID != ownerID {
		return ErrMediaNotOwned
	}
	return nil
}
