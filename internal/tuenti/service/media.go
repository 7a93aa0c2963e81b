package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

const DefaultMaxUploadBytes = 10 << 20

var (
	ErrMediaTooLarge    = errors.New("media exceeds the upload limit")
	ErrMediaUnsupported = errors.New("media type not supported")
	ErrMediaEmpty       = errors.New("media is empty")
	ErrMediaNotFound    = errors.New("media not found")
)

// AllowedMediaTypes are the image types accepted for upload, detected from
// content.
var AllowedMediaTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// UploadRequest is one uploaded file. With Share set the upload is also
// published as a post captioned Caption.
type UploadRequest struct {
	OwnerID  string
	Filename string
	Body     io.Reader
	Share    bool
	Caption  string
}

type UploadResult struct {
	Media domain.Media
	Post  *domain.FeedItem
}

type MediaService struct {
	Store    store.Store
	Objects  objectstore.Store
	MaxBytes int64
	Now      func() time.Time
}

// MaxUploadBytes is the largest accepted upload.
func (s *MediaService) MaxUploadBytes() int64 {
	if s.MaxBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return s.MaxBytes
}

// Upload stores the image bytes, records them and optionally shares them.
// The declared filename and content type are never trusted.
func (s *MediaService) Upload(ctx context.Context, req UploadRequest) (res UploadResult, err error) {
	ctx, span := tracer.Start(ctx, "MediaService.Upload")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	caption := strings.TrimSpace(req.Caption)
	if req.Share {
		if err := validatePostContent(caption, true); err != nil {
			return UploadResult{}, err
		}
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, s.MaxUploadBytes()+1))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	switch {
	case len(data) == 0:
		return UploadResult{}, ErrMediaEmpty
	case int64(len(data)) > s.MaxUploadBytes():
		return UploadResult{}, ErrMediaTooLarge
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), AllowedMediaTypes...) {
		log.Info("rejected upload",
			slog.String("owner_id", req.OwnerID),
			slog.String("filename", req.Filename),
			slog.String("detected", mt.String()),
		)
		return UploadResult{}, ErrMediaUnsupported
	}

	m := domain.Media{
		ID:          idx.NewAt(now).String(),
		OwnerID:     req.OwnerID,
		ContentType: mt.String(),
		SizeBytes:   int64(len(data)),
		CreatedAt:   now,
	}
	m.ObjectKey = fmt.Sprintf("media/%s/%s%s", m.OwnerID, m.ID, mt.Extension())

	// webp has no decoder in the standard library; its dimensions stay unset.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		m.Width, m.Height = cfg.Width, cfg.Height
	}

	if _, err := s.Objects.Put(ctx, m.ObjectKey, m.ContentType, bytes.NewReader(data)); err != nil {
		log.Error("failed to store media object", slog.String("key", m.ObjectKey), slog.Any("error", err))
		return UploadResult{}, err
	}

	res.Media = m
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Media().CreateMedia(ctx, m); err != nil {
			return err
		}
		if !req.Share {
			return nil
		}

		p := domain.Post{
			ID:        idx.NewAt(now).String(),
			AuthorID:  m.OwnerID,
			Content:   caption,
			MediaID:   m.ID,
			CreatedAt: now,
		}
		if err := tx.Posts().CreatePost(ctx, p); err != nil {
			return err
		}
		row, err := tx.Posts().GetPost(ctx, p.ID)
		if err != nil {
			return err
		}
		res.Post = &domain.FeedItem{
			Post:    row.Post,
			Author:  row.Author,
			Media:   row.Media,
			TimeAgo: domain.TimeAgo(row.Post.CreatedAt, now),
		}
		return nil
	})
	if err != nil {
		log.Error("failed to record media", slog.String("media_id", m.ID), slog.Any("error", err))
		if derr := s.Objects.Delete(context.WithoutCancel(ctx), m.ObjectKey); derr != nil {
			log.Warn("orphaned media object", slog.String("key", m.ObjectKey), slog.Any("error", derr))
		}
		return UploadResult{}, err
	}

	log.Info("media uploaded",
		slog.String("media_id", m.ID),
		slog.String("owner_id", m.OwnerID),
		slog.String("content_type", m.ContentType),
		slog.Int64("size", m.SizeBytes),
		slog.Bool("shared", req.Share),
	)
	return res, nil
}

// Open returns the media record and its content. The caller closes the
// reader.
func (s *MediaService) Open(ctx context.Context, id string) (domain.Media, io.ReadCloser, error) {
	m, err := s.Store.Media().GetMedia(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Media{}, nil, ErrMediaNotFound
		}
		return domain.Media{}, nil, err
	}

	rc, err := s.Objects.Open(ctx, m.ObjectKey)
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			slogx.FromContext(ctx).Warn("media object missing", slog.String("media_id", m.ID))
			return domain.Media{}, nil, ErrMediaNotFound
		}
		return domain.Media{}, nil, err
	}
	return m, rc, nil
}
