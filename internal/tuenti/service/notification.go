package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrActionNotAllowed     = errors.New("action not available for this notification")
)

// NotificationView is a notification ready for display.
type NotificationView struct {
	Notification domain.Notification
	Actor        domain.Profile
	Presentation domain.Presentation
	TimeAgo      string
}

type NotificationService struct {
	Store store.Store
	Now   func() time.Time
}

// List returns the notifications of userID, newest first. Rows whose type
// this build does not know are skipped.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) (views []NotificationView, err error) {
	ctx, span := tracer.Start(ctx, "NotificationService.List")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	switch {
	case limit == 0:
		limit = DefaultNotificationLimit
	case limit < 0 || limit > MaxNotificationLimit:
		limit = MaxNotificationLimit
	}

	ns, err := s.Store.Notifications().ListNotifications(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(ns))
	for i, n := range ns {
		ids[i] = n.ActorID
	}
	actors, err := s.Store.Profiles().GetProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	views = make([]NotificationView, 0, len(ns))
	for _, n := range ns {
		p, err := n.Present()
		if err != nil {
			log.Warn("skipping notification of unknown type",
				slog.String("notification_id", n.ID),
				slog.String("type", string(n.Type)),
			)
			continue
		}
		views = append(views, NotificationView{
			Notification: n,
			Actor:        actors[n.ActorID],
			Presentation: p,
			TimeAgo:      domain.TimeAgo(n.CreatedAt, now),
		})
	}
	return views, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.Store.Notifications().CountUnread(ctx, userID)
}

// MarkRead marks one of userID's notifications read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	err := s.Store.Notifications().MarkRead(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Store.Notifications().MarkAllRead(ctx, userID)
}

// Act performs an inline action on a notification and marks it read. Only
// friend requests carry actions; they accept or reject the request.
func (s *NotificationService) Act(ctx context.Context, userID, id string, action domain.NotificationAction) (err error) {
	ctx, span := tracer.Start(ctx, "NotificationService.Act")
	defer func() { endSpan(span, err) }()

	now := clock(s.Now)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Notifications().GetNotification(ctx, userID, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotificationNotFound
			}
			return err
		}
		if !n.Allows(action) {
			return ErrActionNotAllowed
		}

		status := domain.FriendshipAccepted
		if action == domain.ActionReject {
			status = domain.FriendshipRejected
		}
		if err := answerRequest(ctx, tx, userID, n.ReferenceID, status, now); err != nil {
			return err
		}
		return tx.Notifications().MarkRead(ctx, userID, n.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("notification action taken",
		slog.String("notification_id", id),
		slog.String("action", string(action)),
	)
	return nil
}
