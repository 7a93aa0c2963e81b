package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
)

var (
	ErrSelfFriendship       = errors.New("cannot befriend yourself")
	ErrFriendshipExists     = errors.New("friendship or request already exists")
	ErrFriendshipNotFound   = errors.New("friend request not found")
	ErrFriendshipNotPending = errors.New("friend request is no longer pending")
	ErrNotAddressee         = errors.New("only the addressee can answer a friend request")
)

// PendingRequest is an incoming friend request with its sender.
type PendingRequest struct {
	Friendship domain.Friendship
	Requester  domain.Profile
}

type FriendshipService struct {
	Store store.Store
	Now   func() time.Time
}

// SendRequest asks to befriend to and notifies them.
func (s *FriendshipService) SendRequest(ctx context.Context, from, to string) (f domain.Friendship, err error) {
	ctx, span := tracer.Start(ctx, "FriendshipService.SendRequest")
	defer func() { endSpan(span, err) }()

	log := slogx.FromContext(ctx)
	now := clock(s.Now)

	if from == to {
		return domain.Friendship{}, ErrSelfFriendship
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Profiles().GetProfile(ctx, to); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		f = domain.Friendship{
			ID:          idx.NewAt(now).String(),
			RequesterID: from,
			AddresseeID: to,
			Status:      domain.FriendshipPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Friendships().CreateFriendship(ctx, f); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrFriendshipExists
			}
			return err
		}

		return tx.Notifications().CreateNotification(ctx, domain.Notification{
			ID:          idx.NewAt(now).String(),
			UserID:      to,
			ActorID:     from,
			Type:        domain.NotifyFriendRequest,
			ReferenceID: f.ID,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return domain.Friendship{}, err
	}

	log.Info("friend request sent",
		slog.String("friendship_id", f.ID),
		slog.String("from", from),
		slog.String("to", to),
	)
	return f, nil
}

func (s *FriendshipService) Accept(ctx context.Context, userID, friendshipID string) error {
	return s.respond(ctx, userID, friendshipID, domain.FriendshipAccepted)
}

func (s *FriendshipService) Reject(ctx context.Context, userID, friendshipID string) error {
	return s.respond(ctx, userID, friendshipID, domain.FriendshipRejected)
}

func (s *FriendshipService) respond(ctx context.Context, userID, friendshipID string, to domain.FriendshipStatus) (err error) {
	ctx, span := tracer.Start(ctx, "FriendshipService.Respond")
	defer func() { endSpan(span, err) }()

	now := clock(s.Now)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return answerRequest(ctx, tx, userID, friendshipID, to, now)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("friend request answered",
		slog.String("friendship_id", friendshipID),
		slog.String("status", string(to)),
	)
	return nil
}

// answerRequest moves a pending request addressed to userID to status to
// and marks its friend_request notification read.
func answerRequest(ctx context.Context, st store.Store, userID, friendshipID string, to domain.FriendshipStatus, now time.Time) error {
	f, err := st.Friendships().GetFriendship(ctx, friendshipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFriendshipNotFound
		}
		return err
	}
	if f.AddresseeID != userID {
		if f.RequesterID != userID {
			return ErrFriendshipNotFound
		}
		return ErrNotAddressee
	}

	if err := st.Friendships().TransitionFriendship(ctx, f.ID, domain.FriendshipPending, to, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrFriendshipNotPending
		}
		return err
	}

	_, err = st.Notifications().MarkReadByReference(ctx, userID, domain.NotifyFriendRequest, f.ID)
	return err
}

func (s *FriendshipService) ListFriends(ctx context.Context, userID string) ([]domain.Profile, error) {
	return s.Store.Friendships().ListFriends(ctx, userID)
}

// ListPendingRequests returns requests waiting on userID, newest first.
func (s *FriendshipService) ListPendingRequests(ctx context.Context, userID string) ([]PendingRequest, error) {
	reqs, err := s.Store.Friendships().ListIncomingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.RequesterID
	}
	profiles, err := s.Store.Profiles().GetProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PendingRequest, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, PendingRequest{Friendship: r, Requester: profiles[r.RequesterID]})
	}
	return out, nil
}

func (s *FriendshipService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	f, err := s.Store.Friendships().GetFriendshipBetween(ctx, a, b)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return f.Status == domain.FriendshipAccepted, nil
}
