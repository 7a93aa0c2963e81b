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

var ErrProfileNotFound = errors.New("profile not found")

// ProfilePage is a profile as seen by a viewer.
type ProfilePage struct {
	Profile      domain.Profile
	FriendCount  int
	Relation     domain.Relation
	FriendshipID string // set while a friendship or request joins them
}

type ProfileService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	p, err := s.Store.Profiles().GetProfile(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Profile{}, ErrProfileNotFound
	}
	return p, err
}

// Page returns profileID with its friend count and its relation to viewerID.
func (s *ProfileService) Page(ctx context.Context, viewerID, profileID string) (page ProfilePage, err error) {
	ctx, span := tracer.Start(ctx, "ProfileService.Page")
	defer func() { endSpan(span, err) }()

	p, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return ProfilePage{}, err
	}

	count, err := s.Store.Friendships().CountFriends(ctx, profileID)
	if err != nil {
		return ProfilePage{}, err
	}

	page = ProfilePage{Profile: p, FriendCount: count}

	var f *domain.Friendship
	if viewerID != profileID {
		got, err := s.Store.Friendships().GetFriendshipBetween(ctx, viewerID, profileID)
		switch {
		case err == nil:
			f = &got
			page.FriendshipID = got.ID
		case !errors.Is(err, store.ErrNotFound):
			return ProfilePage{}, err
		}
	}
	page.Relation = domain.RelationTo(viewerID, profileID, f)
	return page, nil
}

// UpdateProfile applies upd to the caller's own profile. A new avatar must
// be media the caller uploaded.
func (s *ProfileService) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (p domain.Profile, err error) {
	ctx, span := tracer.Start(ctx, "ProfileService.UpdateProfile")
	defer func() { endSpan(span, err) }()

	if err := validationError(upd.Validate()); err != nil {
		return domain.Profile{}, err
	}
	now := clock(s.Now)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		cur, err := tx.Profiles().GetProfile(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		p = domain.ApplyProfileUpdate(cur, upd)
		if p.AvatarMediaID != "" && p.AvatarMediaID != cur.AvatarMediaID {
			if err := checkMediaOwner(ctx, tx, id, p.AvatarMediaID); err != nil {
				return err
			}
		}
		p.UpdatedAt = now
		return tx.Profiles().UpdateProfile(ctx, p)
	})
	if err != nil {
		return domain.Profile{}, err
	}

	slogx.FromContext(ctx).Info("profile updated", slog.String("profile_id", id))
	return p, nil
}
