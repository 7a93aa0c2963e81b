package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store/drivers/sqlite"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "tuenti.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// seedUser creates an account and its profile.
func seedUser(t *testing.T, st store.Store, first string) domain.Profile {
	t.Helper()
	ctx := context.Background()
	id := idx.New().String()

	require.NoError(t, st.Accounts().CreateAccount(ctx, domain.Account{
		ID: id, Email: first + "-" + id + "@example.com", PasswordHash: "x", CreatedAt: t0, UpdatedAt: t0,
	}))
	p := domain.Profile{ID: id, FirstName: first, LastName: "Test", CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, st.Profiles().CreateProfile(ctx, p))
	return p
}

func befriend(t *testing.T, st store.Store, a, b string) {
	t.Helper()
	ctx := context.Background()
	f := domain.Friendship{
		ID: idx.New().String(), RequesterID: a, AddresseeID: b,
		Status: domain.FriendshipPending, CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, st.Friendships().CreateFriendship(ctx, f))
	require.NoError(t, st.Friendships().TransitionFriendship(ctx, f.ID,
		domain.FriendshipPending, domain.FriendshipAccepted, t0))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestAccounts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := domain.Account{ID: idx.New().String(), Email: "ana@example.com", PasswordHash: "h", CreatedAt: t0, UpdatedAt: t0}
	require.NoError(t, st.Accounts().CreateAccount(ctx, a))

	dup := a
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Accounts().CreateAccount(ctx, dup), store.ErrAlreadyExists)

	got, err := st.Accounts().GetAccountByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.True(t, got.CreatedAt.Equal(t0))
	require.False(t, got.EmailVerified())

	require.NoError(t, st.Accounts().MarkEmailVerified(ctx, a.ID, t0.Add(time.Hour)))
	got, err = st.Accounts().GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, got.EmailVerified())

	_, err = st.Accounts().GetAccountByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestInvitationConsumedOnce(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ana := seedUser(t, st, "Ana")
	bea := seedUser(t, st, "Bea")

	inv := domain.Invitation{
		ID: idx.New().String(), CodeHash: "hash", CreatedBy: ana.ID,
		ExpiresAt: t0.Add(24 * time.Hour), CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, st.Invitations().CreateInvitation(ctx, inv))

	require.NoError(t, st.Invitations().ConsumeInvitation(ctx, inv.ID, bea.ID, t0.Add(time.Hour)))
	require.ErrorIs(t, st.Invitations().ConsumeInvitation(ctx, inv.ID, ana.ID, t0.Add(time.Hour)), store.ErrNotFound)

	got, err := st.Invitations().GetInvitationByCodeHash(ctx, "hash")
	require.NoError(t, err)
	require.True(t, got.Used)
	require.Equal(t, bea.ID, got.UsedBy)

	list, err := st.Invitations().ListInvitationsByCreator(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestInvitationExpiry(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	bea := seedUser(t, st, "Bea")

	inv := domain.Invitation{
		ID: idx.New().String(), CodeHash: "old", ExpiresAt: t0.Add(time.Hour), CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, st.Invitations().CreateInvitation(ctx, inv))

	require.ErrorIs(t, st.Invitations().ConsumeInvitation(ctx, inv.ID, bea.ID, t0.Add(2*time.Hour)), store.ErrNotFound)

	n, err := st.Invitations().DeleteExpiredInvitations(ctx, t0.Add(2*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestFeedFilters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	me := seedUser(t, st, "Me")
	friend := seedUser(t, st, "Friend")
	stranger := seedUser(t, st, "Stranger")
	befriend(t, st, friend.ID, me.ID)

	photo := domain.Media{
		ID: idx.New().String(), OwnerID: friend.ID, ObjectKey: "media/x.png",
		ContentType: "image/png", SizeBytes: 10, Width: 2, Height: 3, CreatedAt: t0,
	}
	require.NoError(t, st.Media().CreateMedia(ctx, photo))

	post := func(author, content, media string, at time.Time) string {
		id := idx.NewAt(at).String()
		require.NoError(t, st.Posts().CreatePost(ctx, domain.Post{
			ID: id, AuthorID: author, Content: content, MediaID: media, CreatedAt: at,
		}))
		return id
	}
	mine := post(me.ID, "mine", "", t0.Add(1*time.Minute))
	theirs := post(friend.ID, "theirs", "", t0.Add(2*time.Minute))
	pic := post(friend.ID, "pic", photo.ID, t0.Add(3*time.Minute))
	post(stranger.ID, "hidden", "", t0.Add(4*time.Minute))

	ids := func(rows []store.PostRow) []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Post.ID
		}
		return out
	}
	list := func(q store.PostQuery) []store.PostRow {
		q.ViewerID = me.ID
		if q.Limit == 0 {
			q.Limit = 20
		}
		rows, err := st.Posts().ListPosts(ctx, q)
		require.NoError(t, err)
		return rows
	}

	require.Equal(t, []string{pic, theirs, mine}, ids(list(store.PostQuery{Filter: domain.FeedAll})))
	require.Equal(t, []string{mine}, ids(list(store.PostQuery{Filter: domain.FeedMine})))
	require.Equal(t, []string{pic, theirs}, ids(list(store.PostQuery{Filter: domain.FeedFriends})))
	require.Equal(t, []string{pic}, ids(list(store.PostQuery{Filter: domain.FeedPhotos})))

	t.Run("cursor and limit", func(t *testing.T) {
		page := list(store.PostQuery{Filter: domain.FeedAll, Limit: 2})
		require.Equal(t, []string{pic, theirs}, ids(page))
		next := list(store.PostQuery{Filter: domain.FeedAll, Before: theirs})
		require.Equal(t, []string{mine}, ids(next))
	})

	t.Run("media joined at most once", func(t *testing.T) {
		rows := list(store.PostQuery{Filter: domain.FeedAll})
		require.NotNil(t, rows[0].Media)
		require.Equal(t, photo.ID, rows[0].Media.ID)
		require.Equal(t, 2, rows[0].Media.Width)
		require.Nil(t, rows[1].Media)
		require.Equal(t, "Friend", rows[1].Author.FirstName)
	})

	t.Run("profile page", func(t *testing.T) {
		rows := list(store.PostQuery{AuthorID: stranger.ID})
		require.Len(t, rows, 1)
	})
}

func TestFriendships(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	a := seedUser(t, st, "Ana")
	b := seedUser(t, st, "Bea")

	f := domain.Friendship{
		ID: idx.New().String(), RequesterID: a.ID, AddresseeID: b.ID,
		Status: domain.FriendshipPending, CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, st.Friendships().CreateFriendship(ctx, f))

	// reverse direction is the same pair
	rev := domain.Friendship{
		ID: idx.New().String(), RequesterID: b.ID, AddresseeID: a.ID,
		Status: domain.FriendshipPending, CreatedAt: t0, UpdatedAt: t0,
	}
	require.ErrorIs(t, st.Friendships().CreateFriendship(ctx, rev), store.ErrAlreadyExists)

	incoming, err := st.Friendships().ListIncomingRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	between, err := st.Friendships().GetFriendshipBetween(ctx, b.ID, a.ID)
	require.NoError(t, err)
	require.Equal(t, f.ID, between.ID)

	require.NoError(t, st.Friendships().TransitionFriendship(ctx, f.ID, domain.FriendshipPending, domain.FriendshipRejected, t0))
	require.ErrorIs(t,
		st.Friendships().TransitionFriendship(ctx, f.ID, domain.FriendshipPending, domain.FriendshipAccepted, t0),
		store.ErrNotFound)

	// a rejected request frees the pair
	require.NoError(t, st.Friendships().CreateFriendship(ctx, rev))
	require.NoError(t, st.Friendships().TransitionFriendship(ctx, rev.ID, domain.FriendshipPending, domain.FriendshipAccepted, t0))

	friends, err := st.Friendships().ListFriends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.Equal(t, b.ID, friends[0].ID)

	n, err := st.Friendships().CountFriends(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNotificationsBelongToOneUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	a := seedUser(t, st, "Ana")
	b := seedUser(t, st, "Bea")

	n := domain.Notification{
		ID: idx.New().String(), UserID: a.ID, ActorID: b.ID,
		Type: domain.NotifyComment, ReferenceID: "post", CreatedAt: t0,
	}
	require.NoError(t, st.Notifications().CreateNotification(ctx, n))

	_, err := st.Notifications().GetNotification(ctx, b.ID, n.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, st.Notifications().MarkRead(ctx, b.ID, n.ID), store.ErrNotFound)

	count, err := st.Notifications().CountUnread(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, st.Notifications().MarkRead(ctx, a.ID, n.ID))
	unread, err := st.Notifications().ListNotifications(ctx, a.ID, true, 50)
	require.NoError(t, err)
	require.Empty(t, unread)

	all, err := st.Notifications().ListNotifications(ctx, a.ID, false, 50)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.True(t, all[0].Read)
}

func TestUnknownNotificationTypeRejectedBySchema(t *testing.T) {
	st := newTestStore(t)
	a := seedUser(t, st, "Ana")

	err := st.Notifications().CreateNotification(context.Background(), domain.Notification{
		ID: idx.New().String(), UserID: a.ID, ActorID: a.ID, Type: "poke", CreatedAt: t0,
	})
	require.Error(t, err)
}

func TestSessionRotation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	a := seedUser(t, st, "Ana")

	s := domain.Session{
		ID: idx.New().String(), AccountID: a.ID, TokenHash: "one",
		ExpiresAt: t0.Add(time.Hour), CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, st.Sessions().CreateSession(ctx, s))

	require.NoError(t, st.Sessions().RotateSession(ctx, s.ID, "one", "two", t0.Add(2*time.Hour), t0))
	require.ErrorIs(t, st.Sessions().RotateSession(ctx, s.ID, "one", "three", t0.Add(2*time.Hour), t0), store.ErrNotFound)

	got, err := st.Sessions().GetSessionByTokenHash(ctx, "two")
	require.NoError(t, err)
	require.Equal(t, s.ID, got.ID)

	require.NoError(t, st.Sessions().RevokeAccountSessions(ctx, a.ID, t0))
	n, err := st.Sessions().DeleteStaleSessions(ctx, t0)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestWithTxRollsBack(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Accounts().CreateAccount(ctx, domain.Account{
			ID: "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", Email: "tx@example.com", PasswordHash: "h", CreatedAt: t0, UpdatedAt: t0,
		}))
		return store.ErrAlreadyExists
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Accounts().GetAccountByEmail(ctx, "tx@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerificationCodes(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	a := seedUser(t, st, "Ana")

	c := domain.VerificationCode{
		ID: idx.New().String(), AccountID: a.ID, Purpose: domain.PurposePasswordReset,
		Secret: "S", ExpiresAt: t0.Add(10 * time.Minute), CreatedAt: t0,
	}
	require.NoError(t, st.VerificationCodes().CreateCode(ctx, c))

	active, err := st.VerificationCodes().ListActiveCodes(ctx, a.ID, domain.PurposePasswordReset, t0)
	require.NoError(t, err)
	require.Len(t, active, 1)

	active, err = st.VerificationCodes().ListActiveCodes(ctx, a.ID, domain.PurposeEmailVerification, t0)
	require.NoError(t, err)
	require.Empty(t, active)

	n, err := st.VerificationCodes().DeleteExpiredCodes(ctx, t0.Add(time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
