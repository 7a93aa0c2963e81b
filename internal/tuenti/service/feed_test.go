package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestLoadFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	me := env.register(t, "me").Account.ID
	friend := env.register(t, "friend").Account.ID
	stranger := env.register(t, "stranger").Account.ID
	env.befriend(t, me, friend)

	mine, err := env.feed.CreatePost(ctx, me, "hola", "")
	require.NoError(t, err)
	env.clock.Advance(time.Minute)
	theirs, err := env.feed.CreatePost(ctx, friend, "qué tal", "")
	require.NoError(t, err)
	env.clock.Advance(time.Minute)
	_, err = env.feed.CreatePost(ctx, stranger, "hidden", "")
	require.NoError(t, err)
	env.clock.Advance(3 * time.Minute)

	ids := func(items []domain.FeedItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Post.ID
		}
		return out
	}

	t.Run("all is newest first", func(t *testing.T) {
		items, err := env.feed.LoadFeed(ctx, me, FeedQuery{})
		require.NoError(t, err)
		require.Equal(t, []string{theirs.Post.ID, mine.Post.ID}, ids(items))
		require.Equal(t, "4 minutes ago", items[0].TimeAgo)
		require.Equal(t, "friend", items[0].Author.FirstName)
	})

	t.Run("mine", func(t *testing.T) {
		items, err := env.feed.LoadFeed(ctx, me, FeedQuery{Filter: domain.FeedMine})
		require.NoError(t, err)
		require.Equal(t, []string{mine.Post.ID}, ids(items))
	})

	t.Run("friends", func(t *testing.T) {
		items, err := env.feed.LoadFeed(ctx, me, FeedQuery{Filter: domain.FeedFriends})
		require.NoError(t, err)
		require.Equal(t, []string{theirs.Post.ID}, ids(items))
	})

	t.Run("cursor", func(t *testing.T) {
		items, err := env.feed.LoadFeed(ctx, me, FeedQuery{Limit: 1})
		require.NoError(t, err)
		require.Equal(t, []string{theirs.Post.ID}, ids(items))

		items, err = env.feed.LoadFeed(ctx, me, FeedQuery{Limit: 1, Before: items[0].Post.ID})
		require.NoError(t, err)
		require.Equal(t, []string{mine.Post.ID}, ids(items))
	})

	t.Run("bad queries", func(t *testing.T) {
		_, err := env.feed.LoadFeed(ctx, me, FeedQuery{Limit: MaxFeedLimit + 1})
		require.ErrorIs(t, err, ErrInvalidFeedQuery)
		_, err = env.feed.LoadFeed(ctx, me, FeedQuery{Before: "not-an-id"})
		require.ErrorIs(t, err, ErrInvalidFeedQuery)
		_, err = env.feed.LoadFeed(ctx, me, FeedQuery{Filter: "everything"})
		require.ErrorIs(t, err, domain.ErrUnknownFeedFilter)
	})

	t.Run("profile posts", func(t *testing.T) {
		items, err := env.feed.ListProfilePosts(ctx, me, stranger, FeedQuery{})
		require.NoError(t, err)
		require.Len(t, items, 1)

		_, err = env.feed.ListProfilePosts(ctx, me, idx.New().String(), FeedQuery{})
		require.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestCreatePostValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	me := env.register(t, "me").Account.ID

	var verr *ValidationError

	_, err := env.feed.CreatePost(ctx, me, "   ", "")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "required", verr.Fields["content"])

	_, err = env.feed.CreatePost(ctx, me, strings.Repeat("ñ", domain.MaxPostRunes+1), "")
	require.ErrorAs(t, err, &verr)

	item, err := env.feed.CreatePost(ctx, me, strings.Repeat("ñ", domain.MaxPostRunes), "")
	require.NoError(t, err)
	require.Equal(t, "just now", item.TimeAgo)

	_, err = env.feed.CreatePost(ctx, me, "look", idx.New().String())
	require.ErrorIs(t, err, ErrMediaNotOwned)
}
