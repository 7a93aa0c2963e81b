package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/stretchr/testify/require"
)

func TestRelationTo(t *testing.T) {
	pending := &domain.Friendship{RequesterID: "a", AddresseeID: "b", Status: domain.FriendshipPending}
	accepted := &domain.Friendship{RequesterID: "a", AddresseeID: "b", Status: domain.FriendshipAccepted}
	rejected := &domain.Friendship{RequesterID: "a", AddresseeID: "b", Status: domain.FriendshipRejected}

	require.Equal(t, domain.RelationSelf, domain.RelationTo("a", "a", nil))
	require.Equal(t, domain.RelationNone, domain.RelationTo("a", "b", nil))
	require.Equal(t, domain.RelationPendingOutgoing, domain.RelationTo("a", "b", pending))
	require.Equal(t, domain.RelationPendingIncoming, domain.RelationTo("b", "a", pending))
	require.Equal(t, domain.RelationFriends, domain.RelationTo("b", "a", accepted))
	require.Equal(t, domain.RelationNone, domain.RelationTo("a", "b", rejected))

	require.Equal(t, "b", accepted.Other("a"))
	require.Equal(t, "a", accepted.Other("b"))
}

func TestParseFeedFilter(t *testing.T) {
	f, err := domain.ParseFeedFilter("")
	require.NoError(t, err)
	require.Equal(t, domain.FeedAll, f)

	f, err = domain.ParseFeedFilter("Photos")
	require.NoError(t, err)
	require.Equal(t, domain.FeedPhotos, f)

	_, err = domain.ParseFeedFilter("videos")
	require.ErrorIs(t, err, domain.ErrUnknownFeedFilter)
}
