package domain

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship is a directed request that becomes mutual once accepted.
type Friendship struct {
	ID          string
	RequesterID string
	AddresseeID string
	Status      FriendshipStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Other returns the participant that is not id.
func (f Friendship) Other(id string) string {
	if f.RequesterID == id {
		return f.AddresseeID
	}
	return f.RequesterID
}

// Relation is how a profile relates to the viewer.
type Relation string

const (
	RelationSelf            Relation = "self"
	RelationNone            Relation = "none"
	RelationFriends         Relation = "friends"
	RelationPendingOutgoing Relation = "pending_outgoing"
	RelationPendingIncoming Relation = "pending_incoming"
)

// RelationTo derives the viewer's relation from the friendship between the
// two, if any.
func RelationTo(viewerID, profileID string, f *Friendship) Relation {
	if viewerID == profileID {
		return RelationSelf
	}
	if f == nil {
		return RelationNone
	}
	switch f.Status {
	case FriendshipAccepted:
		return RelationFriends
	case FriendshipPending:
		if f.RequesterID == viewerID {
			return RelationPendingOutgoing
		}
		return RelationPendingIncoming
	default:
		return RelationNone
	}
}
