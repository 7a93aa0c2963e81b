package domain

import (
	"errors"
	"strings"
	"time"
)

// MaxPostRunes caps status updates and captions.
const MaxPostRunes = 1000

// Post is a status update or a shared upload. Posts are never edited.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	MediaID   string // empty when the post has no attachment
	CreatedAt time.Time
}

// Media is an uploaded image. The bytes live in the object store under
// ObjectKey.
type Media struct {
	ID          string
	OwnerID     string
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	Width       int
	Height      int
	CreatedAt   time.Time
}

// FeedItem is a post joined to its author and at most one media row.
type FeedItem struct {
	Post    Post
	Author  Profile
	Media   *Media
	TimeAgo string
}

// FeedFilter selects which posts the dashboard shows.
type FeedFilter string

const (
	FeedAll     FeedFilter = "all"     // viewer and friends
	FeedMine    FeedFilter = "mine"    // viewer only
	FeedFriends FeedFilter = "friends" // friends only
	FeedPhotos  FeedFilter = "photos"  // viewer and friends, with media
)

var ErrUnknownFeedFilter = errors.New("unknown feed filter")

// ParseFeedFilter defaults to FeedAll for an empty string.
func ParseFeedFilter(s string) (FeedFilter, error) {
	switch f := FeedFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FeedAll, nil
	case FeedAll, FeedMine, FeedFriends, FeedPhotos:
		return f, nil
	default:
		return "", ErrUnknownFeedFilter
	}
}
