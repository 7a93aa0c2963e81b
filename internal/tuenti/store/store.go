package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Repositories hang off it so the
// same code runs against the database or inside a transaction (Tx).
type Store interface {
	Accounts() Accounts
	Profiles() Profiles
	Invitations() Invitations
	Posts() Posts
	Media() Media
	Friendships() Friendships
	Notifications() Notifications
	Sessions() Sessions
	VerificationCodes() VerificationCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	// Inside fn use only the tx repositories: the database holds a single
	// connection and reaching for the outer Store would block.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount fails with ErrAlreadyExists for a taken email.
	CreateAccount(ctx context.Context, a domain.Account) error
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error
	MarkEmailVerified(ctx context.Context, id string, at time.Time) error
}

type Profiles interface {
	CreateProfile(ctx context.Context, p domain.Profile) error
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
	// GetProfiles returns the profiles that exist among ids, keyed by id.
	GetProfiles(ctx context.Context, ids []string) (map[string]domain.Profile, error)
	UpdateProfile(ctx context.Context, p domain.Profile) error
}

type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByCodeHash returns the invitation whatever its state.
	GetInvitationByCodeHash(ctx context.Context, hash string) (domain.Invitation, error)

	// ListInvitationsByCreator returns newest first.
	ListInvitationsByCreator(ctx context.Context, createdBy string) ([]domain.Invitation, error)

	// ConsumeInvitation marks the invitation used by usedBy only if it is
	// still unused and unexpired at now. It returns ErrNotFound when that
	// condition no longer holds, which is how a concurrent redemption of the
	// same code shows up.
	ConsumeInvitation(ctx context.Context, id, usedBy string, now time.Time) error

	// DeleteExpiredInvitations removes unused invitations past expiry.
	DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error)
}

// PostQuery selects posts for the feed or a profile page. When AuthorID is
// set it replaces the audience implied by Filter; FeedPhotos still limits
// the result to posts with media.
type PostQuery struct {
	ViewerID string
	Filter   domain.FeedFilter
	AuthorID string
	Before   string // exclusive post id cursor
	Limit    int
}

// PostRow is a post joined to its author and optional media.
type PostRow struct {
	Post   domain.Post
	Author domain.Profile
	Media  *domain.Media
}

type Posts interface {
	CreatePost(ctx context.Context, p domain.Post) error
	GetPost(ctx context.Context, id string) (PostRow, error)
	// ListPosts returns newest first.
	ListPosts(ctx context.Context, q PostQuery) ([]PostRow, error)
}

type Media interface {
	CreateMedia(ctx context.Context, m domain.Media) error
	GetMedia(ctx context.Context, id string) (domain.Media, error)
}

type Friendships interface {
	// CreateFriendship fails with ErrAlreadyExists while a pending or
	// accepted friendship joins the pair in either direction.
	CreateFriendship(ctx context.Context, f domain.Friendship) error
	GetFriendship(ctx context.Context, id string) (domain.Friendship, error)

	// GetFriendshipBetween returns the live (pending or accepted) friendship
	// joining a and b in either direction.
	GetFriendshipBetween(ctx context.Context, a, b string) (domain.Friendship, error)

	// TransitionFriendship moves id from one status to another, returning
	// ErrNotFound when it is not currently in from.
	TransitionFriendship(ctx context.Context, id string, from, to domain.FriendshipStatus, now time.Time) error

	// ListFriends returns the accepted friends of userID ordered by name.
	ListFriends(ctx context.Context, userID string) ([]domain.Profile, error)
	CountFriends(ctx context.Context, userID string) (int, error)

	// ListIncomingRequests returns pending requests addressed to userID,
	// newest first.
	ListIncomingRequests(ctx context.Context, userID string) ([]domain.Friendship, error)
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) error

	// GetNotification only finds notifications addressed to userID.
	GetNotification(ctx context.Context, userID, id string) (domain.Notification, error)

	// ListNotifications returns newest first.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead returns ErrNotFound unless id is addressed to userID.
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// MarkReadByReference marks read the notifications of type typ addressed
	// to userID that point at refID.
	MarkReadByReference(ctx context.Context, userID string, typ domain.NotificationType, refID string) (int64, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)

	// RotateSession swaps the refresh token of a live session. It returns
	// ErrNotFound when oldHash is no longer current, so a replayed refresh
	// token loses the race.
	RotateSession(ctx context.Context, id, oldHash, newHash string, expiresAt, now time.Time) error
	RevokeSession(ctx context.Context, id string, now time.Time) error
	RevokeAccountSessions(ctx context.Context, accountID string, now time.Time) error

	// DeleteStaleSessions removes expired and revoked sessions.
	DeleteStaleSessions(ctx context.Context, now time.Time) (int64, error)
}

type VerificationCodes interface {
	CreateCode(ctx context.Context, c domain.VerificationCode) error

	// ListActiveCodes returns unexpired codes for the account and purpose,
	// newest first.
	ListActiveCodes(ctx context.Context, accountID string, purpose domain.CodePurpose, now time.Time) ([]domain.VerificationCode, error)

	// DeleteCodes removes every code of purpose for the account.
	DeleteCodes(ctx context.Context, accountID string, purpose domain.CodePurpose) error
	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}
