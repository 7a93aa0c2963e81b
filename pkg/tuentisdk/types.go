package tuentisdk

import (
	"time"

	"github.com/aussiebroadwan/tuenti/pkg/formx"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
)

// ============================================================================
// Errors and health
// ============================================================================

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error            string `json:"error" example:"invalid_request"`
	ErrorDescription string `json:"error_description,omitempty" example:"email is required"`

	// Fields maps invalid request fields to a reason.
	Fields map[string]string `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database    string `json:"database" example:"ok"`
	ObjectStore string `json:"object_store" example:"ok"`
	Signer      string `json:"signer" example:"ok"`
}

// JWKSResponse is the key set that verifies tuenti access tokens.
type JWKSResponse jwtx.JWKS

// ============================================================================
// Tokens and sessions
// ============================================================================

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in" example:"900"`
}

type SignInRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type PasswordForgotRequest struct {
	Email string `json:"email" example:"ana@example.com"`
}

type PasswordResetRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Code     string `json:"code" example:"123456"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	Code string `json:"code" example:"123456"`
}

type SessionResponse struct {
	AccountID     string  `json:"account_id"`
	Email         string  `json:"email"`
	EmailVerified bool    `json:"email_verified"`
	Profile       Profile `json:"profile"`
}

// ============================================================================
// Registration and invitations
// ============================================================================

// RegisterRequest is the register step of the signup wizard.
type RegisterRequest = formx.Registration

type RegisterResponse struct {
	AccountID string        `json:"account_id"`
	Profile   Profile       `json:"profile"`
	Tokens    TokenResponse `json:"tokens"`
}

type InvitationValidation struct {
	Valid     bool      `json:"valid"`
	ExpiresAt time.Time `json:"expires_at"`
	Inviter   *Profile  `json:"inviter,omitempty"`
}

type MintInvitationRequest struct {
	// TTLSeconds defaults to one week.
	TTLSeconds int `json:"ttl_seconds,omitempty" example:"604800"`
}

type MintInvitationResponse struct {
	// Code is shown once; only its fingerprint is stored.
	Code       string     `json:"code"`
	Invitation Invitation `json:"invitation"`
}

type Invitation struct {
	ID        string    `json:"id"`
	Used      bool      `json:"used"`
	UsedBy    string    `json:"used_by,omitempty"`
	Expired   bool      `json:"expired"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type InvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
}

// ============================================================================
// Profiles
// ============================================================================

type Profile struct {
	ID            string `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DisplayName   string `json:"display_name"`
	Bio           string `json:"bio,omitempty"`
	City          string `json:"city,omitempty"`
	AvatarMediaID string `json:"avatar_media_id,omitempty"`
}

type ProfilePage struct {
	Profile      Profile `json:"profile"`
	FriendCount  int     `json:"friend_count"`
	Relation     string  `json:"relation" example:"friends"`
	FriendshipID string  `json:"friendship_id,omitempty"`
}

// UpdateProfileRequest leaves omitted fields unchanged.
type UpdateProfileRequest = formx.ProfileUpdate

// ============================================================================
// Feed and media
// ============================================================================

type Media struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type" example:"image/jpeg"`
	SizeBytes   int64  `json:"size_bytes"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	URL         string `json:"url" example:"/v1/media/01J0000000000000000000000"`
}

type FeedItem struct {
	ID        string    `json:"id"`
	Author    Profile   `json:"author"`
	Content   string    `json:"content"`
	Media     *Media    `json:"media,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago" example:"5 minutes ago"`
}

type FeedResponse struct {
	Items []FeedItem `json:"items"`

	// NextBefore is the cursor for the next page, empty on the last page.
	NextBefore string `json:"next_before,omitempty"`
}

type CreatePostRequest struct {
	Content string `json:"content"`
	MediaID string `json:"media_id,omitempty"`
}

type UploadResponse struct {
	Media Media     `json:"media"`
	Post  *FeedItem `json:"post,omitempty"`
}

// ============================================================================
// Friends and notifications
// ============================================================================

type FriendRequestCreate struct {
	UserID string `json:"user_id"`
}

type Friendship struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	AddresseeID string    `json:"addressee_id"`
	Status      string    `json:"status" example:"pending"`
	CreatedAt   time.Time `json:"created_at"`
}

type PendingRequest struct {
	Friendship Friendship `json:"friendship"`
	Requester  Profile    `json:"requester"`
}

type PendingRequestsResponse struct {
	Requests []PendingRequest `json:"requests"`
}

type FriendsResponse struct {
	Friends []Profile `json:"friends"`
}

type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type" example:"friend_request"`
	Actor       Profile   `json:"actor"`
	ReferenceID string    `json:"reference_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
	TimeAgo     string    `json:"time_ago"`
	Label       string    `json:"label"`
	Icon        string    `json:"icon"`
	Target      string    `json:"target" example:"/profile/01J0000000000000000000000"`
	Actions     []string  `json:"actions,omitempty"`
}

type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
