package tuentisdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// Session is a signed-in user. Access tokens are refreshed before they
// expire and every rotation is saved to the client's TokenStore. Safe for
// concurrent use.
type Session struct {
	client *Client

	mu     sync.Mutex
	tokens Tokens
}

// AccessToken returns the current access token without refreshing it.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens.AccessToken
}

// validToken returns an access token good for at least refreshBuffer.
func (s *Session) validToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens.AccessToken != "" && s.client.now().Before(s.tokens.ExpiresAt) {
		return s.tokens.AccessToken, nil
	}
	if s.tokens.RefreshToken == "" {
		return "", ErrNotSignedIn
	}

	tok, err := s.client.Refresh(ctx, s.tokens.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.tokens = s.client.tokensFrom(*tok)
	if err := s.client.tokenStore().Save(ctx, s.tokens); err != nil {
		return "", err
	}
	return s.tokens.AccessToken, nil
}

// SignOut revokes the session on the server and forgets the stored tokens.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.doJSON(ctx, http.MethodPost, "/v1/auth/signout", nil, nil, http.StatusNoContent); err != nil {
		return err
	}

	s.mu.Lock()
	s.tokens = Tokens{}
	s.mu.Unlock()
	return s.client.tokenStore().Clear(ctx)
}

// Me returns the signed-in account and profile.
func (s *Session) Me(ctx context.Context) (*SessionResponse, error) {
	var out SessionResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/auth/session", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) SendEmailVerification(ctx context.Context) error {
	return s.doJSON(ctx, http.MethodPost, "/v1/auth/email/send-verification", nil, nil, http.StatusAccepted)
}

func (s *Session) VerifyEmail(ctx context.Context, code string) error {
	return s.doJSON(ctx, http.MethodPost, "/v1/auth/email/verify", VerifyEmailRequest{Code: code}, nil, http.StatusNoContent)
}

// ============================================================================
// Invitations
// ============================================================================

// MintInvitation creates an invitation for a friend. ttlSeconds 0 uses the
// server default.
func (s *Session) MintInvitation(ctx context.Context, ttlSeconds int) (*MintInvitationResponse, error) {
	var out MintInvitationResponse
	req := MintInvitationRequest{TTLSeconds: ttlSeconds}
	if err := s.doJSON(ctx, http.MethodPost, "/v1/invitations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) Invitations(ctx context.Context) ([]Invitation, error) {
	var out InvitationsResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/invitations", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Invitations, nil
}

// ============================================================================
// Profiles and feed
// ============================================================================

// Profile loads a profile page; id "me" is the signed-in user.
func (s *Session) Profile(ctx context.Context, id string) (*ProfilePage, error) {
	var out ProfilePage
	if err := s.doJSON(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var out Profile
	if err := s.doJSON(ctx, http.MethodPatch, "/v1/profiles/me", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// FeedOptions page through a feed. Zero values use the server defaults.
type FeedOptions struct {
	Filter string
	Limit  int
	Before string
}

func (o FeedOptions) query() string {
	v := url.Values{}
	if o.Filter != "" {
		v.Set("filter", o.Filter)
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Before != "" {
		v.Set("before", o.Before)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Feed loads the dashboard. Pass the returned NextBefore as Before for the
// next page.
func (s *Session) Feed(ctx context.Context, opts FeedOptions) (*FeedResponse, error) {
	var out FeedResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/feed"+opts.query(), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ProfilePosts(ctx context.Context, id string, opts FeedOptions) (*FeedResponse, error) {
	var out FeedResponse
	path := "/v1/profiles/" + url.PathEscape(id) + "/posts" + opts.query()
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreatePost(ctx context.Context, req CreatePostRequest) (*FeedItem, error) {
	var out FeedItem
	if err := s.doJSON(ctx, http.MethodPost, "/v1/posts", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadOptions publish the upload as a post when Share is set.
type UploadOptions struct {
	Share   bool
	Caption string
}

// Upload sends an image as multipart form data. The server sniffs the
// content type; filename is informational.
func (s *Session) Upload(ctx context.Context, filename string, r io.Reader, opts UploadOptions) (*UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if opts.Share {
		_ = mw.WriteField("share", "true")
		_ = mw.WriteField("caption", opts.Caption)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/media", &buf,
		map[string]string{"Content-Type": mw.FormDataContentType()})
	if err != nil {
		return nil, err
	}

	var out UploadResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenMedia streams the bytes of an upload. The caller closes the reader.
func (s *Session) OpenMedia(ctx context.Context, id string) (io.ReadCloser, string, error) {
	resp, err := s.client.doRequest(ctx, http.MethodGet, "/v1/media/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, "", parseErrorResponse(resp, body)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// ============================================================================
// Friends
// ============================================================================

func (s *Session) SendFriendRequest(ctx context.Context, userID string) (*Friendship, error) {
	var out Friendship
	req := FriendRequestCreate{UserID: userID}
	if err := s.doJSON(ctx, http.MethodPost, "/v1/friends/requests", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) PendingRequests(ctx context.Context) ([]PendingRequest, error) {
	var out PendingRequestsResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/friends/requests", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

func (s *Session) Friends(ctx context.Context) ([]Profile, error) {
	var out FriendsResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/friends", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Friends, nil
}

func (s *Session) AcceptFriendRequest(ctx context.Context, friendshipID string) error {
	path := "/v1/friends/requests/" + url.PathEscape(friendshipID) + "/accept"
	return s.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}

func (s *Session) RejectFriendRequest(ctx context.Context, friendshipID string) error {
	path := "/v1/friends/requests/" + url.PathEscape(friendshipID) + "/reject"
	return s.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}

// ============================================================================
// Notifications
// ============================================================================

// Notifications lists newest first. limit 0 uses the server default.
func (s *Session) Notifications(ctx context.Context, unreadOnly bool, limit int) ([]Notification, error) {
	v := url.Values{}
	if unreadOnly {
		v.Set("unread_only", "true")
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/notifications"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}

	var out NotificationsResponse
	if err := s.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Notifications, nil
}

func (s *Session) UnreadCount(ctx context.Context) (int, error) {
	var out UnreadCountResponse
	if err := s.doJSON(ctx, http.MethodGet, "/v1/notifications/unread-count", nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.Unread, nil
}

func (s *Session) MarkNotificationRead(ctx context.Context, id string) error {
	path := "/v1/notifications/" + url.PathEscape(id) + "/read"
	return s.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}

func (s *Session) MarkAllNotificationsRead(ctx context.Context) (int64, error) {
	var out MarkAllReadResponse
	if err := s.doJSON(ctx, http.MethodPost, "/v1/notifications/read-all", nil, &out, http.StatusOK); err != nil {
		return 0, err
	}
	return out.Updated, nil
}

// AcceptNotification runs the accept action of a friend request
// notification.
func (s *Session) AcceptNotification(ctx context.Context, id string) error {
	path := "/v1/notifications/" + url.PathEscape(id) + "/accept"
	return s.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}

func (s *Session) RejectNotification(ctx context.Context, id string) error {
	path := "/v1/notifications/" + url.PathEscape(id) + "/reject"
	return s.doJSON(ctx, http.MethodPost, path, nil, nil, http.StatusNoContent)
}
