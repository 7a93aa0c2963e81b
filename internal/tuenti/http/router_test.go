package http

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore/fs"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store/drivers/sqlite"
	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"
	"github.com/aussiebroadwan/tuenti/pkg/tuentisdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router      *Router
	invitations *service.InvitationService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "tuenti.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	objects, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	pem, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pem)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	verifier := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Issuer: "tuenti-test", Audience: []string{"tuenti"}})

	tokens := &service.TokenIssuer{Signer: signer, Issuer: "tuenti-test", Audience: []string{"tuenti"}}
	hasher := cryptox.NewPasswordHasher("pepper").WithParams(cryptox.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16,
	})

	r := NewRouter(keys, verifier, "test", st, objects, slogx.Discard())
	r.InvitationService = &service.InvitationService{Store: st}
	r.RegistrationService = &service.RegistrationService{Store: st, Hasher: hasher, Tokens: tokens}
	r.AuthService = &service.AuthService{Store: st, Hasher: hasher, Tokens: tokens, Mailer: service.LogMailer{}}
	r.ProfileService = &service.ProfileService{Store: st}
	r.FeedService = &service.FeedService{Store: st}
	r.MediaService = &service.MediaService{Store: st, Objects: objects}
	r.FriendshipService = &service.FriendshipService{Store: st}
	r.NotificationService = &service.NotificationService{Store: st}
	r.ApplyRoutes()

	return &testServer{router: r, invitations: r.InvitationService}
}

type user struct {
	id    string
	token string
	ip    string
}

func (s *testServer) do(t *testing.T, u *user, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u != nil {
		req.Header.Set("X-Forwarded-For", u.ip)
		if u.token != "" {
			req.Header.Set("Authorization", "Bearer "+u.token)
		}
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) mintCode(t *testing.T) string {
	t.Helper()
	code, _, err := s.invitations.Mint(context.Background(), "", 0)
	require.NoError(t, err)
	return code
}

func registration(code, first string) tuentisdk.RegisterRequest {
	return tuentisdk.RegisterRequest{
		InvitationCode:       code,
		Email:                first + "@example.com",
		Password:             "correct horse",
		PasswordConfirmation: "correct horse",
		FirstName:            first,
		LastName:             "Test",
		AcceptedDisclaimer:   true,
	}
}

// register signs up first from its own address.
func (s *testServer) register(t *testing.T, first string) *user {
	t.Helper()
	u := &user{ip: "client-" + first}
	rec := s.do(t, u, http.MethodPost, "/v1/register", registration(s.mintCode(t), first))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decodeBody[tuentisdk.RegisterResponse](t, rec)
	u.id = res.AccountID
	u.token = res.Tokens.AccessToken
	return u
}

func (s *testServer) befriend(t *testing.T, a, b *user) {
	t.Helper()
	rec := s.do(t, a, http.MethodPost, "/v1/friends/requests", tuentisdk.FriendRequestCreate{UserID: b.id})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	f := decodeBody[tuentisdk.Friendship](t, rec)

	rec = s.do(t, b, http.MethodPost, "/v1/friends/requests/"+f.ID+"/accept", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nil, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", decodeBody[tuentisdk.HealthResponse](t, rec).Version)

	rec = s.do(t, nil, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	h := decodeBody[tuentisdk.HealthResponse](t, rec)
	require.NotNil(t, h.Checks)
	assert.Equal(t, "ok", h.Checks.Database)
	assert.Equal(t, "ok", h.Checks.ObjectStore)
	assert.Equal(t, "ok", h.Checks.Signer)

	rec = s.do(t, nil, http.MethodGet, "/.well-known/jwks.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	jwks := decodeBody[tuentisdk.JWKSResponse](t, rec)
	require.Len(t, jwks.Keys, 1)
	assert.Equal(t, "OKP", jwks.Keys[0].Kty)
}

func TestRegistrationFlow(t *testing.T) {
	s := newTestServer(t)
	anon := &user{ip: "203.0.113.1"}
	code := s.mintCode(t)

	rec := s.do(t, anon, http.MethodGet, "/v1/invitations/"+code, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeBody[tuentisdk.InvitationValidation](t, rec).Valid)

	rec = s.do(t, anon, http.MethodPost, "/v1/register", registration(code, "ana"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decodeBody[tuentisdk.RegisterResponse](t, rec)
	assert.Equal(t, "ana Test", res.Profile.DisplayName)
	assert.Equal(t, "Bearer", res.Tokens.TokenType)

	// The code is spent.
	rec = s.do(t, anon, http.MethodPost, "/v1/register", registration(code, "bea"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = s.do(t, anon, http.MethodGet, "/v1/invitations/"+code, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, anon, http.MethodGet, "/v1/invitations/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ana := &user{ip: anon.ip, token: res.Tokens.AccessToken}
	rec = s.do(t, ana, http.MethodGet, "/v1/auth/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sess := decodeBody[tuentisdk.SessionResponse](t, rec)
	assert.Equal(t, res.AccountID, sess.AccountID)
	assert.Equal(t, "ana@example.com", sess.Email)
	assert.False(t, sess.EmailVerified)
}

func TestRegistrationValidationFields(t *testing.T) {
	s := newTestServer(t)

	req := registration(s.mintCode(t), "ana")
	req.PasswordConfirmation = "something else"
	req.AcceptedDisclaimer = false

	rec := s.do(t, &user{ip: "203.0.113.2"}, http.MethodPost, "/v1/register", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeBody[tuentisdk.ErrorResponse](t, rec)
	assert.Equal(t, "invalid_request", e.Error)
	assert.Contains(t, e.Fields, "password_confirmation")
	assert.Contains(t, e.Fields, "accepted_disclaimer")
	assert.NotContains(t, e.Fields, "email")
}

func TestSignInRefreshSignOut(t *testing.T) {
	s := newTestServer(t)
	ana := s.register(t, "ana")

	rec := s.do(t, ana, http.MethodPost, "/v1/auth/signin",
		tuentisdk.SignInRequest{Email: "ana@example.com", Password: "wrong password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, ana, http.MethodPost, "/v1/auth/signin",
		tuentisdk.SignInRequest{Email: "ANA@example.com", Password: "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pair := decodeBody[tuentisdk.TokenResponse](t, rec)
	assert.Positive(t, pair.ExpiresIn)

	rec = s.do(t, ana, http.MethodPost, "/v1/auth/refresh", tuentisdk.RefreshRequest{RefreshToken: pair.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rotated := decodeBody[tuentisdk.TokenResponse](t, rec)

	// The old refresh token was rotated away.
	rec = s.do(t, ana, http.MethodPost, "/v1/auth/refresh", tuentisdk.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	signedIn := &user{ip: ana.ip, token: rotated.AccessToken}
	rec = s.do(t, signedIn, http.MethodPost, "/v1/auth/signout", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, ana, http.MethodPost, "/v1/auth/refresh", tuentisdk.RefreshRequest{RefreshToken: rotated.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	anon := &user{ip: "203.0.113.3"}

	for _, path := range []string{"/v1/feed", "/v1/friends", "/v1/notifications", "/v1/profiles/me", "/v1/invitations"} {
		rec := s.do(t, anon, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"), path)
	}

	rec := s.do(t, &user{ip: anon.ip, token: "not-a-jwt"}, http.MethodGet, "/v1/feed", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMintAndListInvitations(t *testing.T) {
	s := newTestServer(t)
	ana := s.register(t, "ana")

	rec := s.do(t, ana, http.MethodPost, "/v1/invitations", tuentisdk.MintInvitationRequest{TTLSeconds: 3600})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	minted := decodeBody[tuentisdk.MintInvitationResponse](t, rec)
	assert.NotEmpty(t, minted.Code)

	rec = s.do(t, ana, http.MethodPost, "/v1/invitations", tuentisdk.MintInvitationRequest{TTLSeconds: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, ana, http.MethodGet, "/v1/invitations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[tuentisdk.InvitationsResponse](t, rec)
	require.Len(t, list.Invitations, 1)
	assert.Equal(t, minted.Invitation.ID, list.Invitations[0].ID)
	assert.False(t, list.Invitations[0].Used)

	rec = s.do(t, &user{ip: "203.0.113.4"}, http.MethodGet, "/v1/invitations/"+minted.Code, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeBody[tuentisdk.InvitationValidation](t, rec)
	require.NotNil(t, v.Inviter)
	assert.Equal(t, ana.id, v.Inviter.ID)
}

func TestFeedAndPosts(t *testing.T) {
	s := newTestServer(t)
	ana := s.register(t, "ana")
	bea := s.register(t, "bea")
	cai := s.register(t, "cai")
	s.befriend(t, ana, bea)

	for _, u := range []*user{ana, bea, cai} {
		rec := s.do(t, u, http.MethodPost, "/v1/posts", tuentisdk.CreatePostRequest{Content: "hola from " + u.ip})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := s.do(t, ana, http.MethodPost, "/v1/posts", tuentisdk.CreatePostRequest{Content: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, ana, http.MethodGet, "/v1/feed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decodeBody[tuentisdk.FeedResponse](t, rec)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, bea.id, feed.Items[0].Author.ID)
	assert.Equal(t, ana.id, feed.Items[1].Author.ID)
	assert.Empty(t, feed.NextBefore)

	rec = s.do(t, ana, http.MethodGet, "/v1/feed?filter=friends", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed = decodeBody[tuentisdk.FeedResponse](t, rec)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, bea.id, feed.Items[0].Author.ID)

	rec = s.do(t, ana, http.MethodGet, "/v1/feed?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed = decodeBody[tuentisdk.FeedResponse](t, rec)
	require.Len(t, feed.Items, 1)
	require.NotEmpty(t, feed.NextBefore)

	rec = s.do(t, ana, http.MethodGet, "/v1/feed?limit=1&before="+feed.NextBefore, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ana.id, decodeBody[tuentisdk.FeedResponse](t, rec).Items[0].Author.ID)

	rec = s.do(t, ana, http.MethodGet, "/v1/feed?filter=everyone", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = s.do(t, ana, http.MethodGet, "/v1/feed?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, ana, http.MethodGet, "/v1/profiles/"+cai.id+"/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[tuentisdk.FeedResponse](t, rec).Items, 1)
}

func TestProfiles(t *testing.T) {
	s := newTestServer(t)
	ana := s.register(t, "ana")
	bea := s.register(t, "bea")
	s.befriend(t, ana, bea)

	rec := s.do(t, ana, http.MethodGet, "/v1/profiles/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[tuentisdk.ProfilePage](t, rec)
	assert.Equal(t, "self", page.Relation)
	assert.Equal(t, 1, page.FriendCount)

	rec = s.do(t, ana, http.MethodGet, "/v1/profiles/"+bea.id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decodeBody[tuentisdk.ProfilePage](t, rec)
	assert.Equal(t, "friends", page.Relation)
	assert.NotEmpty(t, page.FriendshipID)

	city := "Madrid"
	rec = s.do(t, ana, http.MethodPatch, "/v1/profiles/me", tuentisdk.UpdateProfileRequest{City: &city})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Madrid", decodeBody[tuentisdk.Profile](t, rec).City)

	empty := ""
	rec = s.do(t, ana, http.MethodPatch, "/v1/profiles/me", tuentisdk.UpdateProfileRequest{FirstName: &empty})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[tuentisdk.ErrorResponse](t, rec).Fields, "first_name")

	rec = s.do(t, ana, http.MethodGet, "/v1/profiles/01J00000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFriendRequestAnsweredFromNotification(t *testing.T) {
	s := newTestServer(t)
	ana := s.register(t, "ana")
	bea := s.register(t, "bea")

	rec := s.do(t, ana, http.MethodPost, "/v1/friends/requests", tuentisdk.FriendRequestCreate{UserID: ana.id})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, ana, http.MethodPost, "/v1/friends/requests", tuentisdk.FriendRequestCreate{UserID: bea.id})
	require.Equal(t, http.StatusCreated, rec.Code)
	f := decodeBody[tuentisdk.Friendship](t, rec)
	assert.Equal(t, "pending", f.Status)

	rec = s.do(t, bea, http.MethodPost, "/v1/friends/requests", tuentisdk.FriendRequestCreate{UserID: ana.id})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, bea, http.MethodGet, "/v1/friends/requests", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeBody[tuentisdk.PendingRequestsResponse](t, rec)
	require.Len(t, pending.Requests, 1)
	assert.Equal(t, ana.id, pending.Requests[0].Requester.ID)

	rec = s.do(t, bea, http.MethodGet, "/v1/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[tuentisdk.UnreadCountResponse](t, rec).Unread)

	rec = s.do(t, bea, http.MethodGet, "/v1/notifications?unread_only=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[tuentisdk.NotificationsResponse](t, rec)
	require.Len(t, list.Notifications, 1)
	n := list.Notifications[0]
	assert.Equal(t, "friend_request", n.Type)
	assert.Equal(t, f.ID, n.ReferenceID)
	assert.Equal(t, ana.id, n.Actor.ID)
	assert.ElementsMatch(t, []string{"accept", "reject"}, n.Actions)

	// Only the addressee may answer.
	rec = s.do(t, ana, http.MethodPost, "/v1/friends/requests/"+f.ID+"/accept", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(t, ana, http.MethodPost, "/v1/notifications/"+n.ID+"/accept", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, bea, http.MethodPost, "/v1/notifications/"+n.ID+"/accept", nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(t, bea, http.MethodPost, "/v1/notifications/"+n.ID+"/reject", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, bea, http.MethodGet, "/v1/notifications/unread-count", nil)
	assert.Equal(t, 0, decodeBody[tuentisdk.UnreadCountResponse](t, rec).Unread)

	rec = s.do(t, ana, http.MethodGet, "/v1/friends", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	friends := decodeBody[tuentisdk.FriendsResponse](t, rec)
	require.Len(t, friends.Friends, 1)
	assert.Equal(t, bea.id, friends.Friends[0].ID)

	rec = s.do(t, bea, http.MethodPost, "/v1/notifications/read-all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeBody[tuentisdk.MarkAllReadResponse](t, rec).Updated)

	rec = s.do(t, bea, http.MethodGet, "/v1/notifications?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func uploadRequest(t *testing.T, u *user, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+u.token)
	req.Header.Set("X-Forwarded-For", u.ip)
	return req
}

func TestMediaUploadAndServe(t *testing.T) {
	s := newTestServer(t)
	ana := s.register(t, "ana")

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 5, 2))))

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, uploadRequest(t, ana, "holiday.jpg", img.Bytes(),
		map[string]string{"share": "true", "caption": "Playa"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	up := decodeBody[tuentisdk.UploadResponse](t, rec)
	assert.Equal(t, "image/png", up.Media.ContentType)
	assert.Equal(t, 5, up.Media.Width)
	assert.Equal(t, 2, up.Media.Height)
	require.NotNil(t, up.Post)
	assert.Equal(t, "Playa", up.Post.Content)

	// Public: no token needed.
	rec = s.do(t, &user{ip: "203.0.113.5"}, http.MethodGet, up.Media.URL, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, img.Bytes(), rec.Body.Bytes())

	rec = s.do(t, ana, http.MethodGet, "/v1/feed?filter=photos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decodeBody[tuentisdk.FeedResponse](t, rec)
	require.Len(t, feed.Items, 1)
	require.NotNil(t, feed.Items[0].Media)
	assert.Equal(t, up.Media.ID, feed.Items[0].Media.ID)

	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, uploadRequest(t, ana, "notes.png", []byte("just some text"), nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = s.do(t, ana, http.MethodGet, "/v1/media/01J00000000000000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadTooLarge(t *testing.T) {
	s := newTestServer(t)
	// Smaller than any PNG header.
	s.router.MediaService.MaxBytes = 16
	ana := s.register(t, "ana")

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, uploadRequest(t, ana, "big.png", img.Bytes(), nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
