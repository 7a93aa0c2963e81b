package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/service"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/httpx"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
	"github.com/aussiebroadwan/tuenti/pkg/otelx"
	"github.com/aussiebroadwan/tuenti/pkg/slogx"

	_ "github.com/aussiebroadwan/tuenti/api/tuenti" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	objects objectstore.Store

	InvitationService   *service.InvitationService
	RegistrationService *service.RegistrationService
	AuthService         *service.AuthService
	ProfileService      *service.ProfileService
	FeedService         *service.FeedService
	MediaService        *service.MediaService
	FriendshipService   *service.FriendshipService
	NotificationService *service.NotificationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	objects objectstore.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		objects:      objects,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		otelx.HTTPMiddleware,
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerRegistration()
	r.registerInvitations()
	r.registerAuth()
	r.registerProfiles()
	r.registerFeed()
	r.registerMedia()
	r.registerFriends()
	r.registerNotifications()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tuenti API
//	@version		0.1.0
//	@description	Invitation-only social network: registration, profiles, feed, friends, notifications and photo uploads.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tuenti
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				EdDSA signed JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured requires an access token and limits per account.
func (r *Router) secured(h http.Handler, l httpx.Limit) http.Handler {
	return httpx.Chain(h,
		httpx.Authn(r.verifier),
		httpx.RateLimitByAccount(l),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.objects, r.keys))
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}

func (r *Router) registerRegistration() {
	h := &RegisterHandler{RegistrationService: r.RegistrationService}

	// Signup creates accounts: strict limit by IP.
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(h, httpx.RateLimitByIP(httpx.StrictLimit)),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	// Validation is public and probes codes: strict limit by IP.
	r.Mux.Handle("GET /v1/invitations/{code}",
		httpx.Chain(http.HandlerFunc(h.HandleValidate), httpx.RateLimitByIP(httpx.StrictLimit)),
	)
	r.Mux.Handle("POST /v1/invitations", r.secured(http.HandlerFunc(h.HandleMint), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/invitations", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	strictIP := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.StrictLimit))
	}

	r.Mux.Handle("POST /v1/auth/signin", strictIP(h.HandleSignIn))
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh), httpx.RateLimitByIP(httpx.ModerateLimit)),
	)
	r.Mux.Handle("POST /v1/auth/signout", r.secured(http.HandlerFunc(h.HandleSignOut), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/auth/session", r.secured(http.HandlerFunc(h.HandleSession), httpx.LenientLimit))

	r.Mux.Handle("POST /v1/auth/password/forgot", strictIP(h.HandlePasswordForgot))
	r.Mux.Handle("POST /v1/auth/password/reset", strictIP(h.HandlePasswordReset))

	// Code guessing is limited per account.
	r.Mux.Handle("POST /v1/auth/email/send-verification",
		r.secured(http.HandlerFunc(h.HandleSendVerification), httpx.StrictLimit))
	r.Mux.Handle("POST /v1/auth/email/verify",
		r.secured(http.HandlerFunc(h.HandleVerifyEmail), httpx.StrictLimit))
}

func (r *Router) registerProfiles() {
	h := &ProfilesHandler{ProfileService: r.ProfileService, FeedService: r.FeedService}

	r.Mux.Handle("GET /v1/profiles/{id}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/profiles/me", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/profiles/{id}/posts", r.secured(http.HandlerFunc(h.HandlePosts), httpx.LenientLimit))
}

func (r *Router) registerFeed() {
	h := &FeedHandler{FeedService: r.FeedService}

	r.Mux.Handle("GET /v1/feed", r.secured(http.HandlerFunc(h.HandleFeed), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/posts", r.secured(http.HandlerFunc(h.HandleCreatePost), httpx.ModerateLimit))
}

func (r *Router) registerMedia() {
	h := &MediaHandler{MediaService: r.MediaService}

	r.Mux.Handle("POST /v1/media", r.secured(http.HandlerFunc(h.HandleUpload), httpx.ModerateLimit))

	// Served to <img> tags, which cannot send a bearer token.
	r.Mux.Handle("GET /v1/media/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByIP(httpx.PublicLimit)),
	)
}

func (r *Router) registerFriends() {
	h := &FriendsHandler{FriendshipService: r.FriendshipService}

	r.Mux.Handle("POST /v1/friends/requests", r.secured(http.HandlerFunc(h.HandleSendRequest), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/friends/requests", r.secured(http.HandlerFunc(h.HandleListRequests), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/friends", r.secured(http.HandlerFunc(h.HandleListFriends), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/friends/requests/{id}/accept", r.secured(http.HandlerFunc(h.HandleAccept), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/friends/requests/{id}/reject", r.secured(http.HandlerFunc(h.HandleReject), httpx.ModerateLimit))
}

func (r *Router) registerNotifications() {
	h := &NotificationsHandler{NotificationService: r.NotificationService}

	r.Mux.Handle("GET /v1/notifications", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/notifications/unread-count", r.secured(http.HandlerFunc(h.HandleUnreadCount), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/notifications/read-all", r.secured(http.HandlerFunc(h.HandleMarkAllRead), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/notifications/{id}/read", r.secured(http.HandlerFunc(h.HandleMarkRead), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/notifications/{id}/accept", r.secured(http.HandlerFunc(h.HandleAccept), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/notifications/{id}/reject", r.secured(http.HandlerFunc(h.HandleReject), httpx.ModerateLimit))
}
