package tuentisdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/tuenti/pkg/formx"
)

// refreshBuffer refreshes access tokens this long before they expire.
const refreshBuffer = 30 * time.Second

// Client talks to a tuenti service. It covers the anonymous endpoints and
// opens Sessions for the rest.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Tokens receives the tokens of every session this client opens.
	// Defaults to a MemoryTokenStore.
	Tokens TokenStore

	// Now defaults to time.Now.
	Now func() time.Time
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Tokens: &MemoryTokenStore{},
	}
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Client) tokenStore() TokenStore {
	if c.Tokens == nil {
		c.Tokens = &MemoryTokenStore{}
	}
	return c.Tokens
}

// GetLiveness checks that the service is up.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks the service's dependencies.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetJWKS fetches the public keys other services use to verify access
// tokens.
func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	var jwks JWKSResponse
	if err := c.doJSON(ctx, http.MethodGet, "/.well-known/jwks.json", nil, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}

// ValidateInvitation checks a code without consuming it.
func (c *Client) ValidateInvitation(ctx context.Context, code string) (*InvitationValidation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &ValidationError{Fields: map[string]string{"invitation_code": "required"}}
	}

	var v InvitationValidation
	path := "/v1/invitations/" + url.PathEscape(code)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &v, http.StatusOK); err != nil {
		return nil, err
	}
	return &v, nil
}

// Register submits a registration and opens a session for the new account.
// The form is validated locally first: an invalid form returns a
// *ValidationError without any request.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, *RegisterResponse, error) {
	if fields := req.Validate(); fields != nil {
		return nil, nil, &ValidationError{Fields: fields}
	}

	var resp RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/register", req.Normalize(), &resp, http.StatusCreated); err != nil {
		return nil, nil, err
	}

	s, err := c.openSession(ctx, resp.Tokens)
	if err != nil {
		return nil, nil, err
	}
	return s, &resp, nil
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	fields := map[string]string{}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "required"
	}
	if password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var tok TokenResponse
	req := SignInRequest{Email: formx.NormalizeEmail(email), Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/signin", req, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return c.openSession(ctx, tok)
}

// Resume opens a session from the tokens in the client's TokenStore.
func (c *Client) Resume(ctx context.Context) (*Session, error) {
	t, err := c.tokenStore().Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, tokens: t}, nil
}

// Refresh rotates a refresh token. Sessions call it on their own.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tok TokenResponse
	req := RefreshRequest{RefreshToken: refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/refresh", req, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// RequestPasswordReset asks for a reset code by mail. It succeeds whether or
// not the email is registered.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body, headers, err := jsonBody(PasswordForgotRequest{Email: formx.NormalizeEmail(email)})
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password/forgot", body, headers)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusAccepted)
}

// ResetPassword sets a new password with a mailed code. Every session of
// the account is signed out.
func (c *Client) ResetPassword(ctx context.Context, email, code, password string) error {
	if reason, ok := formx.ValidatePassword(password); !ok {
		return &ValidationError{Fields: map[string]string{"password": reason}}
	}

	body, headers, err := jsonBody(PasswordResetRequest{
		Email:    formx.NormalizeEmail(email),
		Code:     strings.TrimSpace(code),
		Password: password,
	})
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/password/reset", body, headers)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusNoContent)
}

// openSession saves freshly issued tokens and wraps them in a Session.
func (c *Client) openSession(ctx context.Context, tok TokenResponse) (*Session, error) {
	t := c.tokensFrom(tok)
	if err := c.tokenStore().Save(ctx, t); err != nil {
		return nil, err
	}
	return &Session{client: c, tokens: t}, nil
}

func (c *Client) tokensFrom(tok TokenResponse) Tokens {
	return Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - refreshBuffer),
	}
}
