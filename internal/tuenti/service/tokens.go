package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/store"
	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/idx"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
)

const TokenTypeBearer = "Bearer"

// TokenIssuer mints access tokens and opaque refresh tokens backed by a
// session row.
type TokenIssuer struct {
	Signer     jwtx.Signer
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (t *TokenIssuer) accessTTL() time.Duration {
	if t.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return t.AccessTTL
}

func (t *TokenIssuer) refreshTTL() time.Duration {
	if t.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return t.RefreshTTL
}

// signAccess signs an access token for the account and session.
func (t *TokenIssuer) signAccess(acc domain.Account, sessionID string, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(acc.ID, sessionID, acc.EmailVerified(), t.Issuer, t.Audience, t.accessTTL(), now)
	token, err := t.Signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// StartSession creates a session for acc using st, which may be a Tx.
func (t *TokenIssuer) StartSession(ctx context.Context, st store.Store, acc domain.Account, now time.Time) (domain.TokenPair, error) {
	refresh, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenPair{}, err
	}

	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		AccountID: acc.ID,
		TokenHash: cryptox.FingerprintToken(refresh),
		ExpiresAt: now.Add(t.refreshTTL()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Sessions().CreateSession(ctx, sess); err != nil {
		return domain.TokenPair{}, fmt.Errorf("create session: %w", err)
	}

	access, err := t.signAccess(acc, sess.ID, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    t.accessTTL(),
	}, nil
}
