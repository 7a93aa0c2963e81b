package jwtx_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://tuenti.test"

func newSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	signer := newSigner(t, "k1")
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	require.True(t, keys.IsReady())

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims("acct-1", "sess-1", true, testIssuer, []string{"tuenti"}, 5*time.Minute, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	v := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Issuer: testIssuer, Audience: []string{"tuenti"}})
	got, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", got.Subject)
	require.Equal(t, "sess-1", got.SID)
	require.True(t, got.EmailVerified)
	require.Equal(t, claims.ID, got.ID)
}

func TestVerifyRejections(t *testing.T) {
	signer := newSigner(t, "k1")
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sign := func(c jwtx.Claims) string {
		tok, err := signer.Sign(c)
		require.NoError(t, err)
		return tok
	}
	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	t.Run("expired", func(t *testing.T) {
		tok := sign(jwtx.NewAccessClaims("a", "s", false, testIssuer, nil, time.Minute, now))
		v := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Now: at(now.Add(2 * time.Minute))})
		_, err := v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("leeway covers skew", func(t *testing.T) {
		tok := sign(jwtx.NewAccessClaims("a", "s", false, testIssuer, nil, time.Minute, now))
		v := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Leeway: 2 * time.Minute, Now: at(now.Add(2 * time.Minute))})
		_, err := v.Verify(tok)
		require.NoError(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok := sign(jwtx.NewAccessClaims("a", "s", false, "https://evil", nil, time.Minute, now))
		v := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Issuer: testIssuer, Now: at(now)})
		_, err := v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		tok := sign(jwtx.NewAccessClaims("a", "s", false, testIssuer, []string{"other"}, time.Minute, now))
		v := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Audience: []string{"tuenti"}, Now: at(now)})
		_, err := v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("unknown signer", func(t *testing.T) {
		stranger := newSigner(t, "k2")
		tok, err := stranger.Sign(jwtx.NewAccessClaims("a", "s", false, testIssuer, nil, time.Minute, now))
		require.NoError(t, err)
		v := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Now: at(now)})
		_, err = v.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("tampered payload", func(t *testing.T) {
		tok := sign(jwtx.NewAccessClaims("a", "s", false, testIssuer, nil, time.Minute, now))
		parts := strings.Split(tok, ".")
		parts[1] = parts[1][:len(parts[1])-2] + "AA"
		v := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{Now: at(now)})
		_, err := v.Verify(strings.Join(parts, "."))
		require.Error(t, err)
	})
}

func TestNewSignerRejectsBadPEM(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("k", []byte("not pem"))
	require.Error(t, err)

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	_, err = jwtx.NewSignerEdDSA("", pemKey)
	require.Error(t, err)
}

func TestPublicJWKS(t *testing.T) {
	keys := jwtx.NewKeySet()
	require.Empty(t, keys.PublicJWKS().Keys)

	b := newSigner(t, "b")
	a := newSigner(t, "a")
	keys.AddSigner(b)
	keys.AddSigner(a)

	jwks := keys.PublicJWKS()
	require.Len(t, jwks.Keys, 2)
	require.Equal(t, "a", jwks.Keys[0].Kid)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.Equal(t, "EdDSA", jwks.Keys[0].Alg)
	require.Equal(t, "sig", jwks.Keys[0].Use)

	x, err := base64.RawURLEncoding.DecodeString(jwks.Keys[0].X)
	require.NoError(t, err)
	require.Equal(t, []byte(a.PublicKey()), x)
}
