package jwtx

import (
	"crypto/ed25519"
	"encoding/base64"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// JWK is an Ed25519 public key in JSON Web Key format (RFC 8037).
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
}

// JWKS is a JSON Web Key Set (RFC 7517).
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// NewEd25519JWK builds a signing JWK for pub. Ed25519 keys use the "OKP"
// (Octet Key Pair) key type.
func NewEd25519JWK(kid string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: "OKP",
		Use: "sig",
		Alg: jwt.SigningMethodEdDSA.Alg(),
		Kid: kid,
		Crv: "Ed25519",
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

// PublicJWKS returns the trusted keys ordered by kid, for serving at
// /.well-known/jwks.json.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()

	jwks := JWKS{Keys: make([]JWK, 0, len(k.keys))}
	for kid, pub := range k.keys {
		jwks.Keys = append(jwks.Keys, NewEd25519JWK(kid, pub))
	}
	slices.SortFunc(jwks.Keys, func(a, b JWK) int { return strings.Compare(a.Kid, b.Kid) })
	return jwks
}
