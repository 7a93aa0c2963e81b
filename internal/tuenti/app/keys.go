package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/tuenti/pkg/cryptox"
	"github.com/aussiebroadwan/tuenti/pkg/jwtx"
)

// kidLength is how much of the public key fingerprint names the key.
const kidLength = 16

// InitKeys loads the EdDSA signing key, generating it on first start, and
// builds the key set and verifier around it. Tokens survive restarts as
// long as the key file does.
func InitKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, jwtx.Verifier, error) {
	pem, err := cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load signing key: %w", err)
	}

	probe, err := jwtx.NewSignerEdDSA("pending", pem)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse signing key: %w", err)
	}
	kid := cryptox.FingerprintToken(string(probe.PublicKey()))[:kidLength]

	signer, err := jwtx.NewSignerEdDSA(kid, pem)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse signing key: %w", err)
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	verifier := jwtx.NewVerifierEdDSA(keys, jwtx.VerifyOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
	})

	logger.Info("signing key loaded", "kid", kid, "path", cfg.SigningKeyFile)
	return signer, keys, verifier, nil
}
