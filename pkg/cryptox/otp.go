package cryptox

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// CodePeriod is how long a mailed verification code stays valid.
const CodePeriod = 10 * time.Minute

var codeOpts = totp.ValidateOpts{
	Period:    uint(CodePeriod / time.Second),
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// NewCodeSecret returns a fresh base32 TOTP secret. Each verification
// request gets its own secret, so a code can never be replayed against a
// later request.
func NewCodeSecret(issuer, account string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      codeOpts.Period,
		Digits:      codeOpts.Digits,
		Algorithm:   codeOpts.Algorithm,
	})
	if err != nil {
		return "", fmt.Errorf("cryptox: generate code secret: %w", err)
	}
	return key.Secret(), nil
}

// GenerateCode returns the six digit code for secret at t.
func GenerateCode(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCodeCustom(secret, t, codeOpts)
	if err != nil {
		return "", fmt.Errorf("cryptox: generate code: %w", err)
	}
	return code, nil
}

// ValidateCode reports whether code is valid for secret at t, tolerating one
// period of drift. Expiry of the request itself is enforced by the caller.
func ValidateCode(code, secret string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, t, codeOpts)
	return err == nil && ok
}
