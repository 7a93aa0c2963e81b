package domain

import "time"

// Account is the authentication identity. Its id is shared by the profile.
type Account struct {
	ID              string
	Email           string // lower-cased, unique
	PasswordHash    string // argon2id PHC string
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Account) EmailVerified() bool { return a.EmailVerifiedAt != nil }

// Profile is the public face of an account.
type Profile struct {
	ID            string // equals Account.ID
	FirstName     string
	LastName      string
	Bio           string
	City          string
	AvatarMediaID string // empty when unset
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Profile) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Session backs a refresh token. Access tokens carry its id as "sid".
type Session struct {
	ID        string
	AccountID string
	TokenHash string // fingerprint of the current refresh token
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPair is what sign in, registration and refresh hand back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration
}

// CodePurpose scopes a verification code to one flow.
type CodePurpose string

const (
	PurposeEmailVerification CodePurpose = "email_verification"
	PurposePasswordReset     CodePurpose = "password_reset"
)

// VerificationCode is an outstanding mailed code. Only the TOTP secret is
// stored; the code itself is derived when mailing and checked on use.
type VerificationCode struct {
	ID        string
	AccountID string
	Purpose   CodePurpose
	Secret    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
