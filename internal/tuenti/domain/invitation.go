package domain

import "time"

// Invitation gates registration. The raw code is shown once at mint time;
// only its fingerprint is stored.
type Invitation struct {
	ID        string
	CodeHash  string
	CreatedBy string // profile id, empty for invitations minted from the CLI
	Used      bool
	UsedBy    string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i Invitation) Expired(now time.Time) bool { return !now.Before(i.ExpiresAt) }

// Redeemable reports whether the invitation can still admit a new account.
func (i Invitation) Redeemable(now time.Time) bool { return !i.Used && !i.Expired(now) }
