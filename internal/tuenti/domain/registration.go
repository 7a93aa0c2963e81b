package domain

import (
	"strings"

	"github.com/aussiebroadwan/tuenti/pkg/formx"
)

// The forms are shared with the SDK so both sides validate alike.
type (
	Registration  = formx.Registration
	ProfileUpdate = formx.ProfileUpdate
)

// ApplyProfileUpdate writes the set fields of u onto p.
func ApplyProfileUpdate(p Profile, u ProfileUpdate) Profile {
	if u.FirstName != nil {
		p.FirstName = strings.TrimSpace(*u.FirstName)
	}
	if u.LastName != nil {
		p.LastName = strings.TrimSpace(*u.LastName)
	}
	if u.Bio != nil {
		p.Bio = strings.TrimSpace(*u.Bio)
	}
	if u.City != nil {
		p.City = strings.TrimSpace(*u.City)
	}
	if u.AvatarMediaID != nil {
		p.AvatarMediaID = strings.TrimSpace(*u.AvatarMediaID)
	}
	return p
}
