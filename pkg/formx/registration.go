// Package formx holds the forms shared by the tuenti service and its client
// SDK: registration, profile edits and the signup wizard leading to them.
// Both sides validate with the same rules.
package formx

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	MaxNameLength     = 64

	reasonRequired = "required"
)

// Registration is the register step of the signup wizard.
type Registration struct {
	InvitationCode       string `json:"invitation_code"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	AcceptedDisclaimer   bool   `json:"accepted_disclaimer"`
}

// Normalize trims names and lower-cases the email.
func (r Registration) Normalize() Registration {
	r.InvitationCode = strings.TrimSpace(r.InvitationCode)
	r.Email = NormalizeEmail(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return r
}

// Validate returns field name -> reason, or nil when the registration can
// be submitted. It runs on both sides of the wire.
func (r Registration) Validate() map[string]string {
	r = r.Normalize()
	errs := make(map[string]string)

	if r.InvitationCode == "" {
		errs["invitation_code"] = reasonRequired
	}

	switch {
	case r.Email == "":
		errs["email"] = reasonRequired
	case !ValidEmail(r.Email):
		errs["email"] = "not a valid email address"
	}

	switch n := utf8.RuneCountInString(r.Password); {
	case r.Password == "":
		errs["password"] = reasonRequired
	case n < MinPasswordLength:
		errs["password"] = "too short (min 8)"
	case n > MaxPasswordLength:
		errs["password"] = "too long (max 128)"
	}

	switch {
	case r.PasswordConfirmation == "":
		errs["password_confirmation"] = reasonRequired
	case r.PasswordConfirmation != r.Password:
		errs["password_confirmation"] = "passwords do not match"
	}

	validateName(errs, "first_name", r.FirstName)
	validateName(errs, "last_name", r.LastName)

	if !r.AcceptedDisclaimer {
		errs["accepted_disclaimer"] = "the disclaimer must be accepted"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateName(errs map[string]string, field, v string) {
	switch {
	case v == "":
		errs[field] = reasonRequired
	case utf8.RuneCountInString(v) > MaxNameLength:
		errs[field] = "too long (max 64)"
	}
}

// ValidatePassword applies the registration password rules on their own,
// for password resets.
func ValidatePassword(pw string) (string, bool) {
	switch n := utf8.RuneCountInString(pw); {
	case pw == "":
		return reasonRequired, false
	case n < MinPasswordLength:
		return "too short (min 8)", false
	case n > MaxPasswordLength:
		return "too long (max 128)", false
	}
	return "", true
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail accepts a bare address (no display name).
func ValidEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s && strings.Contains(s, ".")
}

// ProfileUpdate carries the editable profile fields; nil leaves a field
// unchanged.
type ProfileUpdate struct {
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	City          *string `json:"city,omitempty"`
	AvatarMediaID *string `json:"avatar_media_id,omitempty"`
}

const (
	MaxBioRunes  = 500
	MaxCityRunes = 64
)

func (u ProfileUpdate) Validate() map[string]string {
	errs := make(map[string]string)
	if u.FirstName != nil {
		validateName(errs, "first_name", strings.TrimSpace(*u.FirstName))
	}
	if u.LastName != nil {
		validateName(errs, "last_name", strings.TrimSpace(*u.LastName))
	}
	if u.Bio != nil && utf8.RuneCountInString(*u.Bio) > MaxBioRunes {
		errs["bio"] = "too long (max 500)"
	}
	if u.City != nil && utf8.RuneCountInString(*u.City) > MaxCityRunes {
		errs["city"] = "too long (max 64)"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

