package formx_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/tuenti/pkg/formx"
	"github.com/stretchr/testify/require"
)

func validRegistration() formx.Registration {
	return formx.Registration{
		InvitationCode:       "abc",
		Email:                " Ana@Example.com ",
		Password:             "correct horse",
		PasswordConfirmation: "correct horse",
		FirstName:            "Ana",
		LastName:             "García",
		AcceptedDisclaimer:   true,
	}
}

func TestRegistrationValidate(t *testing.T) {
	require.Nil(t, validRegistration().Validate())

	tests := []struct {
		name   string
		mutate func(*formx.Registration)
		field  string
	}{
		{"missing code", func(r *formx.Registration) { r.InvitationCode = " " }, "invitation_code"},
		{"missing email", func(r *formx.Registration) { r.Email = "" }, "email"},
		{"bad email", func(r *formx.Registration) { r.Email = "ana" }, "email"},
		{"missing password", func(r *formx.Registration) { r.Password = ""; r.PasswordConfirmation = "" }, "password"},
		{"short password", func(r *formx.Registration) { r.Password = "short"; r.PasswordConfirmation = "short" }, "password"},
		{"mismatch", func(r *formx.Registration) { r.PasswordConfirmation = "correct horsf" }, "password_confirmation"},
		{"missing first name", func(r *formx.Registration) { r.FirstName = "  " }, "first_name"},
		{"long last name", func(r *formx.Registration) { r.LastName = strings.Repeat("x", 65) }, "last_name"},
		{"disclaimer", func(r *formx.Registration) { r.AcceptedDisclaimer = false }, "accepted_disclaimer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistration()
			tt.mutate(&r)
			errs := r.Validate()
			require.Contains(t, errs, tt.field)
		})
	}
}

func TestRegistrationNormalize(t *testing.T) {
	r := validRegistration().Normalize()
	require.Equal(t, "ana@example.com", r.Email)
}

func TestProfileUpdate(t *testing.T) {
	bio := strings.Repeat("b", 501)
	require.Contains(t, formx.ProfileUpdate{Bio: &bio}.Validate(), "bio")

	empty := ""
	require.Contains(t, formx.ProfileUpdate{FirstName: &empty}.Validate(), "first_name")
}

func TestValidatePassword(t *testing.T) {
	_, ok := formx.ValidatePassword("correct horse")
	require.True(t, ok)

	reason, ok := formx.ValidatePassword("short")
	require.False(t, ok)
	require.Equal(t, "too short (min 8)", reason)

	_, ok = formx.ValidatePassword(strings.Repeat("x", formx.MaxPasswordLength+1))
	require.False(t, ok)
}

func TestValidEmail(t *testing.T) {
	require.True(t, formx.ValidEmail("ana@example.com"))
	require.False(t, formx.ValidEmail("Ana <ana@example.com>"))
	require.False(t, formx.ValidEmail("ana@localhost"))
}
