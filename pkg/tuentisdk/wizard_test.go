package tuentisdk

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invitationServer(t *testing.T, registerStatus *int) *fakeServer {
	t.Helper()
	srv := newFakeServer(t)
	srv.mux.HandleFunc("GET /v1/invitations/{code}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("code") != "good" {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorCodeNotFound})
			return
		}
		writeJSON(w, http.StatusOK, InvitationValidation{
			Valid:     true,
			ExpiresAt: time.Now().Add(time.Hour),
			Inviter:   &Profile{ID: "inviter", DisplayName: "Bea"},
		})
	})
	srv.mux.HandleFunc("POST /v1/register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "good", req.InvitationCode)
		assert.True(t, req.AcceptedDisclaimer)

		if *registerStatus != http.StatusCreated {
			writeJSON(w, *registerStatus, ErrorResponse{Error: ErrorCodeConflict, ErrorDescription: "email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, RegisterResponse{AccountID: "acc", Tokens: tokenResponse("a1")})
	})
	return srv
}

func TestWizardHappyPath(t *testing.T) {
	status := http.StatusCreated
	srv := invitationServer(t, &status)
	w := NewClient(srv.URL).NewWizard("good")

	assert.Equal(t, StepWelcome, w.Step())
	require.ErrorIs(t, w.Next(), ErrInvitationNotValidated)
	assert.NotEmpty(t, w.Message())

	assert.True(t, w.ExpiresAt().IsZero())
	require.NoError(t, w.Validate(t.Context()))
	assert.False(t, w.ExpiresAt().IsZero())
	require.NotNil(t, w.Inviter())
	assert.Equal(t, "Bea", w.Inviter().DisplayName)
	require.NoError(t, w.Next())
	assert.Equal(t, StepDisclaimer, w.Step())

	require.ErrorIs(t, w.Next(), ErrDisclaimerNotAccepted)
	w.AcceptDisclaimer(true)
	require.NoError(t, w.Next())
	assert.Equal(t, StepRegister, w.Step())

	form := validForm()
	form.InvitationCode = "ignored"
	form.AcceptedDisclaimer = false

	s, err := w.Submit(t.Context(), form)
	require.NoError(t, err)
	assert.Equal(t, "a1", s.AccessToken())
	assert.Empty(t, w.Message())
}

func TestWizardBackKeepsProgress(t *testing.T) {
	status := http.StatusCreated
	srv := invitationServer(t, &status)
	w := NewClient(srv.URL).NewWizard("good")

	require.NoError(t, w.Validate(t.Context()))
	require.NoError(t, w.Next())
	w.AcceptDisclaimer(true)
	require.NoError(t, w.Next())

	require.NoError(t, w.Back())
	require.NoError(t, w.Back())
	require.ErrorIs(t, w.Back(), ErrNoPreviousStep)

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.Equal(t, StepRegister, w.Step())
}

func TestWizardRejectsUnknownInvitation(t *testing.T) {
	status := http.StatusCreated
	srv := invitationServer(t, &status)
	w := NewClient(srv.URL).NewWizard("bad")

	err := w.Validate(t.Context())
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "This invitation does not exist or has expired.", w.Message())
	assert.ErrorIs(t, w.Next(), ErrInvitationNotValidated)
}

func TestWizardSubmitFailureAllowsRetry(t *testing.T) {
	status := http.StatusConflict
	srv := invitationServer(t, &status)
	w := NewClient(srv.URL).NewWizard("good")

	require.NoError(t, w.Validate(t.Context()))
	require.NoError(t, w.Next())
	w.AcceptDisclaimer(true)
	require.NoError(t, w.Next())

	_, err := w.Submit(t.Context(), validForm())
	require.Error(t, err)
	assert.Equal(t, "Email already registered.", w.Message())
	assert.Equal(t, StepRegister, w.Step())

	// A bad form never reaches the server.
	before := srv.requests.Load()
	bad := validForm()
	bad.PasswordConfirmation = "nope"
	_, err = w.Submit(t.Context(), bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, srv.requests.Load())

	status = http.StatusCreated
	_, err = w.Submit(t.Context(), validForm())
	require.NoError(t, err)
}

func TestWizardSubmitBeforeRegisterStep(t *testing.T) {
	srv := newFakeServer(t)
	w := NewClient(srv.URL).NewWizard("good")

	_, err := w.Submit(t.Context(), validForm())
	require.ErrorIs(t, err, ErrWizardIncomplete)
	assert.Zero(t, srv.requests.Load())
}
