package tuentisdk

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tuenti/pkg/formx"
)

type WizardStep = formx.WizardStep

// Wizard steps.
const (
	StepWelcome    = formx.StepWelcome
	StepDisclaimer = formx.StepDisclaimer
	StepRegister   = formx.StepRegister
)

var (
	ErrInvitationNotValidated = formx.ErrInvitationNotValidated
	ErrDisclaimerNotAccepted  = formx.ErrDisclaimerNotAccepted
	ErrNoNextStep             = formx.ErrNoNextStep
	ErrNoPreviousStep         = formx.ErrNoPreviousStep

	ErrWizardIncomplete = errors.New("tuentisdk: wizard is not on a submittable register step")
)

// Wizard drives the invitation signup flow against a Client. Nothing is kept
// after Submit succeeds; a failed Submit leaves the wizard on the register
// step with Message set so the user can retry.
type Wizard struct {
	client  *Client
	state   *formx.Wizard
	inviter *Profile
	message string
}

func (c *Client) NewWizard(code string) *Wizard {
	return &Wizard{client: c, state: formx.NewWizard(code)}
}

func (w *Wizard) Step() WizardStep { return w.state.Step() }

// ExpiresAt is when the validated invitation lapses, zero before Validate.
func (w *Wizard) ExpiresAt() time.Time { return w.state.ExpiresAt() }

// Inviter is the profile that minted the invitation, when known.
func (w *Wizard) Inviter() *Profile { return w.inviter }

// Message is the user-facing text of the last failure, empty after a
// success.
func (w *Wizard) Message() string { return w.message }

// Validate checks the invitation code with the server. Next cannot leave
// the welcome step until this succeeds.
func (w *Wizard) Validate(ctx context.Context) error {
	v, err := w.client.ValidateInvitation(ctx, w.state.Code())
	if err != nil {
		w.message = invitationMessage(err)
		return err
	}

	w.state.SetValidated(v.ExpiresAt)
	w.inviter = v.Inviter
	w.message = ""
	return nil
}

func (w *Wizard) AcceptDisclaimer(accepted bool) { w.state.AcceptDisclaimer(accepted) }

func (w *Wizard) Next() error {
	err := w.state.Next()
	w.setMessage(err)
	return err
}

func (w *Wizard) Back() error {
	err := w.state.Back()
	w.setMessage(err)
	return err
}

// Submit registers with form. The invitation code and disclaimer choice
// come from the wizard, whatever form carries. Local validation failures
// return *ValidationError without contacting the server.
func (w *Wizard) Submit(ctx context.Context, form RegisterRequest) (*Session, error) {
	if !w.state.CanSubmit() {
		w.message = "Complete the previous steps first."
		return nil, ErrWizardIncomplete
	}

	form.InvitationCode = w.state.Code()
	form.AcceptedDisclaimer = w.state.DisclaimerAccepted()

	s, _, err := w.client.Register(ctx, form)
	if err != nil {
		w.message = submitMessage(err)
		return nil, err
	}
	w.message = ""
	return s, nil
}

func (w *Wizard) setMessage(err error) {
	switch {
	case err == nil:
		w.message = ""
	case errors.Is(err, ErrInvitationNotValidated):
		w.message = "Check your invitation code first."
	case errors.Is(err, ErrDisclaimerNotAccepted):
		w.message = "You must accept the terms to continue."
	default:
		w.message = err.Error()
	}
}

func invitationMessage(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return "Enter your invitation code."
	case IsStatus(err, http.StatusNotFound):
		return "This invitation does not exist or has expired."
	case IsStatus(err, http.StatusConflict):
		return "This invitation has already been used."
	case IsStatus(err, http.StatusTooManyRequests):
		return "Too many attempts. Try again in a minute."
	default:
		return "We could not check your invitation. Try again."
	}
}

func submitMessage(err error) string {
	var verr *ValidationError
	var apiErr *APIError
	switch {
	case errors.As(err, &verr):
		return "Some fields need fixing."
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest && len(apiErr.Fields) > 0:
		return "Some fields need fixing."
	case IsStatus(err, http.StatusConflict):
		if apiErr != nil && apiErr.Description != "" {
			return capitalize(apiErr.Description) + "."
		}
		return "This invitation or email is already in use."
	case IsStatus(err, http.StatusNotFound):
		return "This invitation does not exist or has expired."
	default:
		return "Registration failed. Try again."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
