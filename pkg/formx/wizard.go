package formx

import (
	"errors"
	"time"
)

// WizardStep is a step of the invitation signup wizard.
type WizardStep int

const (
	StepWelcome WizardStep = iota
	StepDisclaimer
	StepRegister
)

func (s WizardStep) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepDisclaimer:
		return "disclaimer"
	case StepRegister:
		return "register"
	default:
		return "unknown"
	}
}

var (
	ErrInvitationNotValidated = errors.New("invitation has not been validated")
	ErrDisclaimerNotAccepted  = errors.New("disclaimer must be accepted")
	ErrNoNextStep             = errors.New("already at the last step")
	ErrNoPreviousStep         = errors.New("already at the first step")
)

// Wizard is the welcome -> disclaimer -> register flow. It only moves past
// welcome once an invitation has been validated and only reaches register
// with the disclaimer accepted. Going back keeps both facts.
type Wizard struct {
	step      WizardStep
	code      string
	validated bool
	expiresAt time.Time
	accepted  bool
}

func NewWizard(code string) *Wizard {
	return &Wizard{step: StepWelcome, code: code}
}

func (w *Wizard) Step() WizardStep { return w.step }
func (w *Wizard) Code() string     { return w.code }
func (w *Wizard) Validated() bool  { return w.validated }
func (w *Wizard) DisclaimerAccepted() bool {
	return w.accepted
}

// ExpiresAt is the expiry the server reported for the validated code, zero
// before validation.
func (w *Wizard) ExpiresAt() time.Time { return w.expiresAt }

// SetValidated records a successful validation of the wizard's code.
func (w *Wizard) SetValidated(expiresAt time.Time) {
	w.validated = true
	w.expiresAt = expiresAt
}

// AcceptDisclaimer records the user's choice on the disclaimer step.
func (w *Wizard) AcceptDisclaimer(accepted bool) {
	w.accepted = accepted
}

func (w *Wizard) Next() error {
	switch w.step {
	case StepWelcome:
		if !w.validated {
			return ErrInvitationNotValidated
		}
		w.step = StepDisclaimer
	case StepDisclaimer:
		if !w.accepted {
			return ErrDisclaimerNotAccepted
		}
		w.step = StepRegister
	default:
		return ErrNoNextStep
	}
	return nil
}

func (w *Wizard) Back() error {
	if w.step == StepWelcome {
		return ErrNoPreviousStep
	}
	w.step--
	return nil
}

// CanSubmit reports whether the register form may be submitted.
func (w *Wizard) CanSubmit() bool {
	return w.step == StepRegister && w.validated && w.accepted
}
