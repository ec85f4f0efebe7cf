package intake

import (
	"errors"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

// Step is the wizard position. Transitions:
//
//	StepIdentity → StepConditions → StepFamily → (StepAwaitingConfirm) → StepReady
//
// Back transitions are symmetric and never discard entered data.
type Step string

const (
	StepIdentity        Step = "identity"
	StepConditions      Step = "conditions"
	StepFamily          Step = "family"
	StepAwaitingConfirm Step = "awaiting_confirm"
	StepReady           Step = "ready"
)

// ConfirmLivingAlonePrompt is surfaced when step 3 is submitted with no
// family data: the operator must acknowledge the beneficiary lives alone.
const ConfirmLivingAlonePrompt = "No family members were entered. Record this beneficiary as living alone?"

// ErrConfirmationRequired pauses the submission until the operator answers
// the living-alone prompt.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrNotReady rejects a commit attempted before the wizard reached StepReady.
var ErrNotReady = errors.New("wizard has not completed all steps")

// Machine owns the wizard state: current step, the accumulated draft, and the
// last validation failure. It is a plain value, independent of any transport
// or rendering layer, and round-trips through JSON for session storage.
type Machine struct {
	Step   Step              `json:"step"`
	Draft  Draft             `json:"draft"`
	Errors map[string]string `json:"errors,omitempty"`
}

func NewMachine() *Machine {
	return &Machine{Step: StepIdentity}
}

// Advance validates the current step and moves forward. On failure the step
// does not change and Errors carries the field-keyed messages.
func (m *Machine) Advance() error {
	switch m.Step {
	case StepIdentity:
		if err := ValidateIdentity(m.Draft.Identity, m.Draft.Address); err != nil {
			m.captureErrors(err)
			return err
		}
		m.Errors = nil
		m.Step = StepConditions
		return nil
	case StepConditions:
		if err := ValidateConditions(m.Draft.Conditions); err != nil {
			m.captureErrors(err)
			return err
		}
		m.Errors = nil
		m.Step = StepFamily
		return nil
	default:
		ve := types.NewValidationError()
		ve.Add("step", "cannot advance from "+string(m.Step))
		return ve
	}
}

// Retreat steps back without touching the draft.
func (m *Machine) Retreat() {
	switch m.Step {
	case StepConditions:
		m.Step = StepIdentity
	case StepFamily:
		m.Step = StepConditions
	case StepAwaitingConfirm:
		m.Step = StepFamily
	}
	m.Errors = nil
}

// Submit finishes step 3. With no family data and no confirmation the
// machine pauses in StepAwaitingConfirm; the caller re-submits with
// confirmedAlone once the operator has answered the prompt.
func (m *Machine) Submit(confirmedAlone bool) error {
	if m.Step != StepFamily && m.Step != StepAwaitingConfirm {
		return ErrNotReady
	}
	if err := ValidateFamily(m.Draft.Family); err != nil {
		m.captureErrors(err)
		m.Step = StepFamily
		return err
	}
	m.Errors = nil
	if !HasAnyFamilyData(m.Draft.Family) && !confirmedAlone {
		m.Step = StepAwaitingConfirm
		return ErrConfirmationRequired
	}
	m.Step = StepReady
	return nil
}

// Ready reports whether the draft may be committed.
func (m *Machine) Ready() bool { return m.Step == StepReady }

func (m *Machine) captureErrors(err error) {
	if ve, ok := types.AsValidationError(err); ok {
		m.Errors = ve.Fields
	}
}
