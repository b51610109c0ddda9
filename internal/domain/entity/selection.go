package entity

import (
	"fmt"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
)

// Flow is the kind of wizard: deposit or withdraw
type Flow string

// Flows
const (
	FlowDeposit  Flow = "deposit"
	FlowWithdraw Flow = "withdraw"
)

// ParseFlow validates a flow name coming from a route or a command line
func ParseFlow(s string) (Flow, error) {
	switch Flow(s) {
	case FlowDeposit, FlowWithdraw:
		return Flow(s), nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidFlow, s)
	}
}

// ReturnSlotKey is the durable slot holding the return-state of this flow
func (f Flow) ReturnSlotKey() string {
	if f == FlowWithdraw {
		return "withdrawReturnData"
	}
	return "depositReturnData"
}

// Step is the 1-based wizard position
type Step int

// Wizard steps, in selection order
const (
	StepPlatform Step = iota + 1
	StepBetID
	StepNetwork
	StepPhone
	StepAmount
)

// FirstStep and LastStep bound the wizard
const (
	FirstStep = StepPlatform
	LastStep  = StepAmount
)

// Valid reports whether the step is within the wizard
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// String returns a short name used in logs
func (s Step) String() string {
	switch s {
	case StepPlatform:
		return "platform"
	case StepBetID:
		return "bet_id"
	case StepNetwork:
		return "network"
	case StepPhone:
		return "phone"
	case StepAmount:
		return "amount"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Selection is everything the user has chosen so far.
// Later selections are only set once every earlier one is set.
type Selection struct {
	Platform       *Platform  `json:"platform,omitempty"`
	BetID          *BetID     `json:"bet_id,omitempty"`
	Network        *Network   `json:"network,omitempty"`
	Phone          *UserPhone `json:"phone,omitempty"`
	Amount         string     `json:"amount"`
	WithdrawalCode string     `json:"withdrawal_code,omitempty"`
}

// Filled returns the last step whose selection is set, or 0 when nothing is
func (s Selection) Filled() Step {
	switch {
	case s.Phone != nil:
		return StepPhone
	case s.Network != nil:
		return StepNetwork
	case s.BetID != nil:
		return StepBetID
	case s.Platform != nil:
		return StepPlatform
	default:
		return 0
	}
}

// ClearFrom drops the selection made at step and everything after it
func (s *Selection) ClearFrom(step Step) {
	if step <= StepPlatform {
		s.Platform = nil
	}
	if step <= StepBetID {
		s.BetID = nil
	}
	if step <= StepNetwork {
		s.Network = nil
	}
	if step <= StepPhone {
		s.Phone = nil
	}
	if step <= StepAmount {
		s.Amount = ""
		s.WithdrawalCode = ""
	}
}
