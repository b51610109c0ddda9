package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
)

// MinWithdrawalCodeLength is the shortest withdrawal code the platforms issue
const MinWithdrawalCodeLength = 4

// StepValidator guards every forward move of the wizard
type StepValidator struct{}

// NewStepValidator creates a new StepValidator
func NewStepValidator() *StepValidator {
	return &StepValidator{}
}

// Validate reports whether the wizard may leave step for the next one.
// Rejections are *errs.ValidationError wrapping a sentinel.
func (v *StepValidator) Validate(step entity.Step, flow entity.Flow, sel entity.Selection) error {
	switch step {
	case entity.StepPlatform:
		if sel.Platform == nil {
			return errs.NewValidationError(int(step), "select a platform", errs.ErrPlatformRequired)
		}
	case entity.StepBetID:
		if sel.BetID == nil {
			return errs.NewValidationError(int(step), "select a bet ID", errs.ErrBetIDRequired)
		}
	case entity.StepNetwork:
		if sel.Network == nil {
			return errs.NewValidationError(int(step), "select a network", errs.ErrNetworkRequired)
		}
	case entity.StepPhone:
		if sel.Phone == nil {
			return errs.NewValidationError(int(step), "select a phone number", errs.ErrPhoneRequired)
		}
	case entity.StepAmount:
		_, err := v.ValidateAmount(flow, sel)
		return err
	default:
		return errs.NewValidationError(int(step), "unknown step", errs.ErrInvalidRequest)
	}
	return nil
}

// ValidateAmount runs the final step checks and returns the parsed amount.
// Order: amount, withdrawal code, minimum, maximum.
func (v *StepValidator) ValidateAmount(flow entity.Flow, sel entity.Selection) (entity.Amount, error) {
	step := int(entity.StepAmount)

	amount, err := entity.ParseAmount(sel.Amount)
	if err != nil || amount <= 0 {
		return 0, errs.NewValidationError(step, "enter a valid amount", errs.ErrInvalidAmount)
	}

	if flow == entity.FlowWithdraw {
		code := strings.TrimSpace(sel.WithdrawalCode)
		if utf8.RuneCountInString(code) < MinWithdrawalCodeLength {
			return 0, errs.NewValidationError(step, "withdrawal code must have at least 4 characters", errs.ErrWithdrawalCodeTooShort)
		}
	}

	if sel.Platform == nil {
		return 0, errs.NewValidationError(step, "select a platform", errs.ErrPlatformRequired)
	}

	lower, upper := sel.Platform.Bounds(flow)
	if amount < lower {
		return 0, errs.NewValidationError(step, "minimum amount is "+lower.Decimal()+" FCFA", errs.ErrAmountBelowMinimum)
	}
	if amount > upper {
		return 0, errs.NewValidationError(step, "maximum amount is "+upper.Decimal()+" FCFA", errs.ErrAmountAboveMaximum)
	}

	return amount, nil
}
