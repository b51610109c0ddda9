package dto

import (
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
)

// SelectPlatformRequest picks a platform; Advance also moves to the next step
type SelectPlatformRequest struct {
	ID      string `json:"id" binding:"required"`
	Advance bool   `json:"advance"`
}

// SelectItemRequest picks a bet ID, network or phone by id
type SelectItemRequest struct {
	ID      int64 `json:"id" binding:"required"`
	Advance bool  `json:"advance"`
}

// AmountRequest sets the amount as typed by the user
type AmountRequest struct {
	Amount string `json:"amount"`
}

// WithdrawalCodeRequest sets the withdrawal code
type WithdrawalCodeRequest struct {
	Code string `json:"code"`
}

// SessionResponse is a wizard session and its state
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	State     wizard.Snapshot `json:"state"`
}

// ConfirmResponse is the outcome of a confirmed submission and the wizard
// state after it
type ConfirmResponse struct {
	Outcome *wizard.Outcome `json:"outcome,omitempty"`
	State   wizard.Snapshot `json:"state"`
}

// DetourResponse is what the client carries to the add bet ID or add phone screen
type DetourResponse struct {
	Intent *wizard.NavigationIntent `json:"intent"`
}
