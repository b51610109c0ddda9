package entity

import (
	"fmt"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
)

// SourceWeb tags transactions created from the wallet front-end
const SourceWeb = "web"

// TransactionStatus is the remote processing state of a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending  TransactionStatus = "pending"
	StatusAccepted TransactionStatus = "accept"
	StatusRejected TransactionStatus = "reject"
)

// TransactionRequest is the payload of a deposit or withdrawal submission
type TransactionRequest struct {
	Amount         Amount `json:"amount"`
	PhoneNumber    string `json:"phone_number"`
	App            string `json:"app"`
	UserAppID      string `json:"user_app_id"`
	Network        int64  `json:"network"`
	Source         string `json:"source"`
	City           string `json:"city,omitempty"`
	Street         string `json:"street,omitempty"`
	WithdrawalCode string `json:"withdriwal_code,omitempty"`
}

// NewTransactionRequest assembles a submission from a complete selection.
// The amount must already be validated.
func NewTransactionRequest(flow Flow, sel Selection, amount Amount) (*TransactionRequest, error) {
	if sel.Platform == nil {
		return nil, errs.ErrPlatformRequired
	}
	if sel.BetID == nil {
		return nil, errs.ErrBetIDRequired
	}
	if sel.Network == nil {
		return nil, errs.ErrNetworkRequired
	}
	if sel.Phone == nil {
		return nil, errs.ErrPhoneRequired
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: must be positive", errs.ErrInvalidAmount)
	}

	req := &TransactionRequest{
		Amount:      amount,
		PhoneNumber: sel.Phone.Digits(),
		App:         sel.Platform.ID,
		UserAppID:   sel.BetID.UserAppID,
		Network:     sel.Network.ID,
		Source:      SourceWeb,
		City:        sel.Platform.City,
		Street:      sel.Platform.Street,
	}
	if flow == FlowWithdraw {
		req.WithdrawalCode = sel.WithdrawalCode
	}
	return req, nil
}

// TransactionResult is the remote answer to a successful submission
type TransactionResult struct {
	ID              int64             `json:"id,omitempty"`
	Reference       string            `json:"reference,omitempty"`
	Status          TransactionStatus `json:"status,omitempty"`
	TransactionLink string            `json:"transaction_link,omitempty"`
}

// Transaction is one entry of the user's history
type Transaction struct {
	ID        int64             `json:"id"`
	Reference string            `json:"reference,omitempty"`
	Type      string            `json:"type_trans"`
	Amount    Amount            `json:"amount"`
	Status    TransactionStatus `json:"status"`
	App       string            `json:"app,omitempty"`
	UserAppID string            `json:"user_app_id,omitempty"`
	Phone     string            `json:"phone_number,omitempty"`
	CreatedAt string            `json:"created_at"`
}

// Page is a paginated remote list
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
	Results  []T    `json:"results"`
}

// PageRequest selects a page of a remote list
type PageRequest struct {
	Page     int
	PageSize int
}

// Normalize applies defaults: first page, 10 entries
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}
