package usecase

import (
	"context"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
)

// AddBetIDRequest registers a bet identifier on a platform.
// Intent is set when the user left a wizard to add it.
type AddBetIDRequest struct {
	Owner      string                   `json:"-"`
	PlatformID string                   `json:"platform_id"`
	UserAppID  string                   `json:"user_app_id"`
	Intent     *wizard.NavigationIntent `json:"intent,omitempty"`
}

// AddBetIDResult is the created identifier and, for a detour, the posted return payload
type AddBetIDResult struct {
	BetID   *entity.BetID         `json:"bet_id"`
	Account *entity.BetAccount    `json:"account"`
	Return  *wizard.ReturnPayload `json:"return,omitempty"`
}

// UpdateBetIDRequest renames a bet identifier
type UpdateBetIDRequest struct {
	PlatformID string `json:"platform_id"`
	UserAppID  string `json:"user_app_id"`
}

// AddPhoneRequest registers a phone on a network.
// Phone holds the local number, CountryCode the ISO code of its market.
type AddPhoneRequest struct {
	Owner       string                   `json:"-"`
	Phone       string                   `json:"phone"`
	CountryCode string                   `json:"country_code"`
	NetworkID   int64                    `json:"network_id"`
	Intent      *wizard.NavigationIntent `json:"intent,omitempty"`
}

// AddPhoneResult is the created phone and, for a detour, the posted return payload
type AddPhoneResult struct {
	Phone  *entity.UserPhone     `json:"phone"`
	Return *wizard.ReturnPayload `json:"return,omitempty"`
}

// UpdatePhoneRequest edits a phone number or moves it to another network
type UpdatePhoneRequest struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
	NetworkID   int64  `json:"network_id"`
}

// EditablePhone is a stored phone split for the edit form
type EditablePhone struct {
	Country entity.CountryOption `json:"country"`
	Local   string               `json:"local"`
}

// AccountUseCase manages the bet identifiers and phones a wizard selects from
type AccountUseCase interface {
	// AddBetID checks the identifier with the platform, creates it and
	// completes the detour intent when one is attached
	AddBetID(ctx context.Context, req AddBetIDRequest) (*AddBetIDResult, error)
	UpdateBetID(ctx context.Context, id int64, req UpdateBetIDRequest) (*entity.BetID, error)
	DeleteBetID(ctx context.Context, id int64) error

	// AddPhone stores the full international number and completes the detour
	// intent when one is attached
	AddPhone(ctx context.Context, req AddPhoneRequest) (*AddPhoneResult, error)
	UpdatePhone(ctx context.Context, id int64, req UpdatePhoneRequest) (*entity.UserPhone, error)
	DeletePhone(ctx context.Context, id int64) error

	// EditablePhone splits a stored number into its country and local digits
	EditablePhone(phone string) EditablePhone
}
