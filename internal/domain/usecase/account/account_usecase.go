package account

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/usecase"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
)

// AccountUseCase implements the bet identifier and phone management
type AccountUseCase struct {
	gateway gateway.MobcashGateway
	mailbox persistence.ReturnMailbox
	logger  core.Logger
}

// NewAccountUseCase creates a new account use case instance
func NewAccountUseCase(
	gw gateway.MobcashGateway,
	mailbox persistence.ReturnMailbox,
	logger core.Logger,
) usecase.AccountUseCase {
	return &AccountUseCase{
		gateway: gw,
		mailbox: mailbox,
		logger:  logger,
	}
}

// AddBetID registers a bet identifier after the platform confirms it exists in XOF
func (u *AccountUseCase) AddBetID(ctx context.Context, req usecase.AddBetIDRequest) (*usecase.AddBetIDResult, error) {
	userAppID := strings.TrimSpace(req.UserAppID)
	if utf8.RuneCountInString(userAppID) < entity.MinBetIDLength {
		return nil, fmt.Errorf("%w: bet ID needs at least %d characters", errs.ErrInvalidBetID, entity.MinBetIDLength)
	}
	platformID := strings.TrimSpace(req.PlatformID)
	if platformID == "" && req.Intent != nil {
		platformID = req.Intent.PlatformID
	}
	if platformID == "" {
		return nil, errs.ErrPlatformRequired
	}
	if req.Intent != nil {
		if err := u.checkIntent(req.Intent, wizard.ReturnAddBet); err != nil {
			return nil, err
		}
	}

	account, err := u.checkAccount(ctx, platformID, userAppID)
	if err != nil {
		return nil, err
	}

	created, err := u.gateway.CreateBetID(ctx, gateway.BetIDInput{UserAppID: userAppID, App: platformID})
	if err != nil {
		u.logger.Error("Failed to create bet ID", map[string]any{
			"platform_id": platformID,
			"error":       err.Error(),
		})
		return nil, err
	}
	u.logger.Info("Bet ID created", map[string]any{
		"platform_id": platformID,
		"bet_id":      created.ID,
	})

	result := &usecase.AddBetIDResult{BetID: created, Account: account}
	if req.Intent != nil {
		payload, err := req.Intent.CompleteWithBetID(created.UserAppID)
		if err != nil {
			return nil, err
		}
		// resume on the platform the bet ID was created on
		payload.PlatformID = platformID
		result.Return = u.postReturn(ctx, req.Owner, req.Intent.Flow, payload)
	}
	return result, nil
}

// UpdateBetID renames a bet identifier once the platform confirms the new one
func (u *AccountUseCase) UpdateBetID(ctx context.Context, id int64, req usecase.UpdateBetIDRequest) (*entity.BetID, error) {
	userAppID := strings.TrimSpace(req.UserAppID)
	if userAppID == "" {
		return nil, fmt.Errorf("%w: bet ID is empty", errs.ErrInvalidBetID)
	}
	if req.PlatformID == "" {
		return nil, errs.ErrPlatformRequired
	}
	if _, err := u.checkAccount(ctx, req.PlatformID, userAppID); err != nil {
		return nil, err
	}

	updated, err := u.gateway.UpdateBetID(ctx, id, gateway.BetIDInput{UserAppID: userAppID, App: req.PlatformID})
	if err != nil {
		return nil, err
	}
	u.logger.Info("Bet ID updated", map[string]any{"bet_id": id})
	return updated, nil
}

// DeleteBetID removes a bet identifier
func (u *AccountUseCase) DeleteBetID(ctx context.Context, id int64) error {
	if err := u.gateway.DeleteBetID(ctx, id); err != nil {
		return err
	}
	u.logger.Info("Bet ID deleted", map[string]any{"bet_id": id})
	return nil
}

// AddPhone registers a phone in its full international form
func (u *AccountUseCase) AddPhone(ctx context.Context, req usecase.AddPhoneRequest) (*usecase.AddPhoneResult, error) {
	if err := entity.ValidateLocalPhone(req.Phone); err != nil {
		return nil, err
	}
	networkID := req.NetworkID
	if networkID == 0 && req.Intent != nil {
		networkID = req.Intent.NetworkID
	}
	if networkID == 0 {
		return nil, errs.ErrNetworkRequired
	}
	if req.Intent != nil {
		if err := u.checkIntent(req.Intent, wizard.ReturnAddPhone); err != nil {
			return nil, err
		}
	}

	full := entity.ComposeFull(entity.FormatDigits(req.Phone), entity.CountryByCode(req.CountryCode))
	created, err := u.gateway.CreatePhone(ctx, gateway.PhoneInput{Phone: full, Network: networkID})
	if err != nil {
		u.logger.Error("Failed to create phone", map[string]any{
			"network_id": networkID,
			"error":      err.Error(),
		})
		return nil, err
	}
	u.logger.Info("Phone created", map[string]any{
		"network_id": networkID,
		"phone_id":   created.ID,
	})

	result := &usecase.AddPhoneResult{Phone: created}
	if req.Intent != nil {
		payload, err := req.Intent.CompleteWithPhone(full)
		if err != nil {
			return nil, err
		}
		payload.NetworkID = networkID
		result.Return = u.postReturn(ctx, req.Owner, req.Intent.Flow, payload)
	}
	return result, nil
}

// UpdatePhone edits a phone number, re-prefixed with the chosen country
func (u *AccountUseCase) UpdatePhone(ctx context.Context, id int64, req usecase.UpdatePhoneRequest) (*entity.UserPhone, error) {
	local := entity.FormatDigits(req.Phone)
	if local == "" {
		return nil, fmt.Errorf("%w: phone is empty", errs.ErrInvalidPhone)
	}
	if req.NetworkID == 0 {
		return nil, errs.ErrNetworkRequired
	}

	full := entity.ComposeFull(local, entity.CountryByCode(req.CountryCode))
	updated, err := u.gateway.UpdatePhone(ctx, id, gateway.PhoneInput{Phone: full, Network: req.NetworkID})
	if err != nil {
		return nil, err
	}
	u.logger.Info("Phone updated", map[string]any{"phone_id": id})
	return updated, nil
}

// DeletePhone removes a phone
func (u *AccountUseCase) DeletePhone(ctx context.Context, id int64) error {
	if err := u.gateway.DeletePhone(ctx, id); err != nil {
		return err
	}
	u.logger.Info("Phone deleted", map[string]any{"phone_id": id})
	return nil
}

// EditablePhone splits a stored number for the edit form
func (u *AccountUseCase) EditablePhone(phone string) usecase.EditablePhone {
	country := entity.DetectCountry(phone, entity.Countries)
	return usecase.EditablePhone{
		Country: country,
		Local:   entity.StripCountryPrefix(phone, country),
	}
}

// checkAccount asks the platform about an identifier
func (u *AccountUseCase) checkAccount(ctx context.Context, platformID, userAppID string) (*entity.BetAccount, error) {
	account, err := u.gateway.SearchUser(ctx, gateway.SearchUserInput{App: platformID, UserID: userAppID})
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Found() {
		return nil, fmt.Errorf("%w: %s on %s", errs.ErrBetAccountNotFound, userAppID, platformID)
	}
	if account.CurrencyID != entity.AcceptedCurrencyID {
		return nil, fmt.Errorf("%w: currency %d", errs.ErrUnsupportedCurrency, account.CurrencyID)
	}
	return account, nil
}

func (u *AccountUseCase) checkIntent(intent *wizard.NavigationIntent, want wizard.ReturnAction) error {
	if intent.Action != want {
		return fmt.Errorf("%w: intent is %q, expected %q", errs.ErrInvalidRequest, intent.Action, want)
	}
	return intent.Validate()
}

// postReturn writes the payload for the wizard the user came from.
// The entity already exists, so a store failure is logged and not returned.
func (u *AccountUseCase) postReturn(ctx context.Context, owner string, flow entity.Flow, payload *wizard.ReturnPayload) *wizard.ReturnPayload {
	key := persistence.SlotKey{Owner: owner, Flow: flow}
	raw, err := json.Marshal(payload)
	if err == nil {
		err = u.mailbox.Post(ctx, key, raw)
	}
	if err != nil {
		u.logger.Error("Failed to post return-state", map[string]any{
			"slot":  key.String(),
			"error": err.Error(),
		})
		return nil
	}
	u.logger.Debug("Return-state posted", map[string]any{
		"slot":   key.String(),
		"action": string(payload.Action),
	})
	return payload
}
