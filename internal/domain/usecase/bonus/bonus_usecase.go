package bonus

import (
	"context"
	"fmt"
	"strings"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/usecase"
)

// ReferralSettings tells whether the referral program is on
type ReferralSettings interface {
	ReferralBonusEnabled(ctx context.Context) (bool, error)
}

// BonusUseCase implements bonus and coupon access behind the referral switch
type BonusUseCase struct {
	gateway  gateway.MobcashGateway
	settings ReferralSettings
	logger   core.Logger
}

// NewBonusUseCase creates a new bonus use case instance
func NewBonusUseCase(gw gateway.MobcashGateway, settings ReferralSettings, logger core.Logger) usecase.BonusUseCase {
	return &BonusUseCase{
		gateway:  gw,
		settings: settings,
		logger:   logger,
	}
}

func (u *BonusUseCase) ensureEnabled(ctx context.Context) error {
	enabled, err := u.settings.ReferralBonusEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		return errs.ErrBonusDisabled
	}
	return nil
}

// ListBonuses returns a page of bonuses and its total
func (u *BonusUseCase) ListBonuses(ctx context.Context, page entity.PageRequest) (*usecase.BonusPage, error) {
	if err := u.ensureEnabled(ctx); err != nil {
		return nil, err
	}
	remote, err := u.gateway.ListBonuses(ctx, page.Normalize())
	if err != nil {
		return nil, err
	}

	out := &usecase.BonusPage{}
	if remote != nil {
		out.Page = *remote
	}
	if out.Results == nil {
		out.Results = []entity.Bonus{}
	}
	out.Total = entity.TotalBonus(out.Results)
	return out, nil
}

// ListCoupons returns a page of coupons
func (u *BonusUseCase) ListCoupons(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Coupon], error) {
	if err := u.ensureEnabled(ctx); err != nil {
		return nil, err
	}
	out, err := u.gateway.ListCoupons(ctx, page.Normalize())
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = &entity.Page[entity.Coupon]{}
	}
	if out.Results == nil {
		out.Results = []entity.Coupon{}
	}
	return out, nil
}

// CreateBonusTransaction spends bonus on a platform account
func (u *BonusUseCase) CreateBonusTransaction(ctx context.Context, req usecase.BonusTransactionRequest) (*entity.TransactionResult, error) {
	if err := u.ensureEnabled(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.PlatformID) == "" {
		return nil, errs.ErrPlatformRequired
	}
	if strings.TrimSpace(req.UserAppID) == "" {
		return nil, errs.ErrBetIDRequired
	}
	amount, err := entity.ParseAmount(req.Amount)
	if err != nil || amount <= 0 {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidAmount, req.Amount)
	}

	profile, err := u.gateway.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil || amount > profile.BonusAvailable {
		available := entity.Amount(0)
		if profile != nil {
			available = profile.BonusAvailable
		}
		return nil, fmt.Errorf("%w: %s requested, %s available", errs.ErrBonusExceedsAvailable, amount.Decimal(), available.Decimal())
	}

	result, err := u.gateway.CreateBonusTransaction(ctx, &entity.BonusTransactionRequest{
		App:       strings.TrimSpace(req.PlatformID),
		UserAppID: strings.TrimSpace(req.UserAppID),
		Amount:    amount,
	})
	if err != nil {
		subErr := errs.NewSubmissionError("bonus", err, "bonus transaction failed")
		u.logger.Warn("Bonus transaction rejected", subErr.LogFields())
		return nil, subErr
	}
	if result == nil {
		result = &entity.TransactionResult{}
	}
	u.logger.Info("Bonus transaction created", map[string]any{
		"platform_id": req.PlatformID,
		"amount":      amount.String(),
		"reference":   result.Reference,
	})
	return result, nil
}
