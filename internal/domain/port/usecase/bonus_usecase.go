package usecase

import (
	"context"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
)

// BonusPage is a page of bonuses with the total of that page
type BonusPage struct {
	entity.Page[entity.Bonus]
	Total entity.Amount `json:"total"`
}

// BonusTransactionRequest spends available bonus on a platform account
type BonusTransactionRequest struct {
	PlatformID string `json:"platform_id"`
	UserAppID  string `json:"user_app_id"`
	Amount     string `json:"amount"`
}

// BonusUseCase exposes referral bonuses and coupons.
// Every method fails with errs.ErrBonusDisabled while the referral program is off.
type BonusUseCase interface {
	ListBonuses(ctx context.Context, page entity.PageRequest) (*BonusPage, error)
	ListCoupons(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Coupon], error)

	// CreateBonusTransaction checks the amount against the available bonus of the profile
	CreateBonusTransaction(ctx context.Context, req BonusTransactionRequest) (*entity.TransactionResult, error)
}

// HistoryUseCase lists past transactions
type HistoryUseCase interface {
	ListTransactions(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Transaction], error)
}
