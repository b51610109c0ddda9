package gateway

import (
	"context"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
)

// BetIDInput is the body used to create or rename a bet identifier
type BetIDInput struct {
	UserAppID string `json:"user_app_id"`
	App       string `json:"app_name"`
}

// PhoneInput is the body used to create or edit a phone
type PhoneInput struct {
	Phone   string `json:"phone"`
	Network int64  `json:"network"`
}

// SearchUserInput asks a platform whether an identifier exists
type SearchUserInput struct {
	App    string `json:"app_id"`
	UserID string `json:"userid"`
}

// MobcashGateway is the remote Mobcash REST API as seen by the wallet.
// Every call is made on behalf of the user carried by ctx.
//
// Non-2xx answers are returned as *errs.APIError.
type MobcashGateway interface {
	// ListPlatforms returns every platform, enabled or not
	ListPlatforms(ctx context.Context) ([]entity.Platform, error)
	// ListNetworks returns every network, whatever flow it is active for
	ListNetworks(ctx context.Context) ([]entity.Network, error)
	// ListBetIDs returns the user's bet identifiers on a platform
	ListBetIDs(ctx context.Context, platformID string) ([]entity.BetID, error)
	// ListPhones returns the user's phones on a network, keyed by Network.Key()
	ListPhones(ctx context.Context, networkKey string) ([]entity.UserPhone, error)

	SearchUser(ctx context.Context, in SearchUserInput) (*entity.BetAccount, error)
	CreateBetID(ctx context.Context, in BetIDInput) (*entity.BetID, error)
	UpdateBetID(ctx context.Context, id int64, in BetIDInput) (*entity.BetID, error)
	DeleteBetID(ctx context.Context, id int64) error

	CreatePhone(ctx context.Context, in PhoneInput) (*entity.UserPhone, error)
	UpdatePhone(ctx context.Context, id int64, in PhoneInput) (*entity.UserPhone, error)
	DeletePhone(ctx context.Context, id int64) error

	CreateDeposit(ctx context.Context, req *entity.TransactionRequest) (*entity.TransactionResult, error)
	CreateWithdrawal(ctx context.Context, req *entity.TransactionRequest) (*entity.TransactionResult, error)

	GetSettings(ctx context.Context) (*entity.Settings, error)
	GetProfile(ctx context.Context) (*entity.Profile, error)
	ListBonuses(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Bonus], error)
	ListCoupons(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Coupon], error)
	CreateBonusTransaction(ctx context.Context, req *entity.BonusTransactionRequest) (*entity.TransactionResult, error)
	ListTransactions(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Transaction], error)
}

type bearerTokenKey struct{}

// WithBearerToken makes gateway calls made with ctx act for the given user
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey{}, token)
}

// BearerToken returns the token set by WithBearerToken, or ""
func BearerToken(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey{}).(string)
	return token
}
