package gateway

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
)

// MobcashGateway is a testify mock of gateway.MobcashGateway
type MobcashGateway struct {
	mock.Mock
}

var _ gateway.MobcashGateway = (*MobcashGateway)(nil)

func valueOf[T any](args mock.Arguments, i int) T {
	var zero T
	if v := args.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

func (m *MobcashGateway) ListPlatforms(ctx context.Context) ([]entity.Platform, error) {
	args := m.Called(ctx)
	return valueOf[[]entity.Platform](args, 0), args.Error(1)
}

func (m *MobcashGateway) ListNetworks(ctx context.Context) ([]entity.Network, error) {
	args := m.Called(ctx)
	return valueOf[[]entity.Network](args, 0), args.Error(1)
}

func (m *MobcashGateway) ListBetIDs(ctx context.Context, platformID string) ([]entity.BetID, error) {
	args := m.Called(ctx, platformID)
	return valueOf[[]entity.BetID](args, 0), args.Error(1)
}

func (m *MobcashGateway) ListPhones(ctx context.Context, networkKey string) ([]entity.UserPhone, error) {
	args := m.Called(ctx, networkKey)
	return valueOf[[]entity.UserPhone](args, 0), args.Error(1)
}

func (m *MobcashGateway) SearchUser(ctx context.Context, in gateway.SearchUserInput) (*entity.BetAccount, error) {
	args := m.Called(ctx, in)
	return valueOf[*entity.BetAccount](args, 0), args.Error(1)
}

func (m *MobcashGateway) CreateBetID(ctx context.Context, in gateway.BetIDInput) (*entity.BetID, error) {
	args := m.Called(ctx, in)
	return valueOf[*entity.BetID](args, 0), args.Error(1)
}

func (m *MobcashGateway) UpdateBetID(ctx context.Context, id int64, in gateway.BetIDInput) (*entity.BetID, error) {
	args := m.Called(ctx, id, in)
	return valueOf[*entity.BetID](args, 0), args.Error(1)
}

func (m *MobcashGateway) DeleteBetID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MobcashGateway) CreatePhone(ctx context.Context, in gateway.PhoneInput) (*entity.UserPhone, error) {
	args := m.Called(ctx, in)
	return valueOf[*entity.UserPhone](args, 0), args.Error(1)
}

func (m *MobcashGateway) UpdatePhone(ctx context.Context, id int64, in gateway.PhoneInput) (*entity.UserPhone, error) {
	args := m.Called(ctx, id, in)
	return valueOf[*entity.UserPhone](args, 0), args.Error(1)
}

func (m *MobcashGateway) DeletePhone(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MobcashGateway) CreateDeposit(ctx context.Context, req *entity.TransactionRequest) (*entity.TransactionResult, error) {
	args := m.Called(ctx, req)
	return valueOf[*entity.TransactionResult](args, 0), args.Error(1)
}

func (m *MobcashGateway) CreateWithdrawal(ctx context.Context, req *entity.TransactionRequest) (*entity.TransactionResult, error) {
	args := m.Called(ctx, req)
	return valueOf[*entity.TransactionResult](args, 0), args.Error(1)
}

func (m *MobcashGateway) GetSettings(ctx context.Context) (*entity.Settings, error) {
	args := m.Called(ctx)
	return valueOf[*entity.Settings](args, 0), args.Error(1)
}

func (m *MobcashGateway) GetProfile(ctx context.Context) (*entity.Profile, error) {
	args := m.Called(ctx)
	return valueOf[*entity.Profile](args, 0), args.Error(1)
}

func (m *MobcashGateway) ListBonuses(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Bonus], error) {
	args := m.Called(ctx, page)
	return valueOf[*entity.Page[entity.Bonus]](args, 0), args.Error(1)
}

func (m *MobcashGateway) ListCoupons(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Coupon], error) {
	args := m.Called(ctx, page)
	return valueOf[*entity.Page[entity.Coupon]](args, 0), args.Error(1)
}

func (m *MobcashGateway) CreateBonusTransaction(ctx context.Context, req *entity.BonusTransactionRequest) (*entity.TransactionResult, error) {
	args := m.Called(ctx, req)
	return valueOf[*entity.TransactionResult](args, 0), args.Error(1)
}

func (m *MobcashGateway) ListTransactions(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Transaction], error) {
	args := m.Called(ctx, page)
	return valueOf[*entity.Page[entity.Transaction]](args, 0), args.Error(1)
}
