package account

import (
	"context"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/usecase"
)

// HistoryUseCase lists the user's past transactions
type HistoryUseCase struct {
	gateway gateway.MobcashGateway
}

// NewHistoryUseCase creates a new history use case instance
func NewHistoryUseCase(gw gateway.MobcashGateway) usecase.HistoryUseCase {
	return &HistoryUseCase{gateway: gw}
}

// ListTransactions returns one page of history, newest first as served remotely
func (u *HistoryUseCase) ListTransactions(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Transaction], error) {
	out, err := u.gateway.ListTransactions(ctx, page.Normalize())
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = &entity.Page[entity.Transaction]{}
	}
	if out.Results == nil {
		out.Results = []entity.Transaction{}
	}
	return out, nil
}
