package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
)

// ReturnMailbox is a testify mock of persistence.ReturnMailbox
type ReturnMailbox struct {
	mock.Mock
}

var _ persistence.ReturnMailbox = (*ReturnMailbox)(nil)

func (m *ReturnMailbox) Post(ctx context.Context, key persistence.SlotKey, payload []byte) error {
	return m.Called(ctx, key, payload).Error(0)
}

func (m *ReturnMailbox) Take(ctx context.Context, key persistence.SlotKey) ([]byte, error) {
	args := m.Called(ctx, key)
	var raw []byte
	if v := args.Get(0); v != nil {
		raw = v.([]byte)
	}
	return raw, args.Error(1)
}
