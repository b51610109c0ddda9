package mailbox

import (
	"context"
	"sync"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
)

// Memory is a process-local ReturnMailbox. Slots do not survive a restart.
type Memory struct {
	mu    sync.Mutex
	slots map[persistence.SlotKey][]byte
}

// NewMemory creates an empty in-memory mailbox
func NewMemory() *Memory {
	return &Memory{slots: map[persistence.SlotKey][]byte{}}
}

var _ persistence.ReturnMailbox = (*Memory)(nil)

// Post overwrites the slot
func (m *Memory) Post(ctx context.Context, key persistence.SlotKey, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = append([]byte(nil), payload...)
	return nil
}

// Take returns and clears the slot
func (m *Memory) Take(ctx context.Context, key persistence.SlotKey) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.slots[key]
	if !ok {
		return nil, errs.ErrSlotEmpty
	}
	delete(m.slots, key)
	return payload, nil
}
