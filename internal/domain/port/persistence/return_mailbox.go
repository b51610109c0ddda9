package persistence

import (
	"context"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
)

// SlotKey addresses one durable return slot: one per owner and flow
type SlotKey struct {
	// Owner identifies the device or user the slot belongs to
	Owner string
	Flow  entity.Flow
}

// String returns the storage key, e.g. "device-1/depositReturnData"
func (k SlotKey) String() string {
	return k.Owner + "/" + k.Flow.ReturnSlotKey()
}

// ReturnMailbox is a single-entry, read-once store for wizard return-state.
//
// Post overwrites whatever the slot holds. Take returns the value and clears
// the slot in one step; it returns errs.ErrSlotEmpty when nothing is waiting.
type ReturnMailbox interface {
	Post(ctx context.Context, key SlotKey, payload []byte) error
	Take(ctx context.Context, key SlotKey) ([]byte, error)
}
