package mailbox

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/logger"
)

func newBadger(t *testing.T, opts BadgerOptions) *Badger {
	t.Helper()
	b, err := OpenBadger(opts, logger.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestMailboxes(t *testing.T) {
	backends := map[string]func(t *testing.T) persistence.ReturnMailbox{
		"memory": func(*testing.T) persistence.ReturnMailbox { return NewMemory() },
		"badger": func(t *testing.T) persistence.ReturnMailbox {
			return newBadger(t, BadgerOptions{InMemory: true})
		},
	}

	deposit := persistence.SlotKey{Owner: "device-1", Flow: entity.FlowDeposit}
	withdraw := persistence.SlotKey{Owner: "device-1", Flow: entity.FlowWithdraw}
	other := persistence.SlotKey{Owner: "device-2", Flow: entity.FlowDeposit}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("should report an empty slot", func(t *testing.T) {
				_, err := open(t).Take(ctx, deposit)
				assert.ErrorIs(t, err, errs.ErrSlotEmpty)
			})

			t.Run("should keep only the latest post and read it once", func(t *testing.T) {
				box := open(t)
				require.NoError(t, box.Post(ctx, deposit, []byte("first")))
				require.NoError(t, box.Post(ctx, deposit, []byte("second")))

				payload, err := box.Take(ctx, deposit)
				require.NoError(t, err)
				assert.Equal(t, "second", string(payload))

				_, err = box.Take(ctx, deposit)
				assert.ErrorIs(t, err, errs.ErrSlotEmpty)
			})

			t.Run("should scope slots by owner and flow", func(t *testing.T) {
				box := open(t)
				require.NoError(t, box.Post(ctx, deposit, []byte("d")))
				require.NoError(t, box.Post(ctx, withdraw, []byte("w")))
				require.NoError(t, box.Post(ctx, other, []byte("o")))

				for key, want := range map[persistence.SlotKey]string{deposit: "d", withdraw: "w", other: "o"} {
					payload, err := box.Take(ctx, key)
					require.NoError(t, err)
					assert.Equal(t, want, string(payload))
				}
			})

			t.Run("should not alias the caller's buffer", func(t *testing.T) {
				box := open(t)
				buf := []byte("abc")
				require.NoError(t, box.Post(ctx, deposit, buf))
				buf[0] = 'x'

				payload, err := box.Take(ctx, deposit)
				require.NoError(t, err)
				assert.Equal(t, "abc", string(payload))
			})

			t.Run("should hand a payload to exactly one concurrent reader", func(t *testing.T) {
				box := open(t)
				require.NoError(t, box.Post(ctx, deposit, []byte("once")))

				var (
					wg   sync.WaitGroup
					mu   sync.Mutex
					hits int
				)
				for i := 0; i < 16; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						if _, err := box.Take(ctx, deposit); err == nil {
							mu.Lock()
							hits++
							mu.Unlock()
						}
					}()
				}
				wg.Wait()
				assert.Equal(t, 1, hits)
			})

			t.Run("should honour a cancelled context", func(t *testing.T) {
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				box := open(t)
				assert.ErrorIs(t, box.Post(cctx, deposit, []byte("x")), context.Canceled)
				_, err := box.Take(cctx, deposit)
				assert.ErrorIs(t, err, context.Canceled)
			})
		})
	}
}

func TestOpenBadgerFailure(t *testing.T) {
	t.Run("should report an unusable directory as storage unavailable", func(t *testing.T) {
		// Arrange
		file := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

		// Act
		b, err := OpenBadger(BadgerOptions{Dir: file}, logger.NewNoopLogger())

		// Assert
		assert.Nil(t, b)
		assert.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	key := persistence.SlotKey{Owner: "device-1", Flow: entity.FlowWithdraw}

	first, err := OpenBadger(BadgerOptions{Dir: dir}, logger.NewNoopLogger())
	require.NoError(t, err)
	require.NoError(t, first.Post(ctx, key, []byte("kept")))
	require.NoError(t, first.Close())

	second := newBadger(t, BadgerOptions{Dir: dir})
	pending, err := second.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"device-1/withdrawReturnData"}, pending)

	payload, err := second.Take(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "kept", string(payload))
}

func TestBadgerSlotTTL(t *testing.T) {
	box := newBadger(t, BadgerOptions{InMemory: true, TTL: time.Second})
	ctx := context.Background()
	key := persistence.SlotKey{Owner: "device-1", Flow: entity.FlowDeposit}

	require.NoError(t, box.Post(ctx, key, []byte("soon gone")))

	pending, err := box.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.Eventually(t, func() bool {
		pending, err := box.Pending()
		return err == nil && len(pending) == 0
	}, 3*time.Second, 100*time.Millisecond)

	_, err = box.Take(ctx, key)
	assert.ErrorIs(t, err, errs.ErrSlotEmpty)
}
