package mailbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
)

const keyPrefix = "return/"

// maxConflictRetries bounds how often Take retries after losing a race
const maxConflictRetries = 5

// BadgerOptions configures a Badger mailbox
type BadgerOptions struct {
	Dir      string // on-disk directory, ignored when InMemory is set
	InMemory bool
	// TTL drops slots nobody picked up; zero keeps them forever
	TTL time.Duration
}

// Badger is a ReturnMailbox persisted in a local BadgerDB
type Badger struct {
	db     *badger.DB
	ttl    time.Duration
	logger core.Logger
}

var _ persistence.ReturnMailbox = (*Badger)(nil)

// OpenBadger opens or creates the store
func OpenBadger(opts BadgerOptions, logger core.Logger) (*Badger, error) {
	db, err := badger.Open(badgerOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: open mailbox store: %s", errs.ErrStorageUnavailable, err.Error())
	}

	b := &Badger{db: db, ttl: opts.TTL, logger: logger}
	if !opts.InMemory {
		b.runGC()
	}
	return b, nil
}

func badgerOptions(opts BadgerOptions) badger.Options {
	if opts.InMemory {
		bopts := badger.DefaultOptions("").WithInMemory(true)
		bopts.Logger = nil
		return bopts
	}
	bopts := badger.DefaultOptions(opts.Dir)
	bopts.Logger = nil
	return bopts
}

func slotKey(key persistence.SlotKey) []byte {
	return []byte(keyPrefix + key.String())
}

// Post overwrites the slot
func (b *Badger) Post(ctx context.Context, key persistence.SlotKey, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(slotKey(key), payload)
		if b.ttl > 0 {
			e = e.WithTTL(b.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("%w: post %s: %s", errs.ErrStorageUnavailable, key, err.Error())
	}
	return nil
}

// Take reads and deletes the slot in one transaction. A reader that loses
// a race against another Take retries and then sees the slot empty.
func (b *Badger) Take(ctx context.Context, key persistence.SlotKey) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var payload []byte
		err := b.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(slotKey(key))
			if err != nil {
				return err
			}
			if payload, err = item.ValueCopy(nil); err != nil {
				return err
			}
			return txn.Delete(slotKey(key))
		})

		switch {
		case err == nil:
			return payload, nil
		case errors.Is(err, badger.ErrKeyNotFound):
			return nil, errs.ErrSlotEmpty
		case errors.Is(err, badger.ErrConflict) && attempt < maxConflictRetries:
			b.logger.Debug("Mailbox take conflicted, retrying", map[string]any{"slot": key.String()})
			continue
		default:
			return nil, fmt.Errorf("%w: take %s: %s", errs.ErrStorageUnavailable, key, err.Error())
		}
	}
}

// Pending lists the keys of slots waiting to be taken
func (b *Badger) Pending() ([]string, error) {
	var keys []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	return keys, err
}

// Close runs value log GC and closes the store
func (b *Badger) Close() error {
	b.runGC()
	return b.db.Close()
}

func (b *Badger) runGC() {
	for {
		if b.db.RunValueLogGC(0.5) != nil {
			return
		}
	}
}
