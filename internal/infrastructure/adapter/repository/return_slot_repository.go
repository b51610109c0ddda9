package repository

import (
	"context"
	"sync"
	"time"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/database"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReturnSlotRepository is a ReturnMailbox stored in the return_slots table
type ReturnSlotRepository struct {
	db           *gorm.DB
	logger       core.Logger
	timeProvider core.TimeProvider
	errorMapper  *database.ErrorMapper
	retryConfig  database.RetryConfig
}

// NewReturnSlotRepository creates a new return slot repository
func NewReturnSlotRepository(db *gorm.DB, logger core.Logger, timeProvider core.TimeProvider) *ReturnSlotRepository {
	return &ReturnSlotRepository{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  database.NewErrorMapper(),
		retryConfig:  database.DefaultRetryConfig(),
	}
}

var _ persistence.ReturnMailbox = (*ReturnSlotRepository)(nil)

// Post replaces whatever the slot holds with payload
func (r *ReturnSlotRepository) Post(ctx context.Context, key persistence.SlotKey, payload []byte) error {
	slot := model.ReturnSlot{
		SlotKey:  key.String(),
		Owner:    key.Owner,
		Flow:     string(key.Flow),
		Payload:  payload,
		PostedAt: r.timeProvider.Now(),
	}

	err := database.RetryOnTransientError(ctx, r.retryConfig, func() error {
		return r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "posted_at", "updated_at"}),
		}).Create(&slot).Error
	}, r.errorMapper, r.logger)
	if err != nil {
		return r.errorMapper.MapError(err, "post return slot")
	}
	return nil
}

// Take deletes the slot and returns what it held in a single statement,
// so two concurrent readers can never both receive the payload
func (r *ReturnSlotRepository) Take(ctx context.Context, key persistence.SlotKey) ([]byte, error) {
	var taken []model.ReturnSlot

	err := database.RetryOnTransientError(ctx, r.retryConfig, func() error {
		taken = taken[:0]
		return r.db.WithContext(ctx).
			Clauses(clause.Returning{Columns: []clause.Column{{Name: "payload"}}}).
			Where("slot_key = ?", key.String()).
			Delete(&taken).Error
	}, r.errorMapper, r.logger)
	if err != nil {
		return nil, r.errorMapper.MapError(err, "take return slot")
	}
	if len(taken) == 0 {
		return nil, errs.ErrSlotEmpty
	}
	return taken[0].Payload, nil
}

// PurgeStale drops slots posted more than ttl ago
func (r *ReturnSlotRepository) PurgeStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := r.timeProvider.Now().Add(-ttl)
	result := r.db.WithContext(ctx).Where("posted_at < ?", cutoff).Delete(&model.ReturnSlot{})
	if result.Error != nil {
		return 0, r.errorMapper.MapError(result.Error, "purge return slots")
	}
	if result.RowsAffected > 0 {
		r.logger.Info("Purged stale return slots", map[string]any{
			"count": result.RowsAffected,
			"ttl":   ttl.String(),
		})
	}
	return result.RowsAffected, nil
}

// StartPurger runs PurgeStale every interval until stop is called
func (r *ReturnSlotRepository) StartPurger(interval, ttl time.Duration) (stop func()) {
	ticks, stopTicker := r.timeProvider.NewTicker(core.Duration(interval))
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		defer stopTicker()
		for {
			select {
			case <-ticks:
				ctx, cancel := r.timeProvider.WithTimeout(context.Background(), 30*core.Second)
				if _, err := r.PurgeStale(ctx, ttl); err != nil {
					r.logger.Warn("Failed to purge stale return slots", map[string]any{"error": err.Error()})
				}
				cancel()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			<-exited
		})
	}
}
