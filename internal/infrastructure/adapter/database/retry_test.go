package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	coremocks "github.com/turaincash/mobcash-wallet/mocks/port/core"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestRetryOnTransientError(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("should retry transient errors until success", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(), func() error {
			calls++
			if calls < 3 {
				return errors.New("deadlock detected")
			}
			return nil
		}, mapper, coremocks.NewLogger())

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop on the first permanent error", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(), func() error {
			calls++
			return errors.New("duplicate key value")
		}, mapper, coremocks.NewLogger())

		assert.EqualError(t, err, "duplicate key value")
		assert.Equal(t, 1, calls)
	})

	t.Run("should give up after max retries", func(t *testing.T) {
		logger := coremocks.NewLogger()
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(), func() error {
			calls++
			return errors.New("deadlock detected")
		}, mapper, logger)

		assert.Error(t, err)
		assert.Equal(t, 3, calls)
		logger.AssertCalled(t, "Error", "All retry attempts failed", map[string]any{
			"attempts": 3,
			"error":    "deadlock detected",
		})
	})

	t.Run("should stop waiting when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := RetryConfig{MaxRetries: 3, RetryInterval: time.Hour, MaxInterval: time.Hour}

		err := RetryOnTransientError(ctx, cfg, func() error {
			return errors.New("deadlock detected")
		}, mapper, coremocks.NewLogger())

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 30 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, calculateBackoffWithJitter(0, cfg))
	assert.Equal(t, 20*time.Millisecond, calculateBackoffWithJitter(1, cfg))
	assert.Equal(t, 30*time.Millisecond, calculateBackoffWithJitter(4, cfg))

	cfg.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		b := calculateBackoffWithJitter(0, cfg)
		assert.GreaterOrEqual(t, b, 10*time.Millisecond)
		assert.LessOrEqual(t, b, 15*time.Millisecond)
	}
}
