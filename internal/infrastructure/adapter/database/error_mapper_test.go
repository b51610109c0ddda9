package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"gorm.io/gorm"
)

func TestErrorMapper(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("should pass nil through", func(t *testing.T) {
		assert.NoError(t, mapper.MapError(nil, "op"))
	})

	t.Run("should map missing records to not found", func(t *testing.T) {
		assert.ErrorIs(t, mapper.MapError(gorm.ErrRecordNotFound, "op"), errs.ErrNotFound)
	})

	t.Run("should keep context errors", func(t *testing.T) {
		err := mapper.MapError(context.DeadlineExceeded, "take return slot")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "take return slot")
	})

	t.Run("should map transient and connection errors to storage unavailable", func(t *testing.T) {
		for _, msg := range []string{
			"ERROR: deadlock detected",
			"pq: could not serialize access due to concurrent update",
			"read tcp: connection reset by peer",
			"dial tcp 127.0.0.1:5432: connect: connection refused",
		} {
			err := mapper.MapError(errors.New(msg), "post return slot")
			assert.ErrorIs(t, err, errs.ErrStorageUnavailable, msg)
			assert.Equal(t, errs.CodeStorageUnavailable, errs.ErrorCode(err))
		}
	})

	t.Run("should map anything else to internal", func(t *testing.T) {
		err := mapper.MapError(errors.New("syntax error at or near"), "op")
		assert.ErrorIs(t, err, errs.ErrInternalServer)
	})

	t.Run("should only retry transient errors", func(t *testing.T) {
		assert.True(t, mapper.IsTransient(errors.New("deadlock detected")))
		assert.False(t, mapper.IsTransient(errors.New("dial tcp: connection refused")))
		assert.False(t, mapper.IsTransient(nil))
		assert.True(t, mapper.IsConnectionError(errors.New("dial tcp: i/o timeout")))
	})
}
