package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if m.IsTransient(err) || m.IsConnectionError(err) {
		return fmt.Errorf("%w: %s: %s", errs.ErrStorageUnavailable, operation, err.Error())
	}
	return fmt.Errorf("%w: %s: %s", errs.ErrInternalServer, operation, err.Error())
}

// IsTransient reports errors worth retrying: lock conflicts and dropped connections
func (m *ErrorMapper) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize access") ||
		strings.Contains(errMsg, "serialization failure") ||
		strings.Contains(errMsg, "lock timeout") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "too many connections") ||
		strings.Contains(errMsg, "server closed") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "unexpected eof")
}

// IsConnectionError reports errors raised before the statement reached the server
func (m *ErrorMapper) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "dial tcp") ||
		strings.Contains(errMsg, "i/o timeout")
}
