package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown session", errs.ErrSessionNotFound, http.StatusNotFound},
		{"missing platform", fmt.Errorf("step 1: %w", errs.ErrPlatformRequired), http.StatusBadRequest},
		{"amount below minimum", errs.ErrAmountBelowMinimum, http.StatusBadRequest},
		{"completed wizard", errs.ErrWizardCompleted, http.StatusConflict},
		{"submission in progress", errs.ErrSubmissionInProgress, http.StatusConflict},
		{"unknown bet account", errs.ErrBetAccountNotFound, http.StatusUnprocessableEntity},
		{"foreign currency", errs.ErrUnsupportedCurrency, http.StatusUnprocessableEntity},
		{"bonus off", errs.ErrBonusDisabled, http.StatusForbidden},
		{"storage down", errs.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"internal", errs.ErrInternalServer, http.StatusInternalServerError},
		{"upstream unreachable", fmt.Errorf("%w: dial tcp", errs.ErrUpstream), http.StatusBadGateway},
		{"upstream 400", &errs.APIError{StatusCode: http.StatusBadRequest}, http.StatusUnprocessableEntity},
		{"upstream 401", &errs.APIError{StatusCode: http.StatusUnauthorized}, http.StatusUnauthorized},
		{"upstream 404", &errs.APIError{StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{"upstream 500", &errs.APIError{StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
		{"throttled submission", errs.NewSubmissionError("withdraw", &errs.APIError{
			StatusCode: http.StatusTooManyRequests,
			Body:       map[string]any{"error_time_message": "5 minutes"},
		}, "withdraw failed"), http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run("should map "+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestMessageFor(t *testing.T) {
	t.Run("should use the submission message", func(t *testing.T) {
		err := errs.NewSubmissionError("deposit", &errs.APIError{
			StatusCode: http.StatusBadRequest,
			Body:       map[string]any{"details": "Plafond atteint"},
		}, "deposit failed")

		assert.Equal(t, "Plafond atteint", messageFor(err))
	})

	t.Run("should hide internal details", func(t *testing.T) {
		err := fmt.Errorf("%w: nil pointer in mapper", errs.ErrInternalServer)

		assert.Equal(t, "Internal server error", messageFor(err))
	})

	t.Run("should prefer field messages on upstream 400", func(t *testing.T) {
		err := &errs.APIError{StatusCode: http.StatusBadRequest, Message: "Bad Request",
			Body: map[string]any{"non_field_errors": []any{"Identifiant déjà enregistré"}}}

		assert.Equal(t, "Identifiant déjà enregistré", messageFor(err))
	})

	t.Run("should fall back to the error text", func(t *testing.T) {
		err := fmt.Errorf("%w: at least 6 digits required, got 3", errs.ErrInvalidPhone)

		assert.Equal(t, err.Error(), messageFor(err))
	})
}
