package error

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 502, Method: "GET", Path: "/mobcash/network", Message: "bad gateway"}
	assert.Equal(t, "GET /mobcash/network: 502 bad gateway", err.Error())
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrNotFound)

	notFound := &APIError{StatusCode: 404, Method: "DELETE", Path: "/mobcash/user-phone/3/"}
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.Equal(t, "DELETE /mobcash/user-phone/3/: 404", notFound.Error())
}

func TestFirstMatch(t *testing.T) {
	testCases := []struct {
		name     string
		body     map[string]any
		expected string
	}{
		{"details wins over detail", map[string]any{"detail": "b", "details": "a"}, "a"},
		{"detail before error", map[string]any{"error": "c", "detail": "b"}, "b"},
		{"error before message", map[string]any{"message": "d", "error": "c"}, "c"},
		{"message alone", map[string]any{"message": "d"}, "d"},
		{"list takes first element", map[string]any{"non_field_errors": []any{"first", "second"}}, "first"},
		{"blank values skipped", map[string]any{"details": "  ", "detail": "b"}, "b"},
		{"non string ignored", map[string]any{"details": 12, "error": map[string]any{"x": 1}}, ""},
		{"empty body", nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FirstMatch(tc.body, MessageExtractors...))
		})
	}
}

func TestNewSubmissionError(t *testing.T) {
	t.Run("Rate limit hint as string", func(t *testing.T) {
		apiErr := &APIError{StatusCode: 429, Body: map[string]any{
			"error_time_message": "3 minutes",
			"detail":             "ignored",
		}}
		err := NewSubmissionError("deposit", apiErr, "fallback")
		assert.Equal(t, "3 minutes", err.RetryAfter)
		assert.Equal(t, "too many attempts, please retry in 3 minutes", err.Message)
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("Rate limit hint as list", func(t *testing.T) {
		apiErr := &APIError{StatusCode: 400, Body: map[string]any{
			"error_time_message": []any{"45 secondes"},
		}}
		err := NewSubmissionError("withdraw", apiErr, "fallback")
		assert.Equal(t, "45 secondes", err.RetryAfter)
	})

	t.Run("Generic message from body", func(t *testing.T) {
		apiErr := &APIError{StatusCode: 400, Message: "Bad Request", Body: map[string]any{"detail": "Solde insuffisant"}}
		err := NewSubmissionError("withdraw", apiErr, "fallback")
		assert.Empty(t, err.RetryAfter)
		assert.Equal(t, "Solde insuffisant", err.Message)
		assert.NotErrorIs(t, err, ErrRateLimited)
	})

	t.Run("Status text when body is silent", func(t *testing.T) {
		apiErr := &APIError{StatusCode: 500, Message: "Internal Server Error"}
		err := NewSubmissionError("deposit", apiErr, "fallback")
		assert.Equal(t, "Internal Server Error", err.Message)
	})

	t.Run("Transport error", func(t *testing.T) {
		err := NewSubmissionError("deposit", errors.New("connection refused"), "fallback")
		assert.Equal(t, "connection refused", err.Message)
	})

	t.Run("Fallback", func(t *testing.T) {
		err := NewSubmissionError("deposit", &APIError{StatusCode: 500}, "deposit failed")
		assert.Equal(t, "deposit failed", err.Message)
	})
}

func TestUserMessage(t *testing.T) {
	badRequest := &APIError{StatusCode: 400, Message: "Bad Request", Body: map[string]any{"error": "Numéro déjà utilisé"}}
	assert.Equal(t, "Numéro déjà utilisé", UserMessage(badRequest, "fallback"))

	serverErr := &APIError{StatusCode: 500, Message: "Internal Server Error", Body: map[string]any{"error": "hidden"}}
	assert.Equal(t, "Internal Server Error", UserMessage(serverErr, "fallback"))

	assert.Equal(t, "fallback", UserMessage(&APIError{StatusCode: 503}, "fallback"))
	assert.Equal(t, "timeout", UserMessage(errors.New("timeout"), "fallback"))
	assert.Equal(t, "fallback", UserMessage(nil, "fallback"))
}
