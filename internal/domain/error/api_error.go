package error

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the remote Mobcash API.
// Body holds the decoded JSON object when the response had one.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       map[string]any
	Message    string
}

// Error implements the error interface for APIError
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.StatusCode)
}

// Is maps 404 answers to ErrNotFound and everything else to ErrUpstream
func (e *APIError) Is(target error) bool {
	if target == ErrNotFound {
		return e.StatusCode == http.StatusNotFound
	}
	return target == ErrUpstream
}

// LogFields returns a map of fields for structured logging
func (e *APIError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "api_error",
		"status_code": e.StatusCode,
		"method":      e.Method,
		"path":        e.Path,
		"message":     e.Message,
	}
}

// Extractor pulls a user-facing message out of an error body.
// It returns "" when the body has nothing for it.
type Extractor func(body map[string]any) string

// FieldExtractor reads a top-level key holding a string or a list whose first element is a string
func FieldExtractor(key string) Extractor {
	return func(body map[string]any) string {
		return stringish(body[key])
	}
}

// RateLimitExtractors find the retry-after hint of a throttled submission.
var RateLimitExtractors = []Extractor{
	FieldExtractor("error_time_message"),
}

// MessageExtractors are tried in this order when no rate limit hint is present:
// details, detail, error, message, non_field_errors.
var MessageExtractors = []Extractor{
	FieldExtractor("details"),
	FieldExtractor("detail"),
	FieldExtractor("error"),
	FieldExtractor("message"),
	FieldExtractor("non_field_errors"),
}

// FirstMatch runs the extractors in order and returns the first non-empty message
func FirstMatch(body map[string]any, extractors ...Extractor) string {
	if len(body) == 0 {
		return ""
	}
	for _, extract := range extractors {
		if msg := extract(body); msg != "" {
			return msg
		}
	}
	return ""
}

// NewSubmissionError classifies a failed deposit or withdrawal call.
// Rate limit hints win over generic messages; fallback is used when nothing else is available.
func NewSubmissionError(flow string, err error, fallback string) *SubmissionError {
	subErr := &SubmissionError{Flow: flow, Err: err}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if retryAfter := FirstMatch(apiErr.Body, RateLimitExtractors...); retryAfter != "" {
			subErr.RetryAfter = retryAfter
			subErr.Message = "too many attempts, please retry in " + retryAfter
			return subErr
		}
		subErr.Message = FirstMatch(apiErr.Body, MessageExtractors...)
		if subErr.Message == "" {
			subErr.Message = apiErr.Message
		}
	} else if err != nil {
		subErr.Message = err.Error()
	}

	if subErr.Message == "" {
		subErr.Message = fallback
	}
	return subErr
}

// UserMessage returns the best message for a failed account mutation.
// Field-level messages are only trusted on 400 answers.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusBadRequest {
			if msg := FirstMatch(apiErr.Body, MessageExtractors...); msg != "" {
				return msg
			}
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func stringish(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		if len(val) > 0 {
			return stringish(val[0])
		}
	case []string:
		if len(val) > 0 {
			return strings.TrimSpace(val[0])
		}
	}
	return ""
}
