package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation           = 4001
	CodeInvalidAmount        = 4002
	CodeSelectionOrder       = 4003
	CodeConfirmationRequired = 4004
	CodeWizardCompleted      = 4005
	CodeBetAccountNotFound   = 4006
	CodeUnsupportedCurrency  = 4007
	CodeInvalidPhone         = 4008
	CodeBonusDisabled        = 4009
	CodeInvalidRequest       = 4010
	CodeNotFound             = 4040
	CodeSessionNotFound      = 4041
	CodeSubmissionInProgress = 4091
	CodeRateLimited          = 4290

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeUpstream           = 5020
	CodeStorageUnavailable = 5030
)

// Base error types
var (
	// ErrPlatformRequired is returned when the wizard tries to leave step 1 without a platform
	ErrPlatformRequired = errors.New("platform must be selected")

	// ErrBetIDRequired is returned when the wizard tries to leave step 2 without a bet ID
	ErrBetIDRequired = errors.New("bet ID must be selected")

	// ErrNetworkRequired is returned when the wizard tries to leave step 3 without a network
	ErrNetworkRequired = errors.New("network must be selected")

	// ErrPhoneRequired is returned when the wizard tries to leave step 4 without a phone
	ErrPhoneRequired = errors.New("phone number must be selected")

	// ErrInvalidAmount is returned when the amount is not a positive number
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountBelowMinimum is returned when the amount is lower than the platform minimum
	ErrAmountBelowMinimum = errors.New("amount is below the minimum amount")

	// ErrAmountAboveMaximum is returned when the amount is higher than the platform maximum
	ErrAmountAboveMaximum = errors.New("amount is above the maximum amount")

	// ErrWithdrawalCodeTooShort is returned when the withdrawal code is missing or too short
	ErrWithdrawalCodeTooShort = errors.New("withdrawal code too short")

	// ErrSelectionOrder is returned when a later step is selected before an earlier one
	ErrSelectionOrder = errors.New("earlier selections must be made first")

	// ErrUnknownReference is returned when a selected ID is not in the loaded reference list
	ErrUnknownReference = errors.New("unknown reference")

	// ErrConfirmationRequired is returned when a submission is attempted without confirmation
	ErrConfirmationRequired = errors.New("submission must be confirmed first")

	// ErrSubmissionInProgress is returned for wizard mutations while a submission is in flight
	ErrSubmissionInProgress = errors.New("a submission is already in progress")

	// ErrWizardCompleted is returned for events received after a successful submission
	ErrWizardCompleted = errors.New("wizard already completed")

	// ErrInvalidFlow is returned for an unknown flow kind
	ErrInvalidFlow = errors.New("invalid flow")

	// ErrInvalidReturnPayload is returned when persisted return-state cannot be decoded
	ErrInvalidReturnPayload = errors.New("invalid return payload")

	// ErrBetAccountNotFound is returned when search-user reports no matching account
	ErrBetAccountNotFound = errors.New("bet account not found")

	// ErrUnsupportedCurrency is returned when the bet account currency is not accepted
	ErrUnsupportedCurrency = errors.New("unsupported account currency")

	// ErrInvalidBetID is returned when a bet identifier is empty or too short
	ErrInvalidBetID = errors.New("invalid bet identifier")

	// ErrInvalidPhone is returned when a phone number has too few digits
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrBonusDisabled is returned when bonus features are switched off in settings
	ErrBonusDisabled = errors.New("bonus feature is disabled")

	// ErrBonusExceedsAvailable is returned when a bonus transaction exceeds the available bonus
	ErrBonusExceedsAvailable = errors.New("amount exceeds available bonus")

	// ErrSessionNotFound is returned when a wizard session does not exist or expired
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrSlotEmpty is returned by mailbox stores when no return-state is waiting
	ErrSlotEmpty = errors.New("return slot is empty")

	// ErrStorageUnavailable is returned when a mailbox backend cannot be reached
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrRateLimited is returned when the remote API asks the user to retry later
	ErrRateLimited = errors.New("too many attempts")

	// ErrSubmissionFailed is returned when the remote API rejects a transaction
	ErrSubmissionFailed = errors.New("transaction submission failed")

	// ErrUpstream is returned for unexpected remote API failures
	ErrUpstream = errors.New("remote API error")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrAmountBelowMinimum),
		errors.Is(err, ErrAmountAboveMaximum),
		errors.Is(err, ErrBonusExceedsAvailable):
		return CodeInvalidAmount
	case errors.Is(err, ErrPlatformRequired),
		errors.Is(err, ErrBetIDRequired),
		errors.Is(err, ErrNetworkRequired),
		errors.Is(err, ErrPhoneRequired),
		errors.Is(err, ErrWithdrawalCodeTooShort),
		errors.Is(err, ErrInvalidBetID):
		return CodeValidation
	case errors.Is(err, ErrSelectionOrder), errors.Is(err, ErrUnknownReference):
		return CodeSelectionOrder
	case errors.Is(err, ErrConfirmationRequired):
		return CodeConfirmationRequired
	case errors.Is(err, ErrWizardCompleted):
		return CodeWizardCompleted
	case errors.Is(err, ErrSubmissionInProgress):
		return CodeSubmissionInProgress
	case errors.Is(err, ErrBetAccountNotFound):
		return CodeBetAccountNotFound
	case errors.Is(err, ErrUnsupportedCurrency):
		return CodeUnsupportedCurrency
	case errors.Is(err, ErrInvalidPhone):
		return CodeInvalidPhone
	case errors.Is(err, ErrBonusDisabled):
		return CodeBonusDisabled
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidFlow):
		return CodeInvalidRequest
	case errors.Is(err, ErrSessionNotFound):
		return CodeSessionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrSubmissionFailed), errors.Is(err, ErrUpstream):
		return CodeUpstream
	case errors.Is(err, ErrStorageUnavailable):
		return CodeStorageUnavailable
	default:
		return CodeInternalServer
	}
}

// ValidationError is a step-scoped rejection produced before any request leaves the device
type ValidationError struct {
	Step   int
	Reason string
	Err    error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Reason)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"step":       e.Step,
		"reason":     e.Reason,
		"error_code": ErrorCode(e.Err),
	}
}

// NewValidationError creates a step validation error
func NewValidationError(step int, reason string, err error) error {
	return &ValidationError{Step: step, Reason: reason, Err: err}
}

// IsValidationError checks if the error is a wizard validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SubmissionError describes a rejected deposit or withdrawal.
// Message is what the user sees; RetryAfter is set only for rate limiting.
type SubmissionError struct {
	Flow       string
	Message    string
	RetryAfter string
	Err        error
}

// Error implements the error interface for SubmissionError
func (e *SubmissionError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("%s submission rejected: too many attempts, retry in %s", e.Flow, e.RetryAfter)
	}
	return fmt.Sprintf("%s submission rejected: %s", e.Flow, e.Message)
}

// Unwrap returns the underlying error
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Is reports rate limited submissions as ErrRateLimited and every submission error as ErrSubmissionFailed
func (e *SubmissionError) Is(target error) bool {
	if target == ErrRateLimited {
		return e.RetryAfter != ""
	}
	return target == ErrSubmissionFailed
}

// LogFields returns a map of fields for structured logging
func (e *SubmissionError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":  "submission_error",
		"flow":        e.Flow,
		"message":     e.Message,
		"retry_after": e.RetryAfter,
		"error_code":  ErrorCode(e),
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// IsRateLimitedError checks if the error carries a retry-after hint
func IsRateLimitedError(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrBetAccountNotFound)
}
