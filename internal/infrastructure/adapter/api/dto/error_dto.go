package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	RetryAfter string `json:"retry_after,omitempty"`
}
