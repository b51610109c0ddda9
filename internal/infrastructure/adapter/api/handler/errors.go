package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/dto"
)

type logFielder interface {
	LogFields() map[string]any
}

// StatusFor maps a domain error to the HTTP status of its response
func StatusFor(err error) int {
	var apiErr *errs.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return apiErr.StatusCode
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return http.StatusTooManyRequests
		case apiErr.StatusCode == http.StatusNotFound:
			return http.StatusNotFound
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return http.StatusUnprocessableEntity
		}
	}

	switch errs.ErrorCode(err) {
	case errs.CodeRateLimited:
		return http.StatusTooManyRequests
	case errs.CodeNotFound, errs.CodeSessionNotFound:
		return http.StatusNotFound
	case errs.CodeBetAccountNotFound, errs.CodeUnsupportedCurrency:
		return http.StatusUnprocessableEntity
	case errs.CodeWizardCompleted, errs.CodeSubmissionInProgress:
		return http.StatusConflict
	case errs.CodeBonusDisabled:
		return http.StatusForbidden
	case errs.CodeUpstream:
		return http.StatusBadGateway
	case errs.CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case errs.CodeInternalServer:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// messageFor returns what the user is shown for err
func messageFor(err error) string {
	var subErr *errs.SubmissionError
	if errors.As(err, &subErr) {
		return subErr.Message
	}
	var valErr *errs.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	if errs.ErrorCode(err) == errs.CodeInternalServer {
		return "Internal server error"
	}
	return errs.UserMessage(err, "Request failed")
}

// writeError answers with the ErrorResponse of err. Server-side failures are
// logged as errors, everything else at debug.
func writeError(c *gin.Context, logger core.Logger, err error) {
	status := StatusFor(err)

	fields := map[string]any{
		"path":       c.FullPath(),
		"status":     status,
		"request_id": core.RequestID(c.Request.Context()),
		"error":      err.Error(),
	}
	var lf logFielder
	if errors.As(err, &lf) {
		for k, v := range lf.LogFields() {
			fields[k] = v
		}
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
	} else {
		logger.Debug("Request rejected", fields)
	}

	resp := dto.ErrorResponse{Code: errs.ErrorCode(err), Message: messageFor(err)}
	var subErr *errs.SubmissionError
	if errors.As(err, &subErr) {
		resp.RetryAfter = subErr.RetryAfter
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrInvalidRequest),
		Message: message,
	})
}
