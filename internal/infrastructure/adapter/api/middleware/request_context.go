package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/dto"
)

// Header names understood by the API
const (
	HeaderRequestID = "X-Request-ID"
	HeaderDeviceID  = "X-Device-ID"
)

const ownerKey = "owner"

// RequestID reuses the caller's X-Request-ID or mints one, echoes it back
// and stores it in the request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(core.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// Identity requires X-Device-ID, which scopes sessions and return slots,
// and forwards a bearer token to the Mobcash API when the caller sent one
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := strings.TrimSpace(c.GetHeader(HeaderDeviceID))
		if owner == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrInvalidRequest),
				Message: "Missing required header: " + HeaderDeviceID,
			})
			return
		}
		c.Set(ownerKey, owner)

		if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && token != "" {
			c.Request = c.Request.WithContext(gateway.WithBearerToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

// Owner returns the device id stored by Identity
func Owner(c *gin.Context) string {
	return c.GetString(ownerKey)
}
