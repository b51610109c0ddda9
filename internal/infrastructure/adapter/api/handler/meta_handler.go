package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
)

// HealthCheck reports whether a backing store is reachable
type HealthCheck func() bool

// MetaHandler serves liveness and static reference data
type MetaHandler struct {
	checks map[string]HealthCheck
}

// NewMetaHandler creates a meta handler; checks may be empty
func NewMetaHandler(checks map[string]HealthCheck) *MetaHandler {
	return &MetaHandler{checks: checks}
}

// Health handles GET /healthz
func (h *MetaHandler) Health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok"}
	for name, check := range h.checks {
		if check() {
			body[name] = "ok"
			continue
		}
		body[name] = "unavailable"
		body["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, body)
}

// Countries handles GET /countries
func (h *MetaHandler) Countries(c *gin.Context) {
	c.JSON(http.StatusOK, entity.Countries)
}
