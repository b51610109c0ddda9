package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/usecase"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/middleware"
)

// AccountHandler manages bet identifiers and phones
type AccountHandler struct {
	accounts usecase.AccountUseCase
	logger   core.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accounts usecase.AccountUseCase, logger core.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, logger: logger}
}

// AddBetID handles POST /bet-ids
func (h *AccountHandler) AddBetID(c *gin.Context) {
	var req usecase.AddBetIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	req.Owner = middleware.Owner(c)

	res, err := h.accounts.AddBetID(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdateBetID handles PATCH /bet-ids/:id
func (h *AccountHandler) UpdateBetID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req usecase.UpdateBetIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	betID, err := h.accounts.UpdateBetID(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, betID)
}

// DeleteBetID handles DELETE /bet-ids/:id
func (h *AccountHandler) DeleteBetID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.accounts.DeleteBetID(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddPhone handles POST /phones
func (h *AccountHandler) AddPhone(c *gin.Context) {
	var req usecase.AddPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	req.Owner = middleware.Owner(c)

	res, err := h.accounts.AddPhone(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdatePhone handles PATCH /phones/:id
func (h *AccountHandler) UpdatePhone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req usecase.UpdatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	phone, err := h.accounts.UpdatePhone(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, phone)
}

// DeletePhone handles DELETE /phones/:id
func (h *AccountHandler) DeletePhone(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.accounts.DeletePhone(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EditablePhone handles GET /phones/editable?phone=
func (h *AccountHandler) EditablePhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		badRequest(c, "Missing required query parameter: phone")
		return
	}
	c.JSON(http.StatusOK, h.accounts.EditablePhone(phone))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid id format")
		return 0, false
	}
	return id, true
}
