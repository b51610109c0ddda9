package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/usecase"
)

// BonusHandler serves bonuses, coupons and the transaction history
type BonusHandler struct {
	bonuses usecase.BonusUseCase
	history usecase.HistoryUseCase
	logger  core.Logger
}

// NewBonusHandler creates a new bonus handler instance
func NewBonusHandler(bonuses usecase.BonusUseCase, history usecase.HistoryUseCase, logger core.Logger) *BonusHandler {
	return &BonusHandler{bonuses: bonuses, history: history, logger: logger}
}

// ListBonuses handles GET /bonuses
func (h *BonusHandler) ListBonuses(c *gin.Context) {
	page, err := h.bonuses.ListBonuses(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListCoupons handles GET /coupons
func (h *BonusHandler) ListCoupons(c *gin.Context) {
	page, err := h.bonuses.ListCoupons(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateBonusTransaction handles POST /bonus-transactions
func (h *BonusHandler) CreateBonusTransaction(c *gin.Context) {
	var req usecase.BonusTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.bonuses.CreateBonusTransaction(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListTransactions handles GET /transactions
func (h *BonusHandler) ListTransactions(c *gin.Context) {
	page, err := h.history.ListTransactions(c.Request.Context(), pageRequest(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// pageRequest reads page and page_size; bad values fall back to defaults
func pageRequest(c *gin.Context) entity.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return entity.PageRequest{Page: page, PageSize: size}.Normalize()
}
