package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/dto"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/middleware"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/session"
)

// WizardHandler exposes deposit and withdraw wizard sessions
type WizardHandler struct {
	sessions *session.Registry
	logger   core.Logger
}

// NewWizardHandler creates a new wizard handler instance
func NewWizardHandler(sessions *session.Registry, logger core.Logger) *WizardHandler {
	return &WizardHandler{sessions: sessions, logger: logger}
}

// Open handles POST /wizard/:flow/sessions
func (h *WizardHandler) Open(c *gin.Context) {
	flow, err := entity.ParseFlow(c.Param("flow"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	s := h.sessions.Open(c.Request.Context(), flow, middleware.Owner(c))
	c.JSON(http.StatusCreated, dto.SessionResponse{SessionID: s.ID, State: s.Controller.Snapshot()})
}

// Get handles GET /wizard/sessions/:id
func (h *WizardHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.respond(c, s)
}

// Close handles DELETE /wizard/sessions/:id
func (h *WizardHandler) Close(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id"), middleware.Owner(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reload handles POST /wizard/sessions/:id/reload
func (h *WizardHandler) Reload(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	// list failures are reported in the state
	_ = s.Controller.Reload(c.Request.Context())
	h.respond(c, s)
}

// SelectPlatform handles POST /wizard/sessions/:id/platform
func (h *WizardHandler) SelectPlatform(c *gin.Context) {
	var req dto.SelectPlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	h.mutate(c, req.Advance, func(ctrl *wizard.Controller) error {
		return ctrl.SelectPlatform(c.Request.Context(), req.ID)
	})
}

// SelectBetID handles POST /wizard/sessions/:id/bet-id
func (h *WizardHandler) SelectBetID(c *gin.Context) {
	h.selectItem(c, (*wizard.Controller).SelectBetID)
}

// SelectNetwork handles POST /wizard/sessions/:id/network
func (h *WizardHandler) SelectNetwork(c *gin.Context) {
	h.selectItem(c, (*wizard.Controller).SelectNetwork)
}

// SelectPhone handles POST /wizard/sessions/:id/phone
func (h *WizardHandler) SelectPhone(c *gin.Context) {
	h.selectItem(c, (*wizard.Controller).SelectPhone)
}

// SetAmount handles PUT /wizard/sessions/:id/amount
func (h *WizardHandler) SetAmount(c *gin.Context) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	h.mutate(c, false, func(ctrl *wizard.Controller) error {
		return ctrl.SetAmount(req.Amount)
	})
}

// SetWithdrawalCode handles PUT /wizard/sessions/:id/withdrawal-code
func (h *WizardHandler) SetWithdrawalCode(c *gin.Context) {
	var req dto.WithdrawalCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	h.mutate(c, false, func(ctrl *wizard.Controller) error {
		return ctrl.SetWithdrawalCode(req.Code)
	})
}

// Next handles POST /wizard/sessions/:id/next
func (h *WizardHandler) Next(c *gin.Context) {
	h.mutate(c, false, (*wizard.Controller).GoNext)
}

// Back handles POST /wizard/sessions/:id/back
func (h *WizardHandler) Back(c *gin.Context) {
	h.mutate(c, false, (*wizard.Controller).GoBack)
}

// Confirm handles POST /wizard/sessions/:id/confirm
func (h *WizardHandler) Confirm(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	outcome, err := s.Controller.ConfirmSubmit(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConfirmResponse{Outcome: outcome, State: s.Controller.Snapshot()})
}

// BetIDDetour handles POST /wizard/sessions/:id/detours/bet-id
func (h *WizardHandler) BetIDDetour(c *gin.Context) {
	h.detour(c, (*wizard.Controller).BeginBetIDDetour)
}

// PhoneDetour handles POST /wizard/sessions/:id/detours/phone
func (h *WizardHandler) PhoneDetour(c *gin.Context) {
	h.detour(c, (*wizard.Controller).BeginPhoneDetour)
}

func (h *WizardHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"), middleware.Owner(c))
	if err != nil {
		writeError(c, h.logger, err)
		return nil, false
	}
	return s, true
}

func (h *WizardHandler) respond(c *gin.Context, s *session.Session) {
	c.JSON(http.StatusOK, dto.SessionResponse{SessionID: s.ID, State: s.Controller.Snapshot()})
}

// mutate applies fn, then GoNext when advance is set
func (h *WizardHandler) mutate(c *gin.Context, advance bool, fn func(*wizard.Controller) error) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := fn(s.Controller); err != nil {
		writeError(c, h.logger, err)
		return
	}
	if advance {
		if err := s.Controller.GoNext(); err != nil {
			writeError(c, h.logger, err)
			return
		}
	}
	h.respond(c, s)
}

func (h *WizardHandler) selectItem(c *gin.Context, selectFn func(*wizard.Controller, context.Context, int64) error) {
	var req dto.SelectItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	h.mutate(c, req.Advance, func(ctrl *wizard.Controller) error {
		return selectFn(ctrl, c.Request.Context(), req.ID)
	})
}

func (h *WizardHandler) detour(c *gin.Context, begin func(*wizard.Controller) (*wizard.NavigationIntent, error)) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	intent, err := begin(s.Controller)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.DetourResponse{Intent: intent})
}
