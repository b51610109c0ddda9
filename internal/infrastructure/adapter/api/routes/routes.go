package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/handler"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every API handler
type Handlers struct {
	Wizard  *handler.WizardHandler
	Account *handler.AccountHandler
	Bonus   *handler.BonusHandler
	Meta    *handler.MetaHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/healthz", h.Meta.Health)
	router.GET("/countries", h.Meta.Countries)

	api := router.Group("/", middleware.Identity())

	api.POST("/wizard/:flow/sessions", h.Wizard.Open)
	sessions := api.Group("/wizard/sessions/:id")
	{
		sessions.GET("", h.Wizard.Get)
		sessions.DELETE("", h.Wizard.Close)
		sessions.POST("/reload", h.Wizard.Reload)
		sessions.POST("/platform", h.Wizard.SelectPlatform)
		sessions.POST("/bet-id", h.Wizard.SelectBetID)
		sessions.POST("/network", h.Wizard.SelectNetwork)
		sessions.POST("/phone", h.Wizard.SelectPhone)
		sessions.PUT("/amount", h.Wizard.SetAmount)
		sessions.PUT("/withdrawal-code", h.Wizard.SetWithdrawalCode)
		sessions.POST("/next", h.Wizard.Next)
		sessions.POST("/back", h.Wizard.Back)
		sessions.POST("/confirm", h.Wizard.Confirm)
		sessions.POST("/detours/bet-id", h.Wizard.BetIDDetour)
		sessions.POST("/detours/phone", h.Wizard.PhoneDetour)
	}

	api.POST("/bet-ids", h.Account.AddBetID)
	api.PATCH("/bet-ids/:id", h.Account.UpdateBetID)
	api.DELETE("/bet-ids/:id", h.Account.DeleteBetID)
	api.GET("/phones/editable", h.Account.EditablePhone)
	api.POST("/phones", h.Account.AddPhone)
	api.PATCH("/phones/:id", h.Account.UpdatePhone)
	api.DELETE("/phones/:id", h.Account.DeletePhone)

	api.GET("/bonuses", h.Bonus.ListBonuses)
	api.GET("/coupons", h.Bonus.ListCoupons)
	api.POST("/bonus-transactions", h.Bonus.CreateBonusTransaction)
	api.GET("/transactions", h.Bonus.ListTransactions)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger core.Logger, clock core.TimeProvider, allowedOrigins []string) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, clock))
	router.Use(middleware.CORS(allowedOrigins))
}
