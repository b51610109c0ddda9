package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/persistence"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/account"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/bonus"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/settings"
	"github.com/turaincash/mobcash-wallet/internal/domain/usecase/wizard"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/handler"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/api/routes"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/database"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/logger"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/mailbox"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/mobcash"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/repository"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/session"
	timeProvider "github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/time"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/config"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the wallet HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func newLogger(cfg *config.Config) (core.Logger, error) {
	level, err := core.ParseLogLevel(cfg.Logger.Level)
	if err != nil {
		return nil, err
	}
	return logger.NewZapLogger(logger.Options{
		Production: cfg.Logger.Format == "json",
		Level:      level,
		Service:    cfg.Logger.Service,
	})
}

// store is the return mailbox picked by mailbox.driver, with its health probe
type store struct {
	mailbox persistence.ReturnMailbox
	healthy handler.HealthCheck
	close   func() error
}

func openStore(ctx context.Context, cfg *config.Config, log core.Logger, clock core.TimeProvider) (*store, error) {
	switch cfg.Mailbox.Driver {
	case config.MailboxMemory:
		return &store{
			mailbox: mailbox.NewMemory(),
			healthy: func() bool { return true },
			close:   func() error { return nil },
		}, nil

	case config.MailboxBadger:
		db, err := mailbox.OpenBadger(mailbox.BadgerOptions{Dir: cfg.Mailbox.Path, TTL: cfg.Mailbox.TTL}, log)
		if err != nil {
			return nil, err
		}
		return &store{
			mailbox: db,
			healthy: func() bool { _, err := db.Pending(); return err == nil },
			close:   db.Close,
		}, nil

	case config.MailboxPostgres:
		manager := database.NewManager(&database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			Username:        cfg.Database.Username,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			ApplicationName: cfg.Logger.Service,
			ConnectTimeout:  cfg.Database.ConnectTimeout,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			QueryTimeout:    cfg.Database.QueryTimeout,
			LogLevel:        cfg.Logger.Level,
			RetryAttempts:   cfg.Database.RetryAttempts,
			RetryDelay:      cfg.Database.RetryDelay,
		}, log, clock)
		if _, err := manager.Connect(ctx); err != nil {
			return nil, err
		}
		if err := manager.Migrate(ctx); err != nil {
			_ = manager.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		repo := repository.NewReturnSlotRepository(manager.DB(), log, clock)
		stopPurger := func() {}
		if cfg.Mailbox.TTL > 0 {
			stopPurger = repo.StartPurger(cfg.Mailbox.TTL/2, cfg.Mailbox.TTL)
		}
		return &store{
			mailbox: repo,
			healthy: manager.Healthy,
			close: func() error {
				stopPurger()
				return manager.Close()
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported mailbox driver %q", cfg.Mailbox.Driver)
}

// app is the wired HTTP side of serve
type app struct {
	router   *gin.Engine
	registry *session.Registry
	settings *settings.Service
}

// newApp assembles the use cases and the gin engine around a gateway and a mailbox
func newApp(cfg *config.Config, gw gateway.MobcashGateway, box persistence.ReturnMailbox, healthy handler.HealthCheck,
	log core.Logger, clock core.TimeProvider) *app {
	settingsSvc := settings.NewService(gw, clock, core.Duration(cfg.Wizard.SettingsTTL), log)

	registry := session.NewRegistry(func(flow entity.Flow, owner string) *wizard.Controller {
		return wizard.NewController(flow, owner, gw, box, settingsSvc, log)
	}, clock, core.Duration(cfg.Wizard.SessionTTL), log)

	router := gin.New()
	routes.SetupMiddlewares(router, log, clock, cfg.Server.AllowedOrigins)
	routes.SetupRoutes(router, routes.Handlers{
		Wizard:  handler.NewWizardHandler(registry, log),
		Account: handler.NewAccountHandler(account.NewAccountUseCase(gw, box, log), log),
		Bonus:   handler.NewBonusHandler(bonus.NewBonusUseCase(gw, settingsSvc, log), account.NewHistoryUseCase(gw), log),
		Meta:    handler.NewMetaHandler(map[string]handler.HealthCheck{"mailbox": healthy}),
	})
	return &app{router: router, registry: registry, settings: settingsSvc}
}

func serve(ctx context.Context, cfg *config.Config) error {
	appLogger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	for _, warning := range cfg.Warnings() {
		appLogger.Warn("Configuration warning", map[string]any{"warning": warning})
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	clock := timeProvider.NewRealTimeProvider()

	client, err := mobcash.NewClient(mobcash.Config{
		BaseURL:   cfg.Mobcash.BaseURL,
		Token:     cfg.Mobcash.Token,
		Timeout:   cfg.Mobcash.Timeout,
		UserAgent: cfg.Mobcash.UserAgent + "/" + version,
	}, appLogger, clock)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, appLogger, clock)
	if err != nil {
		return fmt.Errorf("failed to open %s mailbox: %w", cfg.Mailbox.Driver, err)
	}
	defer func() {
		if err := st.close(); err != nil {
			appLogger.Error("Failed to close mailbox", map[string]any{"error": err.Error()})
		}
	}()

	a := newApp(cfg, client, st.mailbox, st.healthy, appLogger, clock)
	a.registry.Start()
	defer a.registry.Stop()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           a.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":    server.Addr,
			"env":     cfg.Environment,
			"mailbox": cfg.Mailbox.Driver,
			"config":  cfg.Source,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// SIGHUP drops the cached remote settings
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

wait:
	for {
		select {
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-hup:
			a.settings.Invalidate()
			appLogger.Info("Settings cache cleared", nil)
		case <-ctx.Done():
			break wait
		}
	}

	appLogger.Info("Shutting down server...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
		return err
	}
	appLogger.Info("Server exited gracefully", map[string]any{"open_sessions": a.registry.Len()})
	return nil
}
