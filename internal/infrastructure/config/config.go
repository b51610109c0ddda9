package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
)

// Mailbox drivers
const (
	MailboxMemory   = "memory"
	MailboxBadger   = "badger"
	MailboxPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"-"`
	Source      string         `mapstructure:"-"`
	Server      ServerConfig   `mapstructure:"server"`
	Mobcash     MobcashConfig  `mapstructure:"mobcash"`
	Mailbox     MailboxConfig  `mapstructure:"mailbox"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Wizard      WizardConfig   `mapstructure:"wizard"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr is the listen address of the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MobcashConfig points at the remote Mobcash API
type MobcashConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Token     string        `mapstructure:"token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// MailboxConfig selects where wizard return payloads are kept between sessions
type MailboxConfig struct {
	Driver string        `mapstructure:"driver"`
	Path   string        `mapstructure:"path"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// DatabaseConfig contains database connection settings, used by the postgres mailbox
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
	RetryAttempts   int           `mapstructure:"retry_attempts"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Service string `mapstructure:"service"`
}

// WizardConfig tunes the wizard sessions and the settings cache
type WizardConfig struct {
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
	SettingsTTL time.Duration `mapstructure:"settings_ttl"`
}

// IsProduction reports whether the production environment is selected
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Validate ensures all required configuration values are present and coherent
func (c *Config) Validate() error {
	var missing []string

	if c.Server.Port <= 0 {
		missing = append(missing, "server.port")
	}
	if c.Server.ShutdownTimeout <= 0 {
		missing = append(missing, "server.shutdown_timeout")
	}
	if c.Mobcash.BaseURL == "" {
		missing = append(missing, "mobcash.base_url (or MC_MOBCASH_BASE_URL)")
	}
	if c.Logger.Level == "" {
		missing = append(missing, "logger.level")
	}

	switch c.Mailbox.Driver {
	case MailboxMemory:
	case MailboxBadger:
		if c.Mailbox.Path == "" {
			missing = append(missing, "mailbox.path")
		}
	case MailboxPostgres:
		if c.Database.Host == "" {
			missing = append(missing, "database.host (or MC_DATABASE_HOST)")
		}
		if c.Database.Username == "" {
			missing = append(missing, "database.username (or MC_DATABASE_USERNAME)")
		}
		if c.Database.Database == "" {
			missing = append(missing, "database.database (or MC_DATABASE_DATABASE)")
		}
	default:
		return fmt.Errorf("invalid mailbox.driver %q, must be one of: %s, %s, %s",
			c.Mailbox.Driver, MailboxMemory, MailboxBadger, MailboxPostgres)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	if !slices.Contains([]string{Development, Production, Test}, c.Environment) {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			c.Environment, Development, Production, Test)
	}
	if _, err := core.ParseLogLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid logger.format %q, must be json or console", c.Logger.Format)
	}
	if c.Wizard.SessionTTL <= 0 {
		return fmt.Errorf("wizard.session_ttl must be positive, got %s", c.Wizard.SessionTTL)
	}
	return nil
}

// Warnings lists settings that work but should not reach production
func (c *Config) Warnings() []string {
	if !c.IsProduction() {
		return nil
	}
	var warnings []string
	if !strings.HasPrefix(c.Mobcash.BaseURL, "https://") {
		warnings = append(warnings, "mobcash.base_url should use https in production")
	}
	if c.Mailbox.Driver == MailboxMemory {
		warnings = append(warnings, "mailbox.driver memory loses pending returns on restart")
	}
	if c.Mailbox.Driver == MailboxPostgres {
		switch strings.ToLower(c.Database.SSLMode) {
		case "require", "verify-ca", "verify-full":
		default:
			warnings = append(warnings, "database.ssl_mode should be 'require', 'verify-ca', or 'verify-full' in production")
		}
	}
	if slices.Contains(c.Server.AllowedOrigins, "*") {
		warnings = append(warnings, "server.allowed_origins accepts any origin")
	}
	return warnings
}
