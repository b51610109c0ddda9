package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. MC_MOBCASH_TOKEN
const EnvPrefix = "MC"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../.env",
	"../../.env",
}

// LoadOptions selects what LoadConfig reads. Zero values fall back to
// MC_ENV and the per-environment file in ConfigPaths.
type LoadOptions struct {
	Environment string
	File        string
}

// LoadConfig loads configuration from the environment's YAML file, .env and MC_* variables.
// Without an explicit file a missing YAML is not an error: defaults and the environment apply.
func LoadConfig(opts LoadOptions) (*Config, error) {
	// .env only fills variables that are not already set
	_ = loadDotEnvFile()

	env := opts.Environment
	if env == "" {
		env = getEnvironment()
	}
	env = strings.ToLower(env)

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(env)
		v.SetConfigType("yaml")
		for _, path := range ConfigPaths {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env
	config.Source = v.ConfigFileUsed()

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in DotEnvPaths
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return errors.New("no .env file found in search paths")
}

// Defaults returns every key with its default value, nested the way the YAML file is
func Defaults() map[string]any {
	v := viper.New()
	setDefaults(v)
	return v.AllSettings()
}

// setDefaults sets default values. Secrets default to "" so MC_* variables can still bind them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "45s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("mobcash.base_url", "")
	v.SetDefault("mobcash.token", "")
	v.SetDefault("mobcash.timeout", "30s")
	v.SetDefault("mobcash.user_agent", "mobcash-wallet")

	v.SetDefault("mailbox.driver", MailboxBadger)
	v.SetDefault("mailbox.path", "./data/mailbox")
	v.SetDefault("mailbox.ttl", "24h")

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.connect_timeout", "5s")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "15m")
	v.SetDefault("database.query_timeout", "5s")
	v.SetDefault("database.retry_attempts", 3)
	v.SetDefault("database.retry_delay", "1s")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service", "mobcash-wallet")

	v.SetDefault("wizard.session_ttl", "30m")
	v.SetDefault("wizard.settings_ttl", "5m")
}

// getEnvironment determines the environment from MC_ENV, development by default
func getEnvironment() string {
	if env := os.Getenv(EnvPrefix + "_ENV"); env != "" {
		return env
	}
	return Development
}
