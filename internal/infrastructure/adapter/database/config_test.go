package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            5432,
		Username:        "postgres",
		Password:        "secret",
		Database:        "mobcash",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "warn",
		RetryAttempts:   3,
		RetryDelay:      time.Second,
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing host", func(c *Config) { c.Host = "" }, "host is required"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "invalid port"},
		{"missing user", func(c *Config) { c.Username = "" }, "username is required"},
		{"missing database", func(c *Config) { c.Database = "" }, "name is required"},
		{"bad ssl mode", func(c *Config) { c.SSLMode = "sometimes" }, "invalid SSL mode"},
		{"no open conns", func(c *Config) { c.MaxOpenConns = 0 }, "max open connections"},
		{"no idle conns", func(c *Config) { c.MaxIdleConns = 0 }, "max idle connections"},
		{"more idle than open", func(c *Config) { c.MaxIdleConns = 11 }, "max idle connections"},
		{"negative connect timeout", func(c *Config) { c.ConnectTimeout = -time.Second }, "connect timeout"},
		{"no query timeout", func(c *Config) { c.QueryTimeout = 0 }, "query timeout"},
		{"no attempts", func(c *Config) { c.RetryAttempts = 0 }, "retry attempts"},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }, "retry delay"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfigDSN(t *testing.T) {
	t.Run("should build a plain keyword list", func(t *testing.T) {
		assert.Equal(t,
			"host=localhost port=5432 user=postgres password=secret dbname=mobcash sslmode=disable",
			validConfig().DSN())
	})

	t.Run("should quote awkward values and add the optional keys", func(t *testing.T) {
		cfg := validConfig()
		cfg.Password = `it's a pass`
		cfg.ApplicationName = "mobcash-wallet"
		cfg.ConnectTimeout = 5 * time.Second

		assert.Equal(t,
			`host=localhost port=5432 user=postgres password='it\'s a pass' dbname=mobcash sslmode=disable application_name=mobcash-wallet connect_timeout=5`,
			cfg.DSN())
	})

	t.Run("should mask the password", func(t *testing.T) {
		assert.NotContains(t, validConfig().RedactedDSN(), "secret")
		assert.Contains(t, validConfig().RedactedDSN(), "password=xxxxx")

		cfg := validConfig()
		cfg.Password = ""
		assert.NotContains(t, cfg.RedactedDSN(), "password=")
	})
}
