package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	coreport "github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/model"
	timeprovider "github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/time"
	"gorm.io/gorm"
)

// TestDBManager provides utilities for testing with a database
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to the database named by MC_TEST_DB_* and
// migrates it. The test is skipped when MC_TEST_DB_HOST is unset.
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host, ok := os.LookupEnv("MC_TEST_DB_HOST")
	if !ok {
		t.Skip("MC_TEST_DB_HOST not set, skipping database test")
	}

	timeProvider := timeprovider.NewRealTimeProvider()
	config := &Config{
		Host:            host,
		Port:            getEnvIntOrDefault("MC_TEST_DB_PORT", 5432),
		Username:        getEnvOrDefault("MC_TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("MC_TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("MC_TEST_DB_DATABASE", "mobcash_wallet_test"),
		SSLMode:         getEnvOrDefault("MC_TEST_DB_SSL_MODE", "disable"),
		ApplicationName: "mobcash-wallet-test",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
		RetryDelay:      time.Second,
	}

	m := &TestDBManager{
		Manager:      NewManager(config, logger, timeProvider),
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}

	ctx := context.Background()
	if _, err := m.Manager.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := dropAllTables(m.Manager.DB()); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}
	if err := m.Manager.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return m
}

// dropAllTables drops all tables in the test database
func dropAllTables(db *gorm.DB) error {
	return db.Exec(`
		DO $$ DECLARE
			r RECORD;
		BEGIN
			FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = current_schema()) LOOP
				EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
			END LOOP;
		END $$;
	`).Error
}

// TruncateReturnSlots empties the return_slots table
func (m *TestDBManager) TruncateReturnSlots(t *testing.T) {
	t.Helper()

	if err := m.Manager.DB().Exec("TRUNCATE TABLE return_slots").Error; err != nil {
		t.Fatalf("Failed to truncate return_slots: %v", err)
	}
}

// CountReturnSlots returns the number of stored slots
func (m *TestDBManager) CountReturnSlots(t *testing.T) int64 {
	t.Helper()

	var n int64
	if err := m.Manager.DB().Model(&model.ReturnSlot{}).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count return_slots: %v", err)
	}
	return n
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
