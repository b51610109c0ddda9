package migration

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// step moves the schema to version. Steps are applied in order, each in its
// own transaction together with its version row.
type step struct {
	version string
	details string
	apply   func(tx *gorm.DB) error
}

var steps = []step{
	{
		version: "1.0.0",
		details: "Return slot table",
		apply: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&model.ReturnSlot{})
		},
	},
	{
		version: "1.1.0",
		details: "Index return slots by posting time",
		apply: func(tx *gorm.DB) error {
			return tx.Exec("CREATE INDEX IF NOT EXISTS idx_return_slots_posted_at ON return_slots (posted_at)").Error
		},
	},
}

// CurrentSchemaVersion is the version reached once every step has run
var CurrentSchemaVersion = steps[len(steps)-1].version

// ErrUnknownSchemaVersion is returned when the database is ahead of this binary
var ErrUnknownSchemaVersion = errors.New("unknown schema version")

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll applies the steps newer than the recorded version
func (m *MigrationManager) MigrateAll() error {
	ctx := m.db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	pending, err := pendingSteps(currentVersion)
	if err != nil {
		m.logger.Error("Database schema is newer than this build", map[string]any{
			"version": currentVersion,
			"target":  CurrentSchemaVersion,
		})
		return err
	}
	if len(pending) == 0 {
		m.logger.Info("Return slot schema up to date", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	m.logger.Info("Migrating return slot schema", map[string]any{
		"from":  currentVersion,
		"to":    CurrentSchemaVersion,
		"steps": len(pending),
	})

	for _, s := range pending {
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.apply(tx); err != nil {
				return err
			}
			return tx.Create(&model.MigrationVersion{
				Version:   s.version,
				AppliedAt: m.timeProvider.Now(),
				Details:   s.details,
			}).Error
		})
		if err != nil {
			m.logger.Error("Migration step failed", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return fmt.Errorf("migration %s: %w", s.version, err)
		}
		m.logger.Debug("Migration step applied", map[string]any{
			"version": s.version,
			"details": s.details,
		})
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion returns the latest applied version, or "" on a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("id desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

func pendingSteps(current string) ([]step, error) {
	if current == "" {
		return steps, nil
	}
	for i, s := range steps {
		if s.version == current {
			return steps[i+1:], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSchemaVersion, current)
}
