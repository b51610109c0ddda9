package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStarter(t *testing.T) {
	t.Run("should write a file LoadConfig reads back as the defaults", func(t *testing.T) {
		// Arrange
		path := filepath.Join(t.TempDir(), "configs", "development.yaml")

		// Act
		err := WriteStarter(path, false)

		// Assert
		require.NoError(t, err)
		cfg, err := LoadConfig(LoadOptions{File: path})
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, MailboxBadger, cfg.Mailbox.Driver)
		assert.Equal(t, "info", cfg.Logger.Level)
	})

	t.Run("should refuse to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wallet.yaml")
		require.NoError(t, WriteStarter(path, false))

		err := WriteStarter(path, false)

		assert.ErrorIs(t, err, ErrConfigExists)
		assert.NoError(t, WriteStarter(path, true))
	})
}
