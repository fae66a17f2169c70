package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiipulse/internal/config"
	"fiipulse/internal/infrastructure"
)

func TestNewWithConfigWiresEverything(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	cfg := config.Default()
	cfg.Logging.Output = "stdout"
	cfg.Ledger.Path = t.TempDir() + "/ledger.csv"
	require.NoError(t, cfg.Validate())

	app, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.Client)
	assert.NotNil(t, app.Scheduler)
	assert.NotNil(t, app.Ledger)
	assert.Len(t, app.Connectors, 3)
}

func TestNewWithConfigRejectsNoSources(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	cfg := config.Default()
	cfg.Logging.Output = "stdout"
	cfg.Sources.Brapi.Enabled = false
	cfg.Sources.StatusInvest.Enabled = false
	cfg.Sources.FundsExplorer.Enabled = false

	_, err := NewWithConfig(cfg)
	assert.Error(t, err)
}
