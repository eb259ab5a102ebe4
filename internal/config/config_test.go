package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ITINERA_DB", "ITINERA_TEMPLATES", "ITINERA_CATALOG", "ITINERA_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.General.LogLevel)
	assert.Equal(t, "itinera.db", filepath.Base(cfg.General.DBPath))
	assert.NotEmpty(t, cfg.General.TemplatesDir)
	assert.Equal(t, "JPY", cfg.Budget.Currency)
	assert.Equal(t, 0, cfg.Budget.Limit)
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
db_path = "/tmp/trips.db"
log_level = "debug"

[budget]
limit = 150000
currency = "usd"

[budget.rates]
CHF = 0.0059
usd = 0.007
bogus = -1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/trips.db", cfg.General.DBPath)
	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, "USD", cfg.Budget.Currency)

	rates := cfg.Budget.RateTable()
	assert.Equal(t, 0.0059, rates["CHF"])
	assert.Equal(t, 0.007, rates["USD"], "configured rates override built-ins")
	assert.NotContains(t, rates, "BOGUS")
	assert.Equal(t, 1.0, rates["JPY"])

	initial := cfg.Budget.InitialSettings()
	assert.Equal(t, domain.BudgetSettings{Limit: 150000, Currency: "USD", ExchangeRate: 0.007}, initial)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general]\ndb_path = \"/from/file.db\"\n"), 0o600))
	t.Setenv("ITINERA_DB", "/from/env.db")
	t.Setenv("ITINERA_CATALOG", "/data/catalog.yaml")
	t.Setenv("ITINERA_LOG_LEVEL", "error")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.General.DBPath)
	assert.Equal(t, "/data/catalog.yaml", cfg.General.CatalogPath)
	assert.Equal(t, "error", cfg.General.LogLevel)
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\nlog_level = "), 0o600))

	_, err := LoadFrom(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestInitialSettings_UnknownCurrencyFallsBack(t *testing.T) {
	b := BudgetConfig{Limit: 1000, Currency: "XYZ"}
	s := b.InitialSettings()
	assert.Equal(t, domain.DefaultBaseCurrency, s.Currency)
	assert.Equal(t, 1.0, s.ExchangeRate)
	assert.Equal(t, 1000, s.Limit)
}

func TestSaveAndReload(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.False(t, Exists())

	cfg := DefaultConfig()
	cfg.General.DBPath = "/srv/itinera.db"
	cfg.Budget.Limit = 42000
	cfg.Budget.Rates = map[string]float64{"SGD": 0.009}
	require.NoError(t, Save(ConfigPath(), cfg))
	assert.True(t, Exists())
	assert.Equal(t, filepath.Join(dir, "itinera", "config.toml"), ConfigPath())

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/itinera.db", loaded.General.DBPath)
	assert.Equal(t, 42000, loaded.Budget.Limit)
	assert.Equal(t, 0.009, loaded.Budget.RateTable()["SGD"])
}
