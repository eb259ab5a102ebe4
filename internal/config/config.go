// Package config loads itinera's TOML configuration and applies ITINERA_*
// environment overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alexanderramin/itinera/internal/budget"
	"github.com/alexanderramin/itinera/internal/domain"
)

type Config struct {
	General GeneralConfig `toml:"general"`
	Budget  BudgetConfig  `toml:"budget"`
}

type GeneralConfig struct {
	DBPath       string `toml:"db_path,omitempty"`
	TemplatesDir string `toml:"templates_dir,omitempty"`
	CatalogPath  string `toml:"catalog_path,omitempty"`
	LogLevel     string `toml:"log_level"`
}

// BudgetConfig seeds budget settings before any are stored and extends the
// built-in exchange rate table.
type BudgetConfig struct {
	Limit        int                `toml:"limit"`
	Currency     string             `toml:"currency"`
	BaseCurrency string             `toml:"base_currency"`
	Rates        map[string]float64 `toml:"rates,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "warn",
		},
		Budget: BudgetConfig{
			Currency:     domain.DefaultBaseCurrency,
			BaseCurrency: domain.DefaultBaseCurrency,
		},
	}
}

// ConfigDir returns the XDG config directory for itinera.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "itinera")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "itinera")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir is where the database and user templates live by default.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".itinera")
}

// Load reads ConfigPath, falling back to defaults when the file is missing,
// then applies environment overrides.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ITINERA_DB"); v != "" {
		c.General.DBPath = v
	}
	if v := os.Getenv("ITINERA_TEMPLATES"); v != "" {
		c.General.TemplatesDir = v
	}
	if v := os.Getenv("ITINERA_CATALOG"); v != "" {
		c.General.CatalogPath = v
	}
	if v := os.Getenv("ITINERA_LOG_LEVEL"); v != "" {
		c.General.LogLevel = v
	}
}

func (c *Config) applyDefaults() {
	if c.General.DBPath == "" {
		c.General.DBPath = filepath.Join(DataDir(), "itinera.db")
	}
	if c.General.TemplatesDir == "" {
		if stat, err := os.Stat("./templates"); err == nil && stat.IsDir() {
			c.General.TemplatesDir = "./templates"
		} else {
			c.General.TemplatesDir = filepath.Join(DataDir(), "templates")
		}
	}
	c.Budget.Currency = strings.ToUpper(strings.TrimSpace(c.Budget.Currency))
	if c.Budget.Currency == "" {
		c.Budget.Currency = domain.DefaultBaseCurrency
	}
	if c.Budget.BaseCurrency == "" {
		c.Budget.BaseCurrency = domain.DefaultBaseCurrency
	}
	if c.Budget.Limit < 0 {
		c.Budget.Limit = 0
	}
}

// RateTable merges configured rates over the built-in table. Non-positive
// rates are ignored.
func (b BudgetConfig) RateTable() budget.Rates {
	rates := make(budget.Rates, len(budget.DefaultRates)+len(b.Rates))
	for code, rate := range budget.DefaultRates {
		rates[code] = rate
	}
	for code, rate := range b.Rates {
		if rate > 0 {
			rates[strings.ToUpper(code)] = rate
		}
	}
	return rates
}

// InitialSettings are the budget settings used before the user stores any.
// An unknown currency falls back to the base currency.
func (b BudgetConfig) InitialSettings() domain.BudgetSettings {
	s := domain.DefaultBudgetSettings()
	s.Limit = b.Limit
	s, _ = b.RateTable().WithCurrency(s, b.Currency)
	return s
}

// Save writes cfg to path with owner-only permissions.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists reports whether a config file is present at ConfigPath.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
