// Package config loads and saves tally's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tracking modes.
const (
	ModeCalories = "calories"
	ModeCash     = "cash"
)

// Config holds all tally configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Calories   CaloriesConfig   `toml:"calories"`
	Cash       CashConfig       `toml:"cash"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Mode string `toml:"mode"`
}

// CaloriesConfig holds the calorie budget.
type CaloriesConfig struct {
	DailyLimit float64 `toml:"daily_limit"`
}

// CashConfig holds the spending budget and currency settings.
type CashConfig struct {
	DailyLimit  float64            `toml:"daily_limit"`
	Currency    string             `toml:"currency"`
	NativeLabel string             `toml:"native_label,omitempty"`
	Rates       map[string]float64 `toml:"rates,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds defaults for `tally daemon`.
type DaemonConfig struct {
	Addr         string `toml:"addr,omitempty"`
	EventsBuffer int    `toml:"events_buffer,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Mode: ModeCalories,
		},
		Calories: CaloriesConfig{
			DailyLimit: 2000,
		},
		Cash: CashConfig{
			DailyLimit:  1000,
			Currency:    "native",
			NativeLabel: "RUB",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8788",
			EventsBuffer: 200,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tally")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetMode returns the tracking mode from TALLY_MODE or config, in that order.
func GetMode(cfg Config) string {
	if mode := os.Getenv("TALLY_MODE"); mode != "" {
		return strings.ToLower(mode)
	}
	return cfg.General.Mode
}

// DailyLimit returns the configured limit for a mode.
func (c Config) DailyLimit(mode string) (float64, error) {
	switch mode {
	case ModeCalories:
		return c.Calories.DailyLimit, nil
	case ModeCash:
		return c.Cash.DailyLimit, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: must be %s or %s", mode, ModeCalories, ModeCash)
	}
}

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.General.Mode != ModeCalories && c.General.Mode != ModeCash {
		problems = append(problems, fmt.Sprintf("general.mode %q: must be %s or %s", c.General.Mode, ModeCalories, ModeCash))
	}
	if c.Calories.DailyLimit <= 0 {
		problems = append(problems, fmt.Sprintf("calories.daily_limit %v: must be positive", c.Calories.DailyLimit))
	}
	if c.Cash.DailyLimit <= 0 {
		problems = append(problems, fmt.Sprintf("cash.daily_limit %v: must be positive", c.Cash.DailyLimit))
	}
	if err := validateUnit(c.Cash.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("cash.currency: %v", err))
	}
	for unit, rate := range c.Cash.Rates {
		if err := validateUnit(unit); err != nil {
			problems = append(problems, fmt.Sprintf("cash.rates: %v", err))
			continue
		}
		if rate <= 0 {
			problems = append(problems, fmt.Sprintf("cash.rates.%s %v: must be positive", unit, rate))
		}
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n- " + strings.Join(problems, "\n- "))
	}
	return nil
}
