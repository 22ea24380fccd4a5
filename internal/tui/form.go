package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/tally/internal/allowance"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// entryDraft holds the raw strings typed into the entry form.
type entryDraft struct {
	Amount string
	Note   string
	Date   string
}

func newEntryForm(d *entryDraft, loc *time.Location) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("e.g. 350 or -120.50").
				Value(&d.Amount).
				Validate(func(s string) error {
					_, err := model.ParseAmount(s)
					return err
				}),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&d.Note),
			huh.NewInput().
				Title("Date").
				Placeholder(model.DateFormatHint+", blank for today").
				Value(&d.Date).
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					_, err := model.ParseDate(s, loc)
					return err
				}),
		),
	).WithShowHelp(true)
}

// SetupValues holds the answers of the setup wizard as the strings the
// form edits.
type SetupValues struct {
	Mode          string
	CaloriesLimit string
	CashLimit     string
	Currency      string
	NativeLabel   string
	Theme         string
}

// SetupValuesFrom seeds the wizard with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Mode:          cfg.General.Mode,
		CaloriesLimit: strconv.FormatFloat(cfg.Calories.DailyLimit, 'f', -1, 64),
		CashLimit:     strconv.FormatFloat(cfg.Cash.DailyLimit, 'f', -1, 64),
		Currency:      cfg.Cash.Currency,
		NativeLabel:   cfg.Cash.NativeLabel,
		Theme:         cfg.Appearance.Theme,
	}
}

// Apply writes the answers into cfg and validates the result.
func (v SetupValues) Apply(cfg *config.Config) error {
	calories, err := parseLimit("calorie limit", v.CaloriesLimit)
	if err != nil {
		return err
	}
	cash, err := parseLimit("cash limit", v.CashLimit)
	if err != nil {
		return err
	}

	cfg.General.Mode = v.Mode
	cfg.Calories.DailyLimit = calories
	cfg.Cash.DailyLimit = cash
	cfg.Cash.Currency = v.Currency
	if label := strings.TrimSpace(v.NativeLabel); label != "" {
		cfg.Cash.NativeLabel = label
	}
	cfg.Appearance.Theme = v.Theme

	return cfg.Validate()
}

func parseLimit(name, s string) (float64, error) {
	d, err := model.ParseAmount(s)
	if err != nil || !d.IsPositive() {
		return 0, fmt.Errorf("%s %q: must be a positive number", name, s)
	}
	f, _ := d.Float64()
	return f, nil
}

// NewSetupForm builds the first-run wizard over v.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you track?").
				Options(
					huh.NewOption("Calories", config.ModeCalories),
					huh.NewOption("Cash", config.ModeCash),
				).
				Value(&v.Mode),
			huh.NewInput().
				Title("Daily calorie limit").
				Value(&v.CaloriesLimit).
				Validate(func(s string) error {
					_, err := parseLimit("calorie limit", s)
					return err
				}),
			huh.NewInput().
				Title("Daily cash limit").
				Description("In your native currency").
				Value(&v.CashLimit).
				Validate(func(s string) error {
					_, err := parseLimit("cash limit", s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Report remaining cash in").
				Options(
					huh.NewOption("Native currency", string(allowance.Native)),
					huh.NewOption("US dollars", string(allowance.USD)),
					huh.NewOption("Euro", string(allowance.EUR)),
				).
				Value(&v.Currency),
			huh.NewInput().
				Title("Native currency label").
				Placeholder(allowance.DefaultNativeLabel).
				Value(&v.NativeLabel),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
	)
}
