// Package tui provides the interactive Bubble Tea session for tally.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/allowance"
	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

const (
	minTerminalWidth = 60
	maxContentWidth  = 120
	entriesHeight    = 8
)

// currencyCycle is the order the unit key steps through.
var currencyCycle = []string{string(allowance.Native), string(allowance.USD), string(allowance.EUR)}

// Options configures a session.
type Options struct {
	Mode   string
	Policy allowance.Policy
}

// App is the root Bubble Tea model. It owns no data of its own: every view
// is computed from the ledger on render.
type App struct {
	ledger *ledger.Ledger
	policy allowance.Policy
	mode   string

	keys    keyMap
	help    help.Model
	entries table.Model

	// Entry form (huh). The draft is a pointer so the form's bindings
	// survive App being copied by value.
	form  *huh.Form
	draft *entryDraft

	notice  string
	lastErr error

	width  int
	height int
}

// NewApp creates a session over l.
func NewApp(l *ledger.Ledger, opts Options) App {
	t := theme.Active

	tbl := table.New(
		table.WithColumns(entryColumns()),
		table.WithHeight(entriesHeight),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	styles.Cell = styles.Cell.Foreground(t.TextPrimary)
	styles.Selected = styles.Selected.
		Foreground(t.AccentBright).
		Bold(false)
	tbl.SetStyles(styles)

	a := App{
		ledger:  l,
		policy:  opts.Policy,
		mode:    opts.Mode,
		keys:    newKeyMap(opts.Policy.Currency),
		help:    help.New(),
		entries: tbl,
	}
	a.refreshEntries()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle("tally")
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.KeyMsg:
		// Global: quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// The entry form intercepts all keys while open
		if a.form != nil {
			if key.Matches(msg, a.keys.Cancel) {
				a.form = nil
				a.notice = "Entry discarded"
				return a, nil
			}
			return a.updateForm(msg)
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		case key.Matches(msg, a.keys.Add):
			return a.openForm()
		case key.Matches(msg, a.keys.Unit):
			a.policy = a.policy.WithUnit(nextUnit(a.policy.Unit))
			a.notice = "Showing " + a.policy.Unit
			return a, nil
		}

		var cmd tea.Cmd
		a.entries, cmd = a.entries.Update(msg)
		return a, cmd
	}

	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) openForm() (tea.Model, tea.Cmd) {
	a.draft = &entryDraft{}
	a.form = newEntryForm(a.draft, a.ledger.Now().Location())
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth())
	}
	a.notice = ""
	a.lastErr = nil
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		e, err := a.commit(*a.draft)
		if err != nil {
			a.lastErr = err
		} else {
			a.notice = fmt.Sprintf("Added %s on %s", cli.FormatAmount(e.Amount()), cli.FormatDate(e.OccurredOn()))
		}
		a.form = nil
		return a, nil
	case huh.StateAborted:
		a.form = nil
		return a, nil
	}

	return a, cmd
}

// commit turns a submitted draft into an entry and appends it.
func (a *App) commit(d entryDraft) (model.Entry, error) {
	amount, err := model.ParseAmount(d.Amount)
	if err != nil {
		return model.Entry{}, err
	}
	e, err := model.NewEntry(amount, strings.TrimSpace(d.Note), strings.TrimSpace(d.Date), a.ledger.Clock())
	if err != nil {
		return model.Entry{}, err
	}
	a.ledger.Append(e)
	a.refreshEntries()
	return e, nil
}

func (a *App) refreshEntries() {
	entries := a.ledger.Entries()
	rows := make([]table.Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		rows = append(rows, table.Row{
			cli.FormatDate(e.OccurredOn()),
			cli.FormatAmount(e.Amount()),
			e.Note(),
		})
	}
	a.entries.SetRows(rows)
}

func entryColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Amount", Width: 10},
		{Title: "Note", Width: 24},
	}
}

func nextUnit(current string) string {
	u, err := allowance.ParseUnit(current)
	if err != nil {
		return currencyCycle[0]
	}
	for i, name := range currencyCycle {
		if name == string(u) {
			return currencyCycle[(i+1)%len(currencyCycle)]
		}
	}
	return currencyCycle[0]
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) formWidth() int {
	w := a.contentWidth() - 8
	if w < 30 {
		w = 30
	}
	return w
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  tally needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}

	if a.form != nil {
		return a.viewForm()
	}

	return a.viewMain()
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	body := titleStyle.Render("◈ New entry") + "\n\n" + a.form.View()
	card := cardStyle.Render(body)

	if a.height <= 0 {
		return card
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	limit := a.ledger.Limit()
	today := a.ledger.TodayTotal()
	week := a.ledger.WeekTotal()
	report, reportErr := a.policy.Report(limit, today)

	unit := a.unitLabel()
	headerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(headerStyle.Render(" ◈ tally"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf(" · %s · %s", a.mode, cli.FormatDate(a.ledger.Now()))))
	b.WriteString("\n")

	// Metric cards
	remaining := components.Metric{Label: "Remaining"}
	if reportErr != nil {
		remaining.Value = "n/a"
		remaining.Color = t.Red
	} else {
		remaining.Value = reportValue(report)
		remaining.Hint = report.Status.String()
		remaining.Color = t.ForStatus(report.Status)
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Today", Value: cli.FormatAmount(today), Hint: "of " + cli.FormatAmount(limit) + " " + unit},
		{Label: "Week", Value: cli.FormatAmount(week), Hint: fmt.Sprintf("last %d days", ledger.WeekDays)},
		remaining,
	}, cw))
	b.WriteString("\n")

	// Report line + usage
	if reportErr != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(" " + reportErr.Error()))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(t.ForStatus(report.Status)).Bold(true).Render(" " + report.Message()))
	}
	b.WriteString("\n")
	barW := cw - 16
	if barW < 10 {
		barW = 10
	}
	b.WriteString(" " + components.UsageBar("Today", cli.UsedFraction(today, limit), 6, barW))
	b.WriteString("\n")

	// Week bars + entries table
	widths := components.LayoutRow(cw, 2)
	days := a.ledger.Daily(ledger.WeekDays)
	bars := make([]components.Bar, len(days))
	for i, d := range days {
		bars[i] = components.Bar{
			Label: fmt.Sprintf("%s %s", cli.FormatDayOfWeek(int(d.Date.Weekday())), d.Date.Format("02.01")),
			Value: cli.FormatAmount(d.Total),
			Used:  cli.UsedFraction(d.Total, limit),
		}
	}
	weekCard := components.ContentCard("Last 7 days", components.DayBars(bars, components.CardInnerWidth(widths[0])), widths[0])

	entriesBody := a.entries.View()
	if a.ledger.Len() == 0 {
		entriesBody = mutedStyle.Render("No entries yet. Press a to add one.")
	}
	entriesCard := components.ContentCard(fmt.Sprintf("Entries (%d)", a.ledger.Len()), entriesBody, widths[1])
	b.WriteString(components.CardRow([]string{weekCard, entriesCard}))
	b.WriteString("\n")

	// Help + status
	if a.help.ShowAll {
		b.WriteString(a.help.View(a.keys))
		b.WriteString("\n")
	}
	b.WriteString(components.RenderStatusBar(cw, a.help.ShortHelpView(a.keys.ShortHelp()), a.statusNote()))

	return b.String()
}

func (a App) statusNote() string {
	switch {
	case a.lastErr != nil:
		return lipgloss.NewStyle().Foreground(theme.Active.Red).Render(a.lastErr.Error())
	case a.notice != "":
		return a.notice
	case a.policy.Currency:
		return "unit: " + a.policy.Unit
	default:
		return ""
	}
}

// unitLabel names the unit the limit and totals are counted in.
func (a App) unitLabel() string {
	if !a.policy.Currency {
		return allowance.QuantityLabel
	}
	return a.policy.Rates.Label(allowance.Native)
}

func reportValue(r allowance.Report) string {
	if !r.HasValue {
		if r.Status == allowance.StatusNoFunds {
			return "0 " + r.Unit
		}
		return "limit reached"
	}
	v := cli.FormatAmount(r.Value)
	if r.Status == allowance.StatusDebt {
		v = "-" + v
	}
	return v + " " + r.Unit
}
