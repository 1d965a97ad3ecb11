// Package tui provides the interactive Bubble Tea dashboard for snowball.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/snowball/internal/config"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/planner"
	"github.com/theirongolddev/snowball/internal/tui/components"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

// Store is the persistence the dashboard writes through.
type Store interface {
	Save(st model.State) error
	AppendLog(e model.LogEntry) error
	DeleteLog(id string) error
}

const (
	tabPlan = iota
	tabDebts
	tabBills
	tabLog
	tabSettings
)

type formKind int

const (
	formNone formKind = iota
	formSetup
	formSettings
	formPay
	formDebtAdd
	formDebtEdit
	formBillAdd
)

// App is the root Bubble Tea model.
type App struct {
	store     Store
	state     model.State
	cycleDays int
	now       func() time.Time

	// Last paycheck entered; the plan is recomputed from it after edits.
	hasPay   bool
	pay      float64
	runDate  time.Time
	payCycle int
	result   *model.PlanResult
	runSaved bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	debtCursor int
	billCursor int
	logCursor  int

	// Active huh form. Bound values live on the heap because App is
	// copied on every Update.
	form      *huh.Form
	formKind  formKind
	setupVals *SetupValues
	payVals   *PayValues
	debtVals  *DebtValues
	billVals  *BillValues

	status    string
	statusErr bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	maxFormWidth     = 64
	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Warn("config unreadable, using defaults")
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates the dashboard over st. The first-run setup form opens
// when no config file exists yet.
func NewApp(store Store, st model.State, cycleDays int) App {
	return newApp(store, st, cycleDays, !config.Exists())
}

func newApp(store Store, st model.State, cycleDays int, needSetup bool) App {
	if cycleDays <= 0 {
		cycleDays = planner.DefaultCycleDays
	}
	a := App{
		store:     store,
		state:     st,
		cycleDays: cycleDays,
		now:       time.Now,
	}
	if needSetup {
		a.openSetupForm(formSetup)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Forms intercept all keys
		if a.form != nil {
			if key == "esc" {
				a.closeForm()
				a.setStatus("Cancelled", false)
				return a, nil
			}
			return a.updateForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		a.status = ""
		return a.handleKey(key)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return a, tea.Quit
	case "p":
		cmd := a.openPayForm()
		return a, cmd
	case "s":
		a.saveRun()
		return a, nil
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "1", "2", "3", "4", "5":
		a.activeTab = int(key[0] - '1')
		return a, nil
	}

	if len(key) == 1 {
		if tab := components.TabIdxByKey(rune(key[0])); tab >= 0 {
			a.activeTab = tab
			return a, nil
		}
	}

	switch a.activeTab {
	case tabDebts:
		return a.updateDebtsKey(key)
	case tabBills:
		return a.updateBillsKey(key)
	case tabLog:
		return a.updateLogKey(key)
	case tabSettings:
		if key == "enter" || key == "e" {
			cmd := a.openSetupForm(formSettings)
			return a, cmd
		}
	}
	return a, nil
}

// moveCursor applies j/k style navigation to a cursor over n rows.
func moveCursor(key string, cursor, n int) int {
	switch key {
	case "j", "down":
		cursor++
	case "k", "up":
		cursor--
	case "g", "home":
		cursor = 0
	case "G", "end":
		cursor = n - 1
	}
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// ─── Forms ──────────────────────────────────────────────────────

func (a App) formWidth() int {
	w := a.width - 8
	if w > maxFormWidth {
		w = maxFormWidth
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (a *App) showForm(kind formKind, f *huh.Form) tea.Cmd {
	a.formKind = kind
	a.form = f
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth())
	}
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
}

func (a *App) openSetupForm(kind formKind) tea.Cmd {
	cfg := loadConfigOrDefault()
	cfg.General.CycleDays = a.cycleDays
	vals := SetupValuesFrom(cfg, a.state.Settings)
	a.setupVals = &vals
	return a.showForm(kind, NewSetupForm(a.setupVals))
}

func (a *App) openPayForm() tea.Cmd {
	vals := PayValues{CycleDays: fmt.Sprint(a.cycleDays)}
	if a.hasPay {
		vals.Pay = moneyString(a.pay)
		vals.CycleDays = fmt.Sprint(a.payCycle)
	}
	a.payVals = &vals
	return a.showForm(formPay, newPayForm(a.payVals))
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.submitForm()
		a.closeForm()
		return a, nil
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

// submitForm applies the values of the completed form.
func (a *App) submitForm() {
	switch a.formKind {
	case formSetup, formSettings:
		cfg := loadConfigOrDefault()
		if err := a.setupVals.Apply(&cfg, &a.state.Settings); err != nil {
			a.setStatus(err.Error(), true)
			return
		}
		theme.SetActive(cfg.Appearance.Theme)
		a.cycleDays = cfg.General.CycleDays
		if err := config.Save(cfg); err != nil {
			a.setStatus("Could not save config: "+err.Error(), true)
			return
		}
		a.persist("Settings saved")

	case formPay:
		pay, runDate, cycle, err := a.payVals.Parse(a.now())
		if err != nil {
			a.setStatus(err.Error(), true)
			return
		}
		a.hasPay, a.pay, a.runDate, a.payCycle = true, pay, runDate, cycle
		a.recompute()
		a.activeTab = tabPlan

	case formDebtAdd, formDebtEdit:
		d, err := a.debtVals.Debt()
		if err != nil {
			a.setStatus(err.Error(), true)
			return
		}
		if a.formKind == formDebtEdit && a.debtCursor < len(a.state.Debts) {
			a.state.Debts[a.debtCursor] = d
		} else {
			a.state.Debts = append(a.state.Debts, d)
			a.debtCursor = len(a.state.Debts) - 1
		}
		a.persist("Saved " + d.Name)

	case formBillAdd:
		b, err := a.billVals.Bill()
		if err != nil {
			a.setStatus(err.Error(), true)
			return
		}
		a.state.Bills = append(a.state.Bills, b)
		a.billCursor = len(a.state.Bills) - 1
		a.persist("Added " + b.Name)
	}
}

// ─── State changes ──────────────────────────────────────────────

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// persist saves the state and refreshes the plan.
func (a *App) persist(okMsg string) {
	if err := a.store.Save(a.state); err != nil {
		log.WithError(err).Error("saving state")
		a.setStatus("Save failed: "+err.Error(), true)
		return
	}
	a.recompute()
	a.setStatus(okMsg, false)
}

func (a *App) recompute() {
	if !a.hasPay {
		return
	}
	res := planner.Compute(planner.Input{
		Settings:  a.state.Settings,
		Debts:     a.state.Debts,
		Bills:     a.state.Bills,
		Pay:       a.pay,
		RunDate:   a.runDate,
		CycleDays: a.payCycle,
	})
	a.result = &res
	a.runSaved = false
}

func (a *App) saveRun() {
	if a.result == nil {
		a.setStatus("Enter a paycheck first [p]", true)
		return
	}
	if a.runSaved {
		a.setStatus("This run is already in the log", false)
		return
	}

	entry := model.NewLogEntry(*a.result, a.now())
	if err := a.store.AppendLog(entry); err != nil {
		log.WithError(err).Error("saving run")
		a.setStatus("Save failed: "+err.Error(), true)
		return
	}
	a.state.Log = append(a.state.Log, entry)
	a.logCursor = len(a.state.Log) - 1
	a.runSaved = true
	a.setStatus("Run saved to log", false)
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  snowball needs at least %d columns.\n",
		a.width, minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	hint := lipgloss.NewStyle().Foreground(t.TextDim).
		Render("enter next · shift+tab back · esc cancel")

	card := cardStyle.Render(a.form.View() + "\n" + hint)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"n d b l x", "Jump to tab"},
			{"1-5", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k g G", "Move in lists"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"p", "Enter paycheck and plan"},
			{"s", "Save current run to log"},
			{"a", "Add debt / bill"},
			{"e Enter", "Edit debt / settings"},
			{"D", "Delete selected row"},
			{"Esc", "Cancel form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	info := fmt.Sprintf("%d debts · %d bills · %d runs · every %dd",
		len(a.state.Debts), len(a.state.Bills), len(a.state.Log), a.cycleDays)
	statusBar := components.RenderStatusBar(w, info, a.status, a.statusErr)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabPlan:
		content = a.renderPlanTab(cw)
	case tabDebts:
		content = a.renderDebtsTab(cw)
	case tabBills:
		content = a.renderBillsTab(cw)
	case tabLog:
		content = a.renderLogTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// tableRow renders one list row. Column 0 and any column listed in left are
// left-aligned; the rest are right-aligned. The selected row is highlighted
// across innerW.
func tableRow(cells []string, widths []int, left map[int]bool, selected bool, innerW int) string {
	t := theme.Active

	bg := t.Surface
	fg := t.TextPrimary
	marker := "  "
	if selected {
		bg = t.SurfaceBright
		marker = "▸ "
	}
	style := lipgloss.NewStyle().Foreground(fg).Background(bg).Bold(selected)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(bg)

	var b strings.Builder
	b.WriteString(markerStyle.Render(marker))
	for i, cell := range cells {
		w := widths[i]
		cell = truncStr(cell, w)
		if i == 0 || left[i] {
			b.WriteString(style.Render(fmt.Sprintf("%-*s", w, cell)))
		} else {
			b.WriteString(style.Render(fmt.Sprintf("%*s", w, cell)))
		}
		if i < len(cells)-1 {
			b.WriteString(style.Render("  "))
		}
	}

	row := b.String()
	if pad := innerW - lipgloss.Width(row); pad > 0 && selected {
		row += style.Render(strings.Repeat(" ", pad))
	}
	return row
}

// tableHeader renders column titles aligned like tableRow.
func tableHeader(titles []string, widths []int, left map[int]bool) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(style.Render("  "))
	for i, title := range titles {
		w := widths[i]
		if i == 0 || left[i] {
			b.WriteString(style.Render(fmt.Sprintf("%-*s", w, title)))
		} else {
			b.WriteString(style.Render(fmt.Sprintf("%*s", w, title)))
		}
		if i < len(titles)-1 {
			b.WriteString(style.Render("  "))
		}
	}
	return b.String()
}

// columnWidths sizes each column to its widest cell.
func columnWidths(titles []string, rows [][]string) []int {
	widths := make([]int, len(titles))
	for i, title := range titles {
		widths[i] = len(title)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	return widths
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
