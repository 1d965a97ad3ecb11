package cmd

import (
	"fmt"

	"github.com/theirongolddev/snowball/internal/config"
	"github.com/theirongolddev/snowball/internal/tui"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// Log lines would tear the alt screen.
	if !flagVerbose {
		log.SetLevel(log.ErrorLevel)
	}

	app := tui.NewApp(db, st, cfg.General.CycleDays)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
