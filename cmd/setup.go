package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/config"
	"github.com/theirongolddev/snowball/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	vals := tui.SetupValuesFrom(cfg, st.Settings)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	if err := vals.Apply(&cfg, &st.Settings); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := db.Save(st); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Groceries %s, buffer %s, paid every %d days.\n",
		cli.FormatMoney(st.Settings.Groceries), cli.FormatMoney(st.Settings.Buffer),
		cfg.General.CycleDays)
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `snowball setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
