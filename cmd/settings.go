package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/snowball/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagGroceries string
	flagBuffer    string
	flagLumpRule  int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change groceries, buffer and lump rule",
	Example: "  snowball settings\n" +
		"  snowball settings --groceries 300 --buffer 50",
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagGroceries, "groceries", "", "Groceries protected each pay")
	settingsCmd.Flags().StringVar(&flagBuffer, "buffer", "", "Safety buffer protected each pay")
	settingsCmd.Flags().IntVar(&flagLumpRule, "lump-rule", 0, "Percent of lump sums sent to debt (0-100)")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, _ []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	changed := false
	if cmd.Flags().Changed("groceries") {
		if st.Settings.Groceries, err = cli.ParseMoney(flagGroceries); err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("buffer") {
		if st.Settings.Buffer, err = cli.ParseMoney(flagBuffer); err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("lump-rule") {
		if flagLumpRule < 0 || flagLumpRule > 100 {
			return fmt.Errorf("lump rule %d out of range (0-100)", flagLumpRule)
		}
		st.Settings.LumpRule = flagLumpRule
		changed = true
	}

	if changed {
		if err := db.Save(st); err != nil {
			return err
		}
		infof("  Settings saved.\n")
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Settings",
		Headers: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Groceries", cli.FormatMoney(st.Settings.Groceries)},
			{"Buffer", cli.FormatMoney(st.Settings.Buffer)},
			{"Lump rule", strconv.Itoa(st.Settings.LumpRule) + "%"},
		},
	}))
	return nil
}
