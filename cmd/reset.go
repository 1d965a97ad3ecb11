package cmd

import (
	"github.com/theirongolddev/snowball/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagResetDebts bool
	flagResetBills bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the sample debts and/or bills",
	Long:  "Restore the sample debt and bill lists. With no flags both are reset.\nSettings and the run log are kept.",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetDebts, "debts", false, "Reset debts only")
	resetCmd.Flags().BoolVar(&flagResetBills, "bills", false, "Reset bills only")
	rootCmd.AddCommand(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	both := !flagResetDebts && !flagResetBills
	if flagResetDebts || both {
		st.Debts = model.DefaultDebts()
		infof("  Debts reset to sample list.\n")
	}
	if flagResetBills || both {
		st.Bills = model.DefaultBills()
		infof("  Bills reset to sample list.\n")
	}
	return db.Save(st)
}
