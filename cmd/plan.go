package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/planner"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagPay   string
	flagDate  string
	flagCycle int
	flagSave  bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the snowball plan for a paycheck",
	Example: "  snowball plan --pay 2400\n" +
		"  snowball plan --pay 2400 --date 2025-06-02 --save",
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&flagPay, "pay", "", "Paycheck amount (required)")
	planCmd.Flags().StringVar(&flagDate, "date", "", "Run date YYYY-MM-DD (default: today)")
	planCmd.Flags().IntVar(&flagCycle, "cycle", 0, "Pay cycle length in days (default: config)")
	planCmd.Flags().BoolVar(&flagSave, "save", false, "Append this run to the log")
	_ = planCmd.MarkFlagRequired("pay")
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	pay, err := cli.ParseMoney(flagPay)
	if err != nil {
		return err
	}

	runDate := time.Now()
	if flagDate != "" {
		if runDate, err = cli.ParseDate(flagDate); err != nil {
			return err
		}
	}

	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	res := planner.Compute(planner.Input{
		Settings:  st.Settings,
		Debts:     st.Debts,
		Bills:     st.Bills,
		Pay:       pay,
		RunDate:   runDate,
		CycleDays: cycleDays(flagCycle),
	})

	fmt.Println()
	fmt.Print(cli.RenderPlan(res))

	if flagSave {
		entry := model.NewLogEntry(res, time.Now())
		if err := db.AppendLog(entry); err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		log.WithField("id", entry.ID).Debug("run saved")
		infof("\n  Saved to log (%s).\n", entry.ID[:8])
	}
	return nil
}
