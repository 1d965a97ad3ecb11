package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagBillFreq string
	flagBillDue  int
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "List and edit recurring bills",
	RunE:  runBillsList,
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bills in stored order",
	Args:  cobra.NoArgs,
	RunE:  runBillsList,
}

var billsAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Add a bill",
	Example: "  snowball bills add Rent 1200 --due 1\n" +
		"  snowball bills add \"Car Loan\" 286 --freq biweekly",
	Args: cobra.ExactArgs(2),
	RunE: runBillsAdd,
}

var billsRmCmd = &cobra.Command{
	Use:     "rm INDEX",
	Aliases: []string{"remove"},
	Short:   "Remove a bill",
	Args:    cobra.ExactArgs(1),
	RunE:    runBillsRm,
}

func init() {
	billsAddCmd.Flags().StringVar(&flagBillFreq, "freq", string(model.Monthly), "Frequency: monthly or biweekly")
	billsAddCmd.Flags().IntVar(&flagBillDue, "due", 1, "Day of month the bill is due (monthly only)")

	billsCmd.AddCommand(billsListCmd, billsAddCmd, billsRmCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBillsList(_ *cobra.Command, _ []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	fmt.Println()
	fmt.Print(cli.RenderTable(billsTable(st.Bills)))
	return nil
}

func billsTable(bills []model.Bill) cli.Table {
	rows := make([][]string, 0, len(bills))
	for i, b := range bills {
		due := "every pay"
		if b.Frequency == model.Monthly {
			due = "day " + strconv.Itoa(b.DueDay)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), b.Name, cli.FormatMoney(b.Amount), string(b.Frequency), due,
		})
	}
	return cli.Table{
		Title:   "Bills",
		Headers: []string{"#", "Name", "Amount", "Freq", "Due"},
		Rows:    rows,
	}
}

func runBillsAdd(_ *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("bill name is required")
	}
	amount, err := cli.ParseMoney(args[1])
	if err != nil {
		return err
	}
	freq := model.Frequency(strings.ToLower(strings.TrimSpace(flagBillFreq)))
	if !freq.Valid() {
		return fmt.Errorf("unknown frequency %q (want monthly or biweekly)", flagBillFreq)
	}
	if freq == model.Monthly && (flagBillDue < 1 || flagBillDue > 31) {
		return fmt.Errorf("due day %d out of range (1-31)", flagBillDue)
	}

	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	st.Bills = append(st.Bills, model.Bill{Name: name, Amount: amount, Frequency: freq, DueDay: flagBillDue})
	if err := db.Save(st); err != nil {
		return err
	}
	infof("  Added %s (%s, %s).\n", name, cli.FormatMoney(amount), freq)
	return nil
}

func runBillsRm(_ *cobra.Command, args []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	i, err := parseIndex(args[0], len(st.Bills))
	if err != nil {
		return err
	}
	name := st.Bills[i].Name
	st.Bills = append(st.Bills[:i], st.Bills[i+1:]...)

	if err := db.Save(st); err != nil {
		return err
	}
	infof("  Removed %s.\n", name)
	return nil
}
