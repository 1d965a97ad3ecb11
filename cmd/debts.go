package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagDebtName    string
	flagDebtBalance string
	flagDebtMin     string
)

var debtsCmd = &cobra.Command{
	Use:   "debts",
	Short: "List and edit debts",
	RunE:  runDebtsList,
}

var debtsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List debts in stored order",
	Args:  cobra.NoArgs,
	RunE:  runDebtsList,
}

var debtsAddCmd = &cobra.Command{
	Use:   "add NAME BALANCE MIN",
	Short: "Add a debt",
	Args:  cobra.ExactArgs(3),
	RunE:  runDebtsAdd,
}

var debtsSetCmd = &cobra.Command{
	Use:   "set INDEX",
	Short: "Update a debt's name, balance or minimum",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtsSet,
}

var debtsRmCmd = &cobra.Command{
	Use:     "rm INDEX",
	Aliases: []string{"remove"},
	Short:   "Remove a debt",
	Args:    cobra.ExactArgs(1),
	RunE:    runDebtsRm,
}

func init() {
	debtsSetCmd.Flags().StringVar(&flagDebtName, "name", "", "New name")
	debtsSetCmd.Flags().StringVar(&flagDebtBalance, "balance", "", "New balance")
	debtsSetCmd.Flags().StringVar(&flagDebtMin, "min", "", "New minimum payment")

	debtsCmd.AddCommand(debtsListCmd, debtsAddCmd, debtsSetCmd, debtsRmCmd)
	rootCmd.AddCommand(debtsCmd)
}

func runDebtsList(_ *cobra.Command, _ []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	fmt.Println()
	fmt.Print(cli.RenderTable(debtsTable(st.Debts)))
	return nil
}

func debtsTable(debts []model.Debt) cli.Table {
	rows := make([][]string, 0, len(debts)+2)
	var balance, mins float64
	for i, d := range debts {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1), d.Name, cli.FormatMoney(d.Balance), cli.FormatMoney(d.MinimumPayment),
		})
		balance += d.Balance
		mins += d.MinimumPayment
	}
	if len(debts) > 0 {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"", "TOTAL", cli.FormatMoney(balance), cli.FormatMoney(mins)})
	}
	return cli.Table{
		Title:   "Debts",
		Headers: []string{"#", "Name", "Balance", "Min"},
		Rows:    rows,
	}
}

func runDebtsAdd(_ *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("debt name is required")
	}
	balance, err := cli.ParseMoney(args[1])
	if err != nil {
		return err
	}
	minPay, err := cli.ParseMoney(args[2])
	if err != nil {
		return err
	}

	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	st.Debts = append(st.Debts, model.Debt{Name: name, Balance: balance, MinimumPayment: minPay})
	if err := db.Save(st); err != nil {
		return err
	}
	infof("  Added %s (%s, min %s).\n", name, cli.FormatMoney(balance), cli.FormatMoney(minPay))
	return nil
}

func runDebtsSet(cmd *cobra.Command, args []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	i, err := parseIndex(args[0], len(st.Debts))
	if err != nil {
		return err
	}
	d := &st.Debts[i]

	if cmd.Flags().Changed("name") {
		if strings.TrimSpace(flagDebtName) == "" {
			return fmt.Errorf("debt name is required")
		}
		d.Name = strings.TrimSpace(flagDebtName)
	}
	if cmd.Flags().Changed("balance") {
		if d.Balance, err = cli.ParseMoney(flagDebtBalance); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("min") {
		if d.MinimumPayment, err = cli.ParseMoney(flagDebtMin); err != nil {
			return err
		}
	}

	if err := db.Save(st); err != nil {
		return err
	}
	infof("  Updated %s: balance %s, min %s.\n", d.Name, cli.FormatMoney(d.Balance), cli.FormatMoney(d.MinimumPayment))
	return nil
}

func runDebtsRm(_ *cobra.Command, args []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	i, err := parseIndex(args[0], len(st.Debts))
	if err != nil {
		return err
	}
	name := st.Debts[i].Name
	st.Debts = append(st.Debts[:i], st.Debts[i+1:]...)

	if err := db.Save(st); err != nil {
		return err
	}
	infof("  Removed %s.\n", name)
	return nil
}
