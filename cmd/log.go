package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/store"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show and manage saved runs",
	RunE:  runLogList,
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runLogList,
}

var logRmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove"},
	Short:   "Remove a saved run (ID prefix accepted)",
	Args:    cobra.ExactArgs(1),
	RunE:    runLogRm,
}

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved run",
	Args:  cobra.NoArgs,
	RunE:  runLogClear,
}

func init() {
	logCmd.AddCommand(logListCmd, logRmCmd, logClearCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogList(_ *cobra.Command, _ []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if len(st.Log) == 0 {
		fmt.Println("\n  No saved runs yet. Use `snowball plan --pay N --save`.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(logTable(st.Log)))
	return nil
}

func logTable(entries []model.LogEntry) cli.Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		id := e.ID
		if len(id) > 8 {
			id = id[:8]
		}
		target := e.Target
		if target == "" {
			target = "-"
		}
		rows = append(rows, []string{
			id,
			cli.FormatDate(e.RunDate),
			cli.FormatMoney(e.Pay),
			cli.FormatMoney(e.Bills),
			cli.FormatMoney(e.Groceries),
			cli.FormatMoney(e.Extra),
			target,
			cli.FormatMoney(e.TargetPayment),
		})
	}
	return cli.Table{
		Title:   "Run log",
		Headers: []string{"ID", "Date", "Pay", "Bills", "Groceries", "Extra", "Target", "Target pay"},
		Rows:    rows,
	}
}

// resolveLogID expands a unique ID prefix to the full entry ID.
func resolveLogID(entries []model.LogEntry, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("log ID is required")
	}
	var match string
	for _, e := range entries {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("log ID prefix %q is ambiguous", prefix)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("log entry %s: %w", prefix, store.ErrNotFound)
	}
	return match, nil
}

func runLogRm(_ *cobra.Command, args []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id, err := resolveLogID(st.Log, strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}
	if err := db.DeleteLog(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no saved run %s", args[0])
		}
		return err
	}
	infof("  Removed run %s.\n", id)
	return nil
}

func runLogClear(_ *cobra.Command, _ []string) error {
	db, _, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.ClearLog(); err != nil {
		return err
	}
	infof("  Log cleared.\n")
	return nil
}
