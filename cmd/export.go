package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/snowball/internal/snapshot"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write settings, debts, bills and log as JSON (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all data with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	db, st, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var w io.Writer = os.Stdout
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := snapshot.Export(w, st); err != nil {
		return err
	}
	if w != os.Stdout {
		infof("  Exported %d debts, %d bills, %d runs to %s\n", len(st.Debts), len(st.Bills), len(st.Log), args[0])
	}
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Decode before touching the store so a bad file leaves data intact.
	st, err := snapshot.Import(f)
	if err != nil {
		return err
	}

	db, _, err := openState()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveAll(st); err != nil {
		return fmt.Errorf("saving import: %w", err)
	}
	log.WithField("file", args[0]).Debug("imported snapshot")
	infof("  Imported %d debts, %d bills, %d runs.\n", len(st.Debts), len(st.Bills), len(st.Log))
	return nil
}
