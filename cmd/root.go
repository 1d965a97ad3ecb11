// Package cmd implements the snowball CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/snowball/internal/config"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/store"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagDB      string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "snowball",
	Short: "Paycheck-based debt snowball planner",
	Long: "Plan each paycheck: protect bills, groceries and a buffer, then snowball\n" +
		"what's left into your smallest debt first.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite data file (default: config or XDG data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func setupLogging(_ *cobra.Command, _ []string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	if flagVerbose {
		log.SetLevel(log.DebugLevel)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		// A broken config file should not block planning.
		log.WithError(err).Warn("using default config")
	}
	lvl, err := log.ParseLevel(config.LogLevel(cfg))
	if err != nil {
		lvl = log.WarnLevel
	}
	log.SetLevel(lvl)
	return nil
}

// dataPath resolves the database path: flag, then env/config, then default.
func dataPath() string {
	if flagDB != "" {
		return flagDB
	}
	cfg, _ := config.Load()
	if p := config.DataFile(cfg); p != "" {
		return p
	}
	return store.DefaultPath()
}

// openState opens the store and loads the saved state, seeding the sample
// data on first use. Callers must close the returned store.
func openState() (*store.Store, model.State, error) {
	db, err := store.Open(dataPath())
	if err != nil {
		return nil, model.State{}, err
	}

	st, ok, err := db.Load()
	if err != nil {
		_ = db.Close()
		return nil, model.State{}, err
	}
	if !ok {
		st = model.DefaultState()
		if err := db.Save(st); err != nil {
			_ = db.Close()
			return nil, model.State{}, fmt.Errorf("seeding defaults: %w", err)
		}
		log.WithField("path", db.Path()).Info("seeded sample data")
	}
	return db, st, nil
}

// cycleDays returns the flag value when set, otherwise the configured cycle.
func cycleDays(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	cfg, _ := config.Load()
	return cfg.General.CycleDays
}

// infof prints to stdout unless --quiet is set.
func infof(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}

// parseIndex converts a 1-based list position into a slice index.
func parseIndex(arg string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("index %d out of range (1-%d)", i, n)
	}
	return i - 1, nil
}
