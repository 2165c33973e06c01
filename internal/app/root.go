// Package app contains the Cobra command tree for rhythmtrack.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rhythmtrack/internal/config"
	"github.com/blackwell-systems/rhythmtrack/internal/engine"
	"github.com/blackwell-systems/rhythmtrack/internal/output"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
	"github.com/blackwell-systems/rhythmtrack/internal/store"
	"github.com/blackwell-systems/rhythmtrack/internal/tier"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "rhythmtrack",
	Short: "Track rhythms, chains, and frequency tiers",
	Long: `rhythmtrack turns a stream of timestamped activity into streaks you can
keep. Each rhythm carries several chains at once (daily, weekly, monthly)
and a weekly frequency tier, so losing a strict daily streak degrades to
the next achievable tier instead of resetting to zero.

Run 'rhythmtrack' with no arguments for a summary of every rhythm.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
			output.SetNoColor(true)
		}
	},
	RunE: runSummary,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/rhythmtrack/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// openEngine loads config, opens the database, and wires the engine over it.
// The caller owns closing the returned DB.
func openEngine() (*config.Config, *store.DB, *engine.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if !cfg.Output.Color {
		output.SetNoColor(true)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	eng := engine.New(db, db, engine.NewMemoryCache())
	return cfg, db, eng, nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	_, db, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rhythms, err := db.ListRhythms()
	if err != nil {
		return err
	}
	if len(rhythms) == 0 {
		fmt.Println("No rhythms yet. Create one with: rhythmtrack rhythm add <name>")
		return nil
	}

	today := time.Now()
	table := output.NewTable("RHYTHM", "TIER", "DAILY CHAIN", "THIS WEEK")
	for _, r := range rhythms {
		snap, err := eng.Snapshot(r.ID, today)
		if err != nil {
			return fmt.Errorf("computing %s: %w", r.Name, err)
		}

		daily := "-"
		for _, s := range snap.Stats {
			if s.Type == rhythm.ChainDaily {
				daily = output.ChainCell(s.Current, string(s.Unit))
			}
		}

		table.AddRow(
			r.Name,
			output.TierBadge(snap.Weekly.AchievedTier),
			daily,
			weekCell(snap.Weekly),
		)
	}

	fmt.Println(output.Section("Rhythms"))
	fmt.Println()
	table.Print()
	return nil
}

// weekCell formats "4/7 days" with the best-possible tier when it still
// beats what is achieved.
func weekCell(w tier.WeeklyProgress) string {
	cell := fmt.Sprintf("%d/7 days", w.DaysCompleted)
	if w.BestPossibleTier != w.AchievedTier {
		cell += output.StyleMuted.Render(fmt.Sprintf(" (can reach %s)", w.BestPossibleTier.Label()))
	}
	return cell
}
