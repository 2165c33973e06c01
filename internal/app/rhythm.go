package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rhythmtrack/internal/output"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
)

var (
	rhythmGoal          int
	rhythmGoalUnit      string
	rhythmChains        string
	rhythmTimezone      string
	rhythmWeeklyTarget  int
	rhythmMonthlyTarget int
)

var rhythmCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "Manage tracked rhythms",
}

var rhythmAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a rhythm",
	Long: `Create a rhythm with a per-day goal and one or more chain types.

Chain types: daily, weekly_high (5+ days/week), weekly_low (3+ days/week),
weekly_target (--weekly-target minutes), monthly_target (--monthly-target
minutes). Target chains refuse to be created without their target value.

Examples:
  rhythmtrack rhythm add meditate --goal 10 --chains daily,weekly_low
  rhythmtrack rhythm add running --goal 1 --unit count --chains weekly_high
  rhythmtrack rhythm add writing --chains weekly_target --weekly-target 150`,
	Args: cobra.ExactArgs(1),
	RunE: runRhythmAdd,
}

var rhythmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rhythms",
	Args:  cobra.NoArgs,
	RunE:  runRhythmList,
}

var rhythmRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a rhythm and its entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runRhythmRm,
}

func init() {
	rhythmAddCmd.Flags().IntVar(&rhythmGoal, "goal", 0, "Per-day goal value (default from config)")
	rhythmAddCmd.Flags().StringVar(&rhythmGoalUnit, "unit", "minutes", "Goal unit: minutes, count, or occurrence")
	rhythmAddCmd.Flags().StringVar(&rhythmChains, "chains", "daily", "Comma-separated chain types")
	rhythmAddCmd.Flags().StringVar(&rhythmTimezone, "timezone", "", "IANA timezone for the rhythm's day boundary (default from config)")
	rhythmAddCmd.Flags().IntVar(&rhythmWeeklyTarget, "weekly-target", 0, "Weekly cumulative minutes target (weekly_target chains)")
	rhythmAddCmd.Flags().IntVar(&rhythmMonthlyTarget, "monthly-target", 0, "Monthly cumulative minutes target (monthly_target chains)")

	rhythmListCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")

	rhythmCmd.AddCommand(rhythmAddCmd)
	rhythmCmd.AddCommand(rhythmListCmd)
	rhythmCmd.AddCommand(rhythmRmCmd)
	rootCmd.AddCommand(rhythmCmd)
}

func runRhythmAdd(cmd *cobra.Command, args []string) error {
	cfg, db, _, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	chains, err := rhythm.ParseChainTypes(rhythmChains)
	if err != nil {
		return err
	}

	goal := rhythmGoal
	if goal == 0 {
		switch rhythm.GoalUnit(rhythmGoalUnit) {
		case rhythm.GoalMinutes:
			goal = cfg.DefaultGoalMinutes
		case rhythm.GoalCount:
			goal = 1
		}
	}

	tz := rhythmTimezone
	if tz == "" {
		tz = cfg.RhythmTimezone()
	}

	r, err := db.CreateRhythm(rhythm.Rhythm{
		Name:                 args[0],
		GoalValue:            goal,
		GoalUnit:             rhythm.GoalUnit(rhythmGoalUnit),
		Timezone:             tz,
		ChainTypes:           chains,
		WeeklyTargetMinutes:  rhythmWeeklyTarget,
		MonthlyTargetMinutes: rhythmMonthlyTarget,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created rhythm %s (%s)\n", output.StyleBold.Render(r.Name), r.ID)
	return nil
}

func runRhythmList(cmd *cobra.Command, args []string) error {
	_, db, _, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rhythms, err := db.ListRhythms()
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rhythms)
	}

	if len(rhythms) == 0 {
		fmt.Println("No rhythms configured.")
		return nil
	}

	table := output.NewTable("NAME", "GOAL", "CHAINS", "TIMEZONE")
	for _, r := range rhythms {
		table.AddRow(r.Name, goalLabel(r), chainsLabel(r.ChainTypes), tzLabel(r.Timezone))
	}
	table.Print()
	return nil
}

func runRhythmRm(cmd *cobra.Command, args []string) error {
	_, db, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	r, err := db.FindRhythm(args[0])
	if err != nil {
		return err
	}
	if err := db.DeleteRhythm(r.ID); err != nil {
		return err
	}
	eng.Invalidate(r.ID)

	fmt.Printf("Deleted rhythm %s\n", r.Name)
	return nil
}

func goalLabel(r rhythm.Rhythm) string {
	switch r.GoalUnit {
	case rhythm.GoalMinutes:
		return fmt.Sprintf("%d min/day", r.GoalValue)
	case rhythm.GoalCount:
		return fmt.Sprintf("%dx/day", r.GoalValue)
	default:
		return "any activity"
	}
}

func chainsLabel(types []rhythm.ChainType) string {
	parts := make([]string, len(types))
	for i, ct := range types {
		parts[i] = string(ct)
	}
	return strings.Join(parts, ", ")
}

func tzLabel(tz string) string {
	if tz == "" {
		return "local"
	}
	return tz
}
