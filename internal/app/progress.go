package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rhythmtrack/internal/aggregate"
	"github.com/blackwell-systems/rhythmtrack/internal/calendar"
	"github.com/blackwell-systems/rhythmtrack/internal/output"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
	"github.com/blackwell-systems/rhythmtrack/internal/store"
	"github.com/blackwell-systems/rhythmtrack/internal/tier"
)

var progressCmd = &cobra.Command{
	Use:   "progress [rhythm]",
	Short: "Show this week's progress and tier",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(progressCmd)
}

// progressOutput is the JSON-serializable output for the progress command.
type progressOutput struct {
	Rhythm string              `json:"rhythm"`
	Weekly tier.WeeklyProgress `json:"weekly"`
}

func runProgress(cmd *cobra.Command, args []string) error {
	_, db, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var rhythms []rhythm.Rhythm
	if len(args) == 1 {
		r, err := db.FindRhythm(args[0])
		if err != nil {
			return err
		}
		rhythms = []rhythm.Rhythm{*r}
	} else {
		if rhythms, err = db.ListRhythms(); err != nil {
			return err
		}
	}

	today := time.Now()
	var results []progressOutput
	for _, r := range rhythms {
		weekly, err := eng.WeeklyProgress(r.ID, today)
		if err != nil {
			return fmt.Errorf("computing %s: %w", r.Name, err)
		}
		results = append(results, progressOutput{Rhythm: r.Name, Weekly: weekly})
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No rhythms configured.")
		return nil
	}

	for i, res := range results {
		r := rhythms[i]
		strip := weekStripFor(db, &r, today)

		fmt.Println(output.Section(res.Rhythm))
		fmt.Println()
		fmt.Printf("  %s\n", output.WeekStripHeader())
		fmt.Printf("  %s\n\n", strip)
		fmt.Printf("  %s %s\n", output.StyleLabel.Render("Tier"), output.TierBadge(res.Weekly.AchievedTier))
		fmt.Printf("  %s %d of 7\n", output.StyleLabel.Render("Days completed"), res.Weekly.DaysCompleted)
		fmt.Printf("  %s %d\n", output.StyleLabel.Render("Days remaining"), res.Weekly.DaysRemaining)
		if res.Weekly.BestPossibleTier != res.Weekly.AchievedTier {
			fmt.Printf("  %s %s\n", output.StyleLabel.Render("Still in reach"), output.TierBadge(res.Weekly.BestPossibleTier))
		}
	}
	return nil
}

// weekStripFor recomputes the current week's day facts for display.
// Rendering needs per-day detail the cached weekly snapshot does not carry.
func weekStripFor(db *store.DB, r *rhythm.Rhythm, today time.Time) string {
	local := today.In(r.Location())
	weekStart := calendar.WeekStart(local)

	records, err := db.ListRecords(r.ID, weekStart, local)
	if err != nil {
		records = nil
	}
	days := aggregate.BuildDayStatuses(r, records, weekStart, local)

	var complete [7]bool
	for i, ds := range days {
		if i < 7 {
			complete[i] = ds.IsComplete
		}
	}
	return output.WeekStrip(complete, calendar.DaysBetween(weekStart, local))
}
