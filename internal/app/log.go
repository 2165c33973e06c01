package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rhythmtrack/internal/calendar"
	"github.com/blackwell-systems/rhythmtrack/internal/output"
	"github.com/blackwell-systems/rhythmtrack/internal/store"
)

var (
	logMinutes int
	logAt      string
	logNote    string
	logList    bool
)

var logCmd = &cobra.Command{
	Use:   "log <rhythm>",
	Short: "Record activity for a rhythm",
	Long: `Append one activity entry to a rhythm and refresh its chains.

Examples:
  rhythmtrack log meditate
  rhythmtrack log meditate --minutes 20
  rhythmtrack log running --at "2026-08-30T07:15:00Z" --note "easy 5k"
  rhythmtrack log meditate --list`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().IntVar(&logMinutes, "minutes", 0, "Duration in minutes")
	logCmd.Flags().StringVar(&logAt, "at", "", "Timestamp (RFC3339 or YYYY-MM-DD; default now)")
	logCmd.Flags().StringVar(&logNote, "note", "", "Optional note")
	logCmd.Flags().BoolVar(&logList, "list", false, "List this week's entries instead of logging")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	_, db, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	r, err := db.FindRhythm(args[0])
	if err != nil {
		return err
	}

	if logList {
		return runLogList(db, r.ID, r.Name)
	}

	when := time.Now()
	if logAt != "" {
		when, err = parseWhen(logAt)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
	}

	entry, err := db.AddEntry(store.EntryInput{
		RhythmID:        r.ID,
		OccurredAt:      when,
		Timezone:        when.Location().String(),
		DurationSeconds: logMinutes * 60,
		Note:            logNote,
	})
	if err != nil {
		return err
	}

	// New activity may change any day fact; drop the cached snapshot so
	// the next read recomputes.
	eng.Invalidate(r.ID)

	fmt.Printf("Logged %s at %s", output.StyleBold.Render(r.Name), entry.OccurredAt.Format("15:04"))
	if logMinutes > 0 {
		fmt.Printf(" (%d min)", logMinutes)
	}
	fmt.Println()

	if progress, err := eng.WeeklyProgress(r.ID, time.Now()); err == nil {
		fmt.Printf("This week: %d/7 days, %s\n", progress.DaysCompleted, progress.AchievedTier.Label())
	}
	return nil
}

func runLogList(db *store.DB, rhythmID, name string) error {
	now := time.Now()
	entries, err := db.ListEntries(rhythmID, calendar.WeekStart(now), calendar.WeekEnd(now))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No entries for %s this week.\n", name)
		return nil
	}

	table := output.NewTable("WHEN", "DURATION", "NOTE")
	for _, e := range entries {
		dur := "-"
		if e.DurationSeconds > 0 {
			dur = fmt.Sprintf("%d min", e.DurationSeconds/60)
		}
		table.AddRow(e.OccurredAt.Local().Format("Mon 15:04"), dur, e.Note)
	}
	table.Print()
	return nil
}

// parseWhen accepts an RFC3339 timestamp or a bare date. A bare date is
// interpreted as noon local time, safely inside the intended day in any
// timezone.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(calendar.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(12 * time.Hour), nil
}
