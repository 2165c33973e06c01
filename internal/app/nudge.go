package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rhythmtrack/internal/tier"
)

var nudgeTarget string

var nudgeCmd = &cobra.Command{
	Use:   "nudge <rhythm>",
	Short: "Print an encouragement toward a target tier",
	Long: `Print a short nudge toward the target tier for this week, e.g.
"3 more times to hit 'Every Day'". When the target is already met, or
nothing above 'starting' is reachable anymore, nothing is printed.

Target tiers: daily, most_days, few_times, weekly.`,
	Args: cobra.ExactArgs(1),
	RunE: runNudge,
}

func init() {
	nudgeCmd.Flags().StringVar(&nudgeTarget, "target", string(tier.TierDaily), "Target tier")
	rootCmd.AddCommand(nudgeCmd)
}

func runNudge(cmd *cobra.Command, args []string) error {
	_, db, eng, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	r, err := db.FindRhythm(args[0])
	if err != nil {
		return err
	}

	target, ok := tier.Parse(nudgeTarget)
	if !ok {
		return fmt.Errorf("unknown tier %q", nudgeTarget)
	}

	msg, err := eng.Nudge(r.ID, target, time.Now())
	if err != nil {
		return err
	}
	if msg != "" {
		fmt.Println(msg)
	}
	return nil
}
