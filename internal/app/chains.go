package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rhythmtrack/internal/chain"
	"github.com/blackwell-systems/rhythmtrack/internal/output"
	"github.com/blackwell-systems/rhythmtrack/internal/rhythm"
)

var chainsCmd = &cobra.Command{
	Use:   "chains [rhythm]",
	Short: "Show chain lengths per rhythm",
	Long: `Display current and longest chains for every configured chain type.
With no argument, all rhythms are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChains,
}

func init() {
	chainsCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(chainsCmd)
}

// chainsOutput is the JSON-serializable output for the chains command.
type chainsOutput struct {
	Rhythm string       `json:"rhythm"`
	AsOf   string       `json:"as_of"`
	Stats  []chain.Stat `json:"stats"`
}

func runChains(cmd *cobra.Command, args []string) error {
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
	var results []chainsOutput
	for _, r := range rhythms {
		snap, err := eng.Snapshot(r.ID, today)
		if err != nil {
			return fmt.Errorf("computing %s: %w", r.Name, err)
		}
		results = append(results, chainsOutput{Rhythm: r.Name, AsOf: snap.AsOf, Stats: snap.Stats})
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

	for _, res := range results {
		fmt.Println(output.Section(res.Rhythm))
		fmt.Println()
		table := output.NewTable("CHAIN", "CURRENT", "LONGEST")
		for _, s := range res.Stats {
			table.AddRow(
				chainLabel(s.Type),
				output.ChainCell(s.Current, string(s.Unit)),
				fmt.Sprintf("%d %s", s.Longest, s.Unit),
			)
		}
		table.Print()
	}
	return nil
}

func chainLabel(ct rhythm.ChainType) string {
	switch ct {
	case rhythm.ChainDaily:
		return "Daily"
	case rhythm.ChainWeeklyHigh:
		return "Weekly (5+ days)"
	case rhythm.ChainWeeklyLow:
		return "Weekly (3+ days)"
	case rhythm.ChainWeeklyTarget:
		return "Weekly minutes"
	case rhythm.ChainMonthlyTarget:
		return "Monthly minutes"
	default:
		return string(ct)
	}
}
