package output

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rhythmtrack/internal/tier"
)

// weekdayLetters label the Monday-first week strip.
var weekdayLetters = [7]string{"M", "T", "W", "T", "F", "S", "S"}

// WeekStrip renders the current Monday-Sunday week as seven cells:
// filled for complete days, hollow for incomplete elapsed days, and muted
// dashes for days still ahead. todayIdx is the zero-based offset of today
// within the week.
// Example: "● ● ○ ● ─ ─ ─"
func WeekStrip(complete [7]bool, todayIdx int) string {
	cells := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		switch {
		case complete[i]:
			cells = append(cells, StyleSuccess.Render("●"))
		case i <= todayIdx:
			cells = append(cells, StyleMuted.Render("○"))
		default:
			cells = append(cells, StyleMuted.Render("─"))
		}
	}
	return strings.Join(cells, " ")
}

// WeekStripHeader returns the weekday letter row aligned with WeekStrip.
func WeekStripHeader() string {
	return StyleMuted.Render(strings.Join(weekdayLetters[:], " "))
}

// ChainCell renders a chain length with its unit, muted when zero.
// Example: "12 days"
func ChainCell(length int, unit string) string {
	s := fmt.Sprintf("%d %s", length, unit)
	if length == 0 {
		return StyleMuted.Render(s)
	}
	return StyleSuccess.Render(s)
}

// TierBadge renders a tier's label colored by how demanding it is.
func TierBadge(t tier.Tier) string {
	switch t {
	case tier.TierDaily, tier.TierMostDays:
		return StyleSuccess.Render(t.Label())
	case tier.TierFewTimes, tier.TierWeekly:
		return StyleWarning.Render(t.Label())
	default:
		return StyleMuted.Render(t.Label())
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
