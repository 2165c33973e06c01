package tier

import "fmt"

// Nudge returns a short encouragement toward the target tier, or an empty
// string when no nudge applies. A target already met is silence; a target
// out of reach falls back to the most demanding tier that is still
// reachable this week. If even the lowest non-starting tier is out of
// reach, the result is silence too: the user is never told they failed.
func Nudge(p WeeklyProgress, target Tier) string {
	need := target.MinDays()
	if need <= 0 || p.DaysCompleted >= need {
		return ""
	}

	if need-p.DaysCompleted <= p.DaysRemaining {
		return phrase(need-p.DaysCompleted, target)
	}

	// Target is out of reach; suggest the best tier that is not.
	for _, b := range Bands {
		if b.Tier == TierStarting {
			continue
		}
		if b.MinDays > p.DaysCompleted && b.MinDays-p.DaysCompleted <= p.DaysRemaining {
			return phrase(b.MinDays-p.DaysCompleted, b.Tier)
		}
	}
	return ""
}

func phrase(n int, t Tier) string {
	times := "times"
	if n == 1 {
		times = "time"
	}
	return fmt.Sprintf("%d more %s to hit '%s'", n, times, t.Label())
}
