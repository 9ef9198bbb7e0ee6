package services

import (
	"sort"
	"time"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
)

// Streak is the consecutive-active-day summary shown on the dashboard.
type Streak struct {
	Current int
	Best    int
}

// ComputeStreak computes the current streak (walking backward from today;
// a quiet today means zero, even if yesterday was active) and the best
// streak ever (longest consecutive run in the full date set). Cells that
// do not parse as dates are skipped.
func ComputeStreak(dates []string, today time.Time) Streak {
	seen := make(map[string]bool)
	var days []time.Time
	for _, d := range dates {
		t, err := time.Parse(models.DateFormat, d)
		if err != nil || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}
	if len(days) == 0 {
		return Streak{}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	current := 0
	for day := today.Format(models.DateFormat); seen[day]; {
		current++
		today = today.AddDate(0, 0, -1)
		day = today.Format(models.DateFormat)
	}

	return Streak{Current: current, Best: best}
}

// ActivityDates collects every date that counts as "active": quests added
// or resolved, and minions enslaved.
func ActivityDates(minions []*models.Minion, quests []*models.Quest) []string {
	var dates []string
	for _, q := range quests {
		if q.DateAdded != "" {
			dates = append(dates, q.DateAdded)
		}
		if q.DateResolved != "" {
			dates = append(dates, q.DateResolved)
		}
	}
	for _, m := range minions {
		if m.DateQuestCompleted != "" {
			dates = append(dates, m.DateQuestCompleted)
		}
	}
	return dates
}
