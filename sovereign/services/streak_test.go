package services

import (
	"testing"
	"time"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
)

func TestComputeStreak(t *testing.T) {
	today, err := time.Parse(models.DateFormat, "2026-03-02")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		dates []string
		want  Streak
	}{
		{
			name:  "no activity",
			dates: nil,
			want:  Streak{},
		},
		{
			name:  "active today only",
			dates: []string{"2026-03-02"},
			want:  Streak{Current: 1, Best: 1},
		},
		{
			name:  "three day run ending today",
			dates: []string{"2026-02-28", "2026-03-01", "2026-03-02"},
			want:  Streak{Current: 3, Best: 3},
		},
		{
			name:  "quiet today zeroes the current streak",
			dates: []string{"2026-02-27", "2026-02-28", "2026-03-01"},
			want:  Streak{Current: 0, Best: 3},
		},
		{
			name:  "best run in the past beats current",
			dates: []string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08", "2026-03-02"},
			want:  Streak{Current: 1, Best: 4},
		},
		{
			name:  "duplicates count once",
			dates: []string{"2026-03-02", "2026-03-02", "2026-03-01"},
			want:  Streak{Current: 2, Best: 2},
		},
		{
			name:  "unparseable cells are skipped",
			dates: []string{"last tuesday", "2026-03-02"},
			want:  Streak{Current: 1, Best: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(tt.dates, today)
			if got != tt.want {
				t.Errorf("ComputeStreak() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestActivityDates(t *testing.T) {
	minions := []*models.Minion{
		{Name: "A", DateQuestCompleted: "2026-03-01"},
		{Name: "B"},
	}
	quests := []*models.Quest{
		{ID: "q1", DateAdded: "2026-02-27", DateResolved: "2026-02-28"},
		{ID: "q2"},
	}

	got := ActivityDates(minions, quests)
	want := map[string]bool{"2026-02-27": true, "2026-02-28": true, "2026-03-01": true}
	if len(got) != 3 {
		t.Fatalf("dates = %v, want 3 entries", got)
	}
	for _, d := range got {
		if !want[d] {
			t.Errorf("unexpected date %s", d)
		}
	}
}
