package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

func approvedQuests(n int) []*models.Quest {
	quests := make([]*models.Quest, n)
	for i := range quests {
		quests[i] = &models.Quest{
			ID:     fmt.Sprintf("q%d", i),
			Status: models.QuestApproved,
		}
	}
	return quests
}

func badgeIDs(candidates []BadgeCandidate) map[string]bool {
	ids := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		ids[c.ID] = true
	}
	return ids
}

func TestEvaluateBadges(t *testing.T) {
	tests := []struct {
		name    string
		minions []*models.Minion
		quests  []*models.Quest
		stats   []*models.StatSnapshot
		want    []string
		notWant []string
	}{
		{
			name:   "quest count thresholds accumulate",
			quests: approvedQuests(25),
			want:   []string{"meta:first-quest", "meta:10-quests", "meta:25-quests"},
			notWant: []string{
				"meta:50-quests", "meta:100-quests",
			},
		},
		{
			name: "boss completion",
			minions: []*models.Minion{
				minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
				minion("Math", "Algebra", "Decimals", models.MinionEnslaved, ""),
				minion("Math", "Geometry", "Angles", models.MinionEngaged, ""),
			},
			want:    []string{"boss:MATH:ALGEBRA", "meta:first-boss"},
			notWant: []string{"boss:MATH:GEOMETRY", "sector:MATH"},
		},
		{
			name: "sector cleared",
			minions: []*models.Minion{
				minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
				minion("Math", "Geometry", "Angles", models.MinionEnslaved, ""),
			},
			want: []string{"sector:MATH"},
		},
		{
			name: "all sectors needs at least six",
			minions: []*models.Minion{
				minion("A", "B1", "M", models.MinionEnslaved, ""),
				minion("B", "B2", "M", models.MinionEnslaved, ""),
				minion("C", "B3", "M", models.MinionEnslaved, ""),
			},
			want:    []string{"sector:A", "sector:B", "sector:C"},
			notWant: []string{"meta:all-sectors"},
		},
		{
			name: "survival clear",
			minions: []*models.Minion{
				{Sector: "Math", Boss: "Final", Name: "Exam", Status: models.MinionEnslaved, Survival: true},
			},
			want: []string{"meta:survival-clear"},
		},
		{
			name: "survival boss still standing",
			minions: []*models.Minion{
				{Sector: "Math", Boss: "Final", Name: "Exam", Status: models.MinionEngaged, Survival: true},
			},
			notWant: []string{"meta:survival-clear"},
		},
		{
			name: "stat tiers include lower ranks",
			stats: []*models.StatSnapshot{
				{Stat: models.StatIntelligence, CurrentLevel: "Gold II"},
				{Stat: models.StatTempo, CurrentLevel: "Bronze I"},
			},
			want:    []string{"stat:intel:silver", "stat:intel:gold"},
			notWant: []string{"stat:intel:platinum", "stat:tempo:silver"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := badgeIDs(EvaluateBadges(tt.minions, tt.quests, tt.stats))
			for _, id := range tt.want {
				if !got[id] {
					t.Errorf("missing badge %s", id)
				}
			}
			for _, id := range tt.notWant {
				if got[id] {
					t.Errorf("unexpected badge %s", id)
				}
			}
		})
	}
}

func TestBadgeSyncIsAppendOnly(t *testing.T) {
	client := newTestClient()
	repos := repositories.New(client)
	seedMinions(t, repos,
		minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
	)
	clock := testClock(t, testDay)
	svc := NewBadgeService(repos.Minions, repos.Quests, repos.Stats, repos.Badges, clock)

	earned, err := svc.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(earned) == 0 {
		t.Fatal("first sync earned nothing")
	}

	writesBefore := client.Writes()
	earned, err = svc.Sync(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(earned) != 0 {
		t.Errorf("second sync earned %d badges, want 0", len(earned))
	}
	if got := client.Writes(); got != writesBefore {
		t.Errorf("second sync wrote to the sheet: writes %d -> %d", writesBefore, got)
	}
}

func TestBadgesAreNeverRevoked(t *testing.T) {
	client := newTestClient()
	repos := repositories.New(client)
	seedMinions(t, repos,
		minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
	)
	clock := testClock(t, testDay)
	svc := NewBadgeService(repos.Minions, repos.Quests, repos.Stats, repos.Badges, clock)

	if _, err := svc.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}
	before, err := repos.Badges.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// A data correction un-enslaves the minion; the badge must survive.
	m := getMinion(t, repos, models.MinionKey{Sector: "Math", Boss: "Algebra", Minion: "Fractions"})
	m.Status = models.MinionEngaged
	if err := repos.Minions.Update(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Sync(context.Background()); err != nil {
		t.Fatal(err)
	}

	after, err := repos.Badges.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Errorf("badge count changed %d -> %d after condition became false", len(before), len(after))
	}
}
