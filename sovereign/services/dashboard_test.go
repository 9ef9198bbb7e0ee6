package services

import (
	"context"
	"testing"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

func TestOverviewClassifiesQuests(t *testing.T) {
	client := newTestClient()
	repos := repositories.New(client)
	seedMinions(t, repos,
		minion("Math", "Algebra", "Fractions", models.MinionEngaged, ""),
		minion("Math", "Algebra", "Decimals", models.MinionEngaged, ""),
	)

	seed := []*models.Quest{
		{ID: "q1", Sector: "Math", Boss: "Algebra", Minion: "Fractions", Status: models.QuestActive},
		{ID: "q2", Sector: "Math", Boss: "Algebra", Minion: "Decimals", Status: models.QuestSubmitted},
		{ID: "q3", Sector: "Math", Boss: "Algebra", Minion: "Decimals", Status: models.QuestAbandoned},
		{ID: "q4", Sector: "Math", Boss: "Algebra", Minion: "Fractions", Status: models.QuestRejected},
	}
	for _, q := range seed {
		if err := repos.Quests.Append(context.Background(), q); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewDashboardService(client, repos, testClock(t, testDay))
	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if len(overview.Actionable) != 2 {
		t.Errorf("actionable = %d, want 2 (Active + Rejected)", len(overview.Actionable))
	}
	if len(overview.PendingApproval) != 1 {
		t.Errorf("pending = %d, want 1", len(overview.PendingApproval))
	}
}

func TestSummarizeSectors(t *testing.T) {
	minions := []*models.Minion{
		minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
		minion("Math", "Algebra", "Decimals", models.MinionEngaged, ""),
		minion("Math", "Geometry", "Angles", models.MinionEnslaved, ""),
		minion("Science", "Biology", "Cells", models.MinionLocked, "Boss:Algebra"),
	}
	minions[2].Survival = true

	sectors := summarizeSectors(minions)
	if len(sectors) != 2 {
		t.Fatalf("sectors = %d, want 2", len(sectors))
	}
	math := sectors[0]
	if math.Name != "Math" {
		t.Fatalf("row order not preserved, first sector = %s", math.Name)
	}
	if got := math.Percent(); got != 66 {
		t.Errorf("math percent = %d, want 66", got)
	}
	if len(math.Bosses) != 2 {
		t.Fatalf("math bosses = %d, want 2", len(math.Bosses))
	}
	if math.Bosses[0].Complete() {
		t.Error("Algebra should not be complete")
	}
	if !math.Bosses[1].Complete() || !math.Bosses[1].Survival {
		t.Errorf("Geometry = %+v, want complete survival boss", math.Bosses[1])
	}
	if sectors[1].Percent() != 0 {
		t.Errorf("science percent = %d, want 0", sectors[1].Percent())
	}
}
