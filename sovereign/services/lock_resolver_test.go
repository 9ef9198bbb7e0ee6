package services

import (
	"context"
	"testing"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

func minion(sector, boss, name string, status models.MinionStatus, prereq string) *models.Minion {
	return &models.Minion{
		Sector:       sector,
		Boss:         boss,
		Name:         name,
		Status:       status,
		Prerequisite: prereq,
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		minions      []*models.Minion
		wantPromoted int
		wantStatus   map[string]models.MinionStatus // by minion name
	}{
		{
			name: "boss requirement met",
			minions: []*models.Minion{
				minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
				minion("Math", "Algebra", "Decimals", models.MinionEnslaved, ""),
				minion("Math", "Geometry", "Angles", models.MinionLocked, "Boss:Algebra"),
			},
			wantPromoted: 1,
			wantStatus:   map[string]models.MinionStatus{"Angles": models.MinionEngaged},
		},
		{
			name: "boss requirement partially met",
			minions: []*models.Minion{
				minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
				minion("Math", "Algebra", "Decimals", models.MinionEngaged, ""),
				minion("Math", "Geometry", "Angles", models.MinionLocked, "Boss:Algebra"),
			},
			wantPromoted: 0,
			wantStatus:   map[string]models.MinionStatus{"Angles": models.MinionLocked},
		},
		{
			name: "minion requirement",
			minions: []*models.Minion{
				minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
				minion("Math", "Algebra", "Decimals", models.MinionEngaged, ""),
				minion("Math", "Geometry", "Angles", models.MinionLocked, "Minion:Algebra>Fractions"),
			},
			wantPromoted: 1,
			wantStatus:   map[string]models.MinionStatus{"Angles": models.MinionEngaged},
		},
		{
			name: "conjunction needs every clause",
			minions: []*models.Minion{
				minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
				minion("Sci", "Biology", "Cells", models.MinionEngaged, ""),
				minion("Math", "Geometry", "Angles", models.MinionLocked, "Boss:Algebra;Minion:Biology>Cells"),
			},
			wantPromoted: 0,
			wantStatus:   map[string]models.MinionStatus{"Angles": models.MinionLocked},
		},
		{
			name: "unknown boss never satisfies",
			minions: []*models.Minion{
				minion("Math", "Geometry", "Angles", models.MinionLocked, "Boss:Trigonometry"),
			},
			wantPromoted: 0,
			wantStatus:   map[string]models.MinionStatus{"Angles": models.MinionLocked},
		},
		{
			name: "malformed token keeps the lock",
			minions: []*models.Minion{
				minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
				minion("Math", "Geometry", "Angles", models.MinionLocked, "Bos:Algebra"),
			},
			wantPromoted: 0,
			wantStatus:   map[string]models.MinionStatus{"Angles": models.MinionLocked},
		},
		{
			name: "empty prerequisite stays locked",
			minions: []*models.Minion{
				minion("Math", "Geometry", "Angles", models.MinionLocked, ""),
			},
			wantPromoted: 0,
			wantStatus:   map[string]models.MinionStatus{"Angles": models.MinionLocked},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient()
			repos := repositories.New(client)
			seedMinions(t, repos, tt.minions...)

			promoted, err := NewLockResolver(repos.Minions).Resolve(context.Background())
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if promoted != tt.wantPromoted {
				t.Errorf("promoted = %d, want %d", promoted, tt.wantPromoted)
			}

			all, err := repos.Minions.GetAll(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			for _, m := range all {
				want, ok := tt.wantStatus[m.Name]
				if ok && m.Status != want {
					t.Errorf("%s status = %s, want %s", m.Name, m.Status, want)
				}
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	client := newTestClient()
	repos := repositories.New(client)
	seedMinions(t, repos,
		minion("Math", "Algebra", "Fractions", models.MinionEnslaved, ""),
		minion("Math", "Geometry", "Angles", models.MinionLocked, "Boss:Algebra"),
	)
	resolver := NewLockResolver(repos.Minions)

	promoted, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if promoted != 1 {
		t.Fatalf("first pass promoted = %d, want 1", promoted)
	}

	writesBefore := client.Writes()
	promoted, err = resolver.Resolve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if promoted != 0 {
		t.Errorf("second pass promoted = %d, want 0", promoted)
	}
	if got := client.Writes(); got != writesBefore {
		t.Errorf("second pass wrote to the sheet: writes %d -> %d", writesBefore, got)
	}
}
