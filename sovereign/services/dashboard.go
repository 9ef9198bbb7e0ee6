package services

import (
	"context"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

// BossSummary is the per-boss completion state rendered on the dashboard.
type BossSummary struct {
	Name     string
	Enslaved int
	Total    int
	Survival bool
}

func (b BossSummary) Complete() bool {
	return b.Total > 0 && b.Enslaved == b.Total
}

type SectorSummary struct {
	Name   string
	Bosses []BossSummary
}

func (s SectorSummary) Percent() int {
	enslaved, total := 0, 0
	for _, b := range s.Bosses {
		enslaved += b.Enslaved
		total += b.Total
	}
	if total == 0 {
		return 0
	}
	return enslaved * 100 / total
}

func (s SectorSummary) Complete() bool {
	if len(s.Bosses) == 0 {
		return false
	}
	for _, b := range s.Bosses {
		if !b.Complete() {
			return false
		}
	}
	return true
}

// Overview is everything the dashboard and quest board render.
type Overview struct {
	Sectors         []SectorSummary
	Actionable      []*models.Quest // Active or Rejected: the student's to-do list
	PendingApproval []*models.Quest // Submitted, waiting on the teacher
	Engaged         []*models.Minion
	Badges          []*models.Badge
	Stats           []*models.StatSnapshot
	Glossary        []*models.Definition
	Streak          Streak
}

// DashboardService derives read-only aggregates. It never writes.
type DashboardService struct {
	client sheets.Client
	repos  *repositories.Repositories
	clock  Clock
}

func NewDashboardService(client sheets.Client, repos *repositories.Repositories, clock Clock) *DashboardService {
	if clock == nil {
		clock = SystemClock
	}
	return &DashboardService{client: client, repos: repos, clock: clock}
}

func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	// One parallel fetch warms the table cache before the repositories
	// read, so the page costs five sheet reads at most.
	_, err := s.client.BatchFetch(ctx,
		models.TableSectors, models.TableQuests, models.TableBadges,
		models.TableCommandCenter, models.TableDefinitions)
	if err != nil {
		return nil, err
	}

	minions, err := s.repos.Minions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	quests, err := s.repos.Quests.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	badges, err := s.repos.Badges.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.repos.Stats.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	glossary, err := s.repos.Definitions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	o := &Overview{
		Sectors:  summarizeSectors(minions),
		Badges:   badges,
		Stats:    stats,
		Glossary: glossary,
		Streak:   ComputeStreak(ActivityDates(minions, quests), s.clock.Now()),
	}
	for _, q := range quests {
		switch q.Status {
		case models.QuestActive, models.QuestRejected:
			o.Actionable = append(o.Actionable, q)
		case models.QuestSubmitted:
			o.PendingApproval = append(o.PendingApproval, q)
		}
	}
	for _, m := range minions {
		if m.Status == models.MinionEngaged && m.QuestStatus == "" {
			o.Engaged = append(o.Engaged, m)
		}
	}
	return o, nil
}

// summarizeSectors groups minions into sector/boss completion summaries,
// preserving the sheet's row order.
func summarizeSectors(minions []*models.Minion) []SectorSummary {
	type bossSlot struct {
		sectorIdx int
		bossIdx   int
	}
	var sectors []SectorSummary
	sectorIdx := make(map[string]int)
	bossIdx := make(map[models.BossKey]bossSlot)

	for _, m := range minions {
		si, ok := sectorIdx[m.Sector]
		if !ok {
			si = len(sectors)
			sectorIdx[m.Sector] = si
			sectors = append(sectors, SectorSummary{Name: m.Sector})
		}
		key := m.BossKey()
		slot, ok := bossIdx[key]
		if !ok {
			slot = bossSlot{sectorIdx: si, bossIdx: len(sectors[si].Bosses)}
			bossIdx[key] = slot
			sectors[si].Bosses = append(sectors[si].Bosses, BossSummary{Name: m.Boss})
		}
		b := &sectors[slot.sectorIdx].Bosses[slot.bossIdx]
		b.Total++
		if m.Status == models.MinionEnslaved {
			b.Enslaved++
		}
		if m.Survival {
			b.Survival = true
		}
	}
	return sectors
}
