package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

// BadgeCandidate is a badge the current state says should exist.
type BadgeCandidate struct {
	ID       string
	Category models.BadgeCategory
	Name     string
}

// BadgeService diffs the computed badge set against the persisted one and
// appends whatever is newly earned. Badges are never revoked: a condition
// becoming false later (say, a data correction un-enslaving a minion) does
// not take a badge away.
type BadgeService struct {
	minions repositories.MinionRepository
	quests  repositories.QuestRepository
	stats   repositories.StatsRepository
	badges  repositories.BadgeRepository
	clock   Clock
}

func NewBadgeService(
	minions repositories.MinionRepository,
	quests repositories.QuestRepository,
	stats repositories.StatsRepository,
	badges repositories.BadgeRepository,
	clock Clock,
) *BadgeService {
	if clock == nil {
		clock = SystemClock
	}
	return &BadgeService{minions: minions, quests: quests, stats: stats, badges: badges, clock: clock}
}

// Sync evaluates the rules and appends newly earned badges. Returns what
// was appended.
func (s *BadgeService) Sync(ctx context.Context) ([]*models.Badge, error) {
	minions, err := s.minions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	quests, err := s.quests.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.badges.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(existing))
	for _, b := range existing {
		have[b.ID] = true
	}

	today := s.clock.Now().Format(models.DateFormat)
	var earned []*models.Badge
	for _, c := range EvaluateBadges(minions, quests, stats) {
		if have[c.ID] {
			continue
		}
		earned = append(earned, &models.Badge{
			ID:         c.ID,
			Category:   c.Category,
			Name:       c.Name,
			DateEarned: today,
		})
	}
	if len(earned) == 0 {
		return nil, nil
	}
	if err := s.badges.Append(ctx, earned); err != nil {
		return nil, err
	}

	for _, b := range earned {
		slog.Info("Badge earned",
			slog.String("type", "quest"),
			slog.String("badge", b.ID))
	}
	return earned, nil
}

// EvaluateBadges is the pure rule set: current state in, deserved badge
// set out. All rules are independent threshold checks.
func EvaluateBadges(minions []*models.Minion, quests []*models.Quest, stats []*models.StatSnapshot) []BadgeCandidate {
	var out []BadgeCandidate

	// Meta: approved-quest-count thresholds.
	approved := 0
	for _, q := range quests {
		if q.Status == models.QuestApproved {
			approved++
		}
	}
	thresholds := []struct {
		count int
		id    string
		name  string
	}{
		{1, "meta:first-quest", "First Blood"},
		{10, "meta:10-quests", "Seasoned Operative"},
		{25, "meta:25-quests", "Quest Veteran"},
		{50, "meta:50-quests", "Half Century"},
		{100, "meta:100-quests", "Centurion"},
	}
	for _, t := range thresholds {
		if approved >= t.count {
			out = append(out, BadgeCandidate{ID: t.id, Category: models.BadgeCategoryMeta, Name: t.name})
		}
	}

	// Boss completion per (sector, boss).
	type bossState struct {
		total    int
		enslaved int
		survival bool
	}
	bosses := make(map[models.BossKey]*bossState)
	var bossOrder []models.BossKey
	for _, m := range minions {
		key := m.BossKey()
		st, ok := bosses[key]
		if !ok {
			st = &bossState{}
			bosses[key] = st
			bossOrder = append(bossOrder, key)
		}
		st.total++
		if m.Status == models.MinionEnslaved {
			st.enslaved++
		}
		if m.Survival {
			st.survival = true
		}
	}

	anyBossDown := false
	sectorBosses := make(map[string]int)
	sectorConquered := make(map[string]int)
	survivalTotal, survivalDown := 0, 0
	var sectorOrder []string
	for _, key := range bossOrder {
		st := bosses[key]
		if _, ok := sectorBosses[key.Sector]; !ok {
			sectorOrder = append(sectorOrder, key.Sector)
		}
		sectorBosses[key.Sector]++
		complete := st.total > 0 && st.enslaved == st.total
		if complete {
			anyBossDown = true
			sectorConquered[key.Sector]++
			out = append(out, BadgeCandidate{
				ID:       fmt.Sprintf("boss:%s:%s", strings.ToUpper(key.Sector), strings.ToUpper(key.Boss)),
				Category: models.BadgeCategoryBoss,
				Name:     "Boss Defeated: " + key.Boss,
			})
		}
		if st.survival {
			survivalTotal++
			if complete {
				survivalDown++
			}
		}
	}

	if anyBossDown {
		out = append(out, BadgeCandidate{ID: "meta:first-boss", Category: models.BadgeCategoryMeta, Name: "First Boss Down"})
	}

	// Sector completion: every boss in the sector conquered.
	completeSectors := 0
	for _, sector := range sectorOrder {
		if sectorBosses[sector] > 0 && sectorConquered[sector] == sectorBosses[sector] {
			completeSectors++
			out = append(out, BadgeCandidate{
				ID:       "sector:" + strings.ToUpper(sector),
				Category: models.BadgeCategorySector,
				Name:     "Sector Cleared: " + sector,
			})
		}
	}
	if len(sectorOrder) >= 6 && completeSectors == len(sectorOrder) {
		out = append(out, BadgeCandidate{ID: "meta:all-sectors", Category: models.BadgeCategoryMeta, Name: "Sovereign of All Sectors"})
	}

	// Survival mode: at least one flagged boss and all of them down.
	if survivalTotal > 0 && survivalDown == survivalTotal {
		out = append(out, BadgeCandidate{ID: "meta:survival-clear", Category: models.BadgeCategoryMeta, Name: "Survival Mode Cleared"})
	}

	// Stat tiers from the Command_Center level strings.
	statKeys := map[string]string{
		models.StatIntelligence: "intel",
		models.StatStamina:      "stamina",
		models.StatTempo:        "tempo",
		models.StatReputation:   "rep",
	}
	tiers := []struct {
		minIndex int
		suffix   string
		label    string
	}{
		{2, "silver", "Silver"},
		{3, "gold", "Gold"},
		{4, "platinum", "Platinum"},
	}
	for _, st := range stats {
		key, ok := statKeys[st.Stat]
		if !ok {
			continue
		}
		idx := models.TierIndex(st.CurrentLevel)
		for _, tier := range tiers {
			if idx >= tier.minIndex {
				out = append(out, BadgeCandidate{
					ID:       fmt.Sprintf("stat:%s:%s", key, tier.suffix),
					Category: models.BadgeCategoryStat,
					Name:     fmt.Sprintf("%s %s", st.Stat, tier.label),
				})
			}
		}
	}

	return out
}
