package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/prereq"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

// LockResolver promotes Locked minions whose prerequisite expression has
// become fully satisfied. It runs after every approval and is idempotent:
// with no new Enslaved minions it performs zero writes.
type LockResolver struct {
	minions repositories.MinionRepository
}

func NewLockResolver(minions repositories.MinionRepository) *LockResolver {
	return &LockResolver{minions: minions}
}

// Resolve scans the whole Sectors table once and unlocks every Locked
// minion whose requirements are all met. Returns how many were promoted.
func (r *LockResolver) Resolve(ctx context.Context) (int, error) {
	minions, err := r.minions.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	// Requirement tokens reference bosses and minions by name only, without
	// a sector, so satisfaction is tracked by name here as well.
	bossTotal := make(map[string]int)
	bossEnslaved := make(map[string]int)
	minionEnslaved := make(map[string]bool)
	for _, m := range minions {
		bossTotal[m.Boss]++
		if m.Status == models.MinionEnslaved {
			bossEnslaved[m.Boss]++
			minionEnslaved[m.Boss+">"+m.Name] = true
		}
	}

	promoted := 0
	for _, m := range minions {
		if m.Status != models.MinionLocked || m.Prerequisite == "" {
			continue
		}
		if !satisfied(prereq.Parse(m.Prerequisite), bossTotal, bossEnslaved, minionEnslaved) {
			continue
		}

		m.Status = models.MinionEngaged
		m.Prerequisite = ""
		if err := r.minions.Update(ctx, m); err != nil {
			return promoted, err
		}
		promoted++

		slog.Info("Minion unlocked",
			slog.String("type", "quest"),
			slog.String("key", m.Key().String()))
	}
	return promoted, nil
}

func satisfied(reqs []prereq.Requirement, bossTotal, bossEnslaved map[string]int, minionEnslaved map[string]bool) bool {
	if len(reqs) == 0 {
		return false
	}
	for _, req := range reqs {
		switch req.Kind {
		case prereq.KindBoss:
			if bossTotal[req.Boss] == 0 || bossEnslaved[req.Boss] != bossTotal[req.Boss] {
				return false
			}
		case prereq.KindMinion:
			if !minionEnslaved[req.Boss+">"+req.Minion] {
				return false
			}
		default:
			// Unparseable token: keep the minion locked rather than
			// unlocking it on a typo.
			return false
		}
	}
	return true
}
