package repositories

import (
	"context"
	"fmt"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

// Repositories bundles every table repository behind one constructor, the
// way handlers and services receive them.
type Repositories struct {
	Minions     MinionRepository
	Quests      QuestRepository
	QuestLog    QuestLogRepository
	Badges      BadgeRepository
	Users       UserRepository
	Stats       StatsRepository
	Definitions DefinitionRepository
}

func New(client sheets.Client) *Repositories {
	return &Repositories{
		Minions:     NewMinionRepository(client),
		Quests:      NewQuestRepository(client),
		QuestLog:    NewQuestLogRepository(client),
		Badges:      NewBadgeRepository(client),
		Users:       NewUserRepository(client),
		Stats:       NewStatsRepository(client),
		Definitions: NewDefinitionRepository(client),
	}
}

// EnsureSchema performs migration-on-startup: every table is created when
// absent and any missing headers are appended. Safe to run repeatedly.
func EnsureSchema(ctx context.Context, client sheets.Client) error {
	tables := []struct {
		name    string
		headers []string
	}{
		{models.TableSectors, models.SectorsHeaders},
		{models.TableQuests, models.QuestsHeaders},
		{models.TableQuestLog, models.QuestLogHeaders},
		{models.TableBadges, models.BadgesHeaders},
		{models.TableUsers, models.UsersHeaders},
		{models.TableCommandCenter, models.CommandCenterHeaders},
		{models.TableDefinitions, models.DefinitionsHeaders},
	}
	for _, t := range tables {
		if err := client.EnsureSheet(ctx, t.name, t.headers); err != nil {
			return fmt.Errorf("failed to ensure sheet %s: %w", t.name, err)
		}
	}
	return nil
}
