package repositories

import (
	"context"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

// QuestLogRepository holds dated progress entries for recurring quests.
// Append-only, many entries per quest ID.
type QuestLogRepository interface {
	GetAll(ctx context.Context) ([]*models.QuestLogEntry, error)
	GetByQuestID(ctx context.Context, questID string) ([]*models.QuestLogEntry, error)
	Append(ctx context.Context, entry *models.QuestLogEntry) error
}

type questLogRepository struct {
	client sheets.Client
}

func NewQuestLogRepository(client sheets.Client) QuestLogRepository {
	return &questLogRepository{client: client}
}

func (r *questLogRepository) GetAll(ctx context.Context) ([]*models.QuestLogEntry, error) {
	table, err := r.client.FetchTable(ctx, models.TableQuestLog)
	if err != nil {
		return nil, err
	}
	entries := make([]*models.QuestLogEntry, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		entries = append(entries, &models.QuestLogEntry{
			Row:       table.SheetRow(i),
			QuestID:   table.Value(i, models.HeaderQuestID),
			Date:      table.Value(i, models.HeaderDate),
			Note:      table.Value(i, models.HeaderNote),
			TimeSpent: atoi(table.Value(i, models.HeaderTimeSpent)),
		})
	}
	return entries, nil
}

func (r *questLogRepository) GetByQuestID(ctx context.Context, questID string) ([]*models.QuestLogEntry, error) {
	entries, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*models.QuestLogEntry
	for _, e := range entries {
		if e.QuestID == questID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (r *questLogRepository) Append(ctx context.Context, entry *models.QuestLogEntry) error {
	table, err := r.client.FetchTable(ctx, models.TableQuestLog)
	if err != nil {
		return err
	}
	row := rowFor(table, map[string]interface{}{
		models.HeaderQuestID:   entry.QuestID,
		models.HeaderDate:      entry.Date,
		models.HeaderNote:      entry.Note,
		models.HeaderTimeSpent: entry.TimeSpent,
	})
	return r.client.AppendRows(ctx, models.TableQuestLog, [][]interface{}{row})
}
