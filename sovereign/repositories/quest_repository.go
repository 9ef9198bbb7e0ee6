package repositories

import (
	"context"
	"fmt"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

type QuestRepository interface {
	GetAll(ctx context.Context) ([]*models.Quest, error)
	GetByID(ctx context.Context, id string) (*models.Quest, error)
	Append(ctx context.Context, q *models.Quest) error

	// Update rewrites the mutable cells of the quest's row. Quest rows are
	// never deleted; abandonment is a status flag.
	Update(ctx context.Context, q *models.Quest) error
}

type questRepository struct {
	client sheets.Client
}

func NewQuestRepository(client sheets.Client) QuestRepository {
	return &questRepository{client: client}
}

func (r *questRepository) GetAll(ctx context.Context) ([]*models.Quest, error) {
	table, err := r.client.FetchTable(ctx, models.TableQuests)
	if err != nil {
		return nil, err
	}
	quests := make([]*models.Quest, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		quests = append(quests, questFromRow(table, i))
	}
	return quests, nil
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*models.Quest, error) {
	quests, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, q := range quests {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, fmt.Errorf("quest %s: %w", id, models.ErrNotFound)
}

func (r *questRepository) Append(ctx context.Context, q *models.Quest) error {
	table, err := r.client.FetchTable(ctx, models.TableQuests)
	if err != nil {
		return err
	}
	row := rowFor(table, questCells(q))
	return r.client.AppendRows(ctx, models.TableQuests, [][]interface{}{row})
}

func (r *questRepository) Update(ctx context.Context, q *models.Quest) error {
	if q.Row < 2 {
		return fmt.Errorf("quest %s has no sheet row: %w", q.ID, models.ErrValidation)
	}
	table, err := r.client.FetchTable(ctx, models.TableQuests)
	if err != nil {
		return err
	}
	cells := questCells(q)
	// The identifying columns never change after the row exists.
	delete(cells, models.HeaderQuestID)
	delete(cells, models.HeaderSector)
	delete(cells, models.HeaderBoss)
	delete(cells, models.HeaderMinion)
	updates, err := cellsFor(table, q.Row, cells)
	if err != nil {
		return err
	}
	return r.client.UpdateCells(ctx, models.TableQuests, updates)
}

func questCells(q *models.Quest) map[string]interface{} {
	return map[string]interface{}{
		models.HeaderQuestID:       q.ID,
		models.HeaderSector:        q.Sector,
		models.HeaderBoss:          q.Boss,
		models.HeaderMinion:        q.Minion,
		models.HeaderStatus:        string(q.Status),
		models.HeaderProofType:     q.ProofType,
		models.HeaderProofLink:     q.ProofLink,
		models.HeaderSuggestedTask: q.SuggestedTask,
		models.HeaderDateAdded:     q.DateAdded,
		models.HeaderDateCompleted: q.DateCompleted,
		models.HeaderDateResolved:  q.DateResolved,
		models.HeaderFeedback:      q.Feedback,
		models.HeaderDueDate:       q.DueDate,
		models.HeaderSubject:       q.Subject,
		models.HeaderRecurring:     models.FormatBool(q.Recurring),
		models.HeaderReflection:    q.Reflection,
		models.HeaderTimeSpent:     q.TimeSpent,
	}
}

func questFromRow(table *sheets.Table, i int) *models.Quest {
	return &models.Quest{
		Row:           table.SheetRow(i),
		ID:            table.Value(i, models.HeaderQuestID),
		Sector:        table.Value(i, models.HeaderSector),
		Boss:          table.Value(i, models.HeaderBoss),
		Minion:        table.Value(i, models.HeaderMinion),
		Status:        models.QuestStatus(table.Value(i, models.HeaderStatus)),
		ProofType:     table.Value(i, models.HeaderProofType),
		ProofLink:     table.Value(i, models.HeaderProofLink),
		SuggestedTask: table.Value(i, models.HeaderSuggestedTask),
		DateAdded:     table.Value(i, models.HeaderDateAdded),
		DateCompleted: table.Value(i, models.HeaderDateCompleted),
		DateResolved:  table.Value(i, models.HeaderDateResolved),
		Feedback:      table.Value(i, models.HeaderFeedback),
		DueDate:       table.Value(i, models.HeaderDueDate),
		Subject:       table.Value(i, models.HeaderSubject),
		Recurring:     models.ParseBool(table.Value(i, models.HeaderRecurring)),
		Reflection:    table.Value(i, models.HeaderReflection),
		TimeSpent:     atoi(table.Value(i, models.HeaderTimeSpent)),
	}
}
