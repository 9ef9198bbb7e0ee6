package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

type MinionRepository interface {
	GetAll(ctx context.Context) ([]*models.Minion, error)

	// FindByKey returns the first row matching the key. Duplicate rows for
	// the same key are silently ignored beyond the first.
	FindByKey(ctx context.Context, key models.MinionKey) (*models.Minion, error)

	Append(ctx context.Context, minions []*models.Minion) error

	// Update rewrites the mutable cells of the minion's row. The four stat
	// weight columns are spreadsheet formulas and are never written.
	Update(ctx context.Context, m *models.Minion) error
}

type minionRepository struct {
	client sheets.Client
}

func NewMinionRepository(client sheets.Client) MinionRepository {
	return &minionRepository{client: client}
}

func (r *minionRepository) GetAll(ctx context.Context) ([]*models.Minion, error) {
	table, err := r.client.FetchTable(ctx, models.TableSectors)
	if err != nil {
		return nil, err
	}
	minions := make([]*models.Minion, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		minions = append(minions, minionFromRow(table, i))
	}
	return minions, nil
}

func (r *minionRepository) FindByKey(ctx context.Context, key models.MinionKey) (*models.Minion, error) {
	minions, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range minions {
		if m.Key() == key {
			return m, nil
		}
	}
	return nil, fmt.Errorf("minion %s: %w", key, models.ErrNotFound)
}

func (r *minionRepository) Append(ctx context.Context, minions []*models.Minion) error {
	if len(minions) == 0 {
		return nil
	}
	table, err := r.client.FetchTable(ctx, models.TableSectors)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(minions))
	for _, m := range minions {
		rows = append(rows, rowFor(table, map[string]interface{}{
			models.HeaderSector:             m.Sector,
			models.HeaderBoss:               m.Boss,
			models.HeaderMinion:             m.Name,
			models.HeaderStatus:             string(m.Status),
			models.HeaderImpact:             m.Impact,
			models.HeaderSubject:            m.Subject,
			models.HeaderRecurring:          models.FormatBool(m.Recurring),
			models.HeaderSurvival:           models.FormatBool(m.Survival),
			models.HeaderPrerequisite:       m.Prerequisite,
			models.HeaderQuestStatus:        string(m.QuestStatus),
			models.HeaderDateAdded:          m.DateAdded,
			models.HeaderDateQuestCompleted: m.DateQuestCompleted,
		}))
	}
	return r.client.AppendRows(ctx, models.TableSectors, rows)
}

func (r *minionRepository) Update(ctx context.Context, m *models.Minion) error {
	if m.Row < 2 {
		return fmt.Errorf("minion %s has no sheet row: %w", m.Key(), models.ErrValidation)
	}
	table, err := r.client.FetchTable(ctx, models.TableSectors)
	if err != nil {
		return err
	}
	updates, err := cellsFor(table, m.Row, map[string]interface{}{
		models.HeaderStatus:             string(m.Status),
		models.HeaderImpact:             m.Impact,
		models.HeaderSubject:            m.Subject,
		models.HeaderRecurring:          models.FormatBool(m.Recurring),
		models.HeaderSurvival:           models.FormatBool(m.Survival),
		models.HeaderPrerequisite:       m.Prerequisite,
		models.HeaderQuestStatus:        string(m.QuestStatus),
		models.HeaderDateQuestAdded:     m.DateQuestAdded,
		models.HeaderDateQuestCompleted: m.DateQuestCompleted,
	})
	if err != nil {
		return err
	}
	return r.client.UpdateCells(ctx, models.TableSectors, updates)
}

func minionFromRow(table *sheets.Table, i int) *models.Minion {
	return &models.Minion{
		Row:                table.SheetRow(i),
		Sector:             table.Value(i, models.HeaderSector),
		Boss:               table.Value(i, models.HeaderBoss),
		Name:               table.Value(i, models.HeaderMinion),
		Status:             models.MinionStatus(table.Value(i, models.HeaderStatus)),
		Impact:             atoi(table.Value(i, models.HeaderImpact)),
		Intelligence:       atoi(table.Value(i, models.HeaderIntelligence)),
		Stamina:            atoi(table.Value(i, models.HeaderStamina)),
		Tempo:              atoi(table.Value(i, models.HeaderTempo)),
		Reputation:         atoi(table.Value(i, models.HeaderReputation)),
		Subject:            table.Value(i, models.HeaderSubject),
		Recurring:          models.ParseBool(table.Value(i, models.HeaderRecurring)),
		Survival:           models.ParseBool(table.Value(i, models.HeaderSurvival)),
		Prerequisite:       table.Value(i, models.HeaderPrerequisite),
		QuestStatus:        models.QuestStatus(table.Value(i, models.HeaderQuestStatus)),
		DateAdded:          table.Value(i, models.HeaderDateAdded),
		DateQuestAdded:     table.Value(i, models.HeaderDateQuestAdded),
		DateQuestCompleted: table.Value(i, models.HeaderDateQuestCompleted),
	}
}

// rowFor builds an append row aligned to the table's live header order.
func rowFor(table *sheets.Table, values map[string]interface{}) []interface{} {
	row := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		if v, ok := values[h]; ok {
			row[i] = v
		} else {
			row[i] = ""
		}
	}
	return row
}

// cellsFor builds single-cell updates for a sheet row. Headers missing from
// the live sheet are skipped rather than failing the whole write; schema
// migration adds them on the next startup.
func cellsFor(table *sheets.Table, sheetRow int, values map[string]interface{}) ([]sheets.CellUpdate, error) {
	updates := make([]sheets.CellUpdate, 0, len(values))
	for _, h := range table.Headers {
		v, ok := values[h]
		if !ok {
			continue
		}
		updates = append(updates, sheets.Cell(table.Name, table.Col(h), sheetRow, v))
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no writable columns present in %s", table.Name)
	}
	return updates, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
