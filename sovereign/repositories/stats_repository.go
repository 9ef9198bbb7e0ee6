package repositories

import (
	"context"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

// StatsRepository reads the Command_Center sheet. Level strings there are
// produced by spreadsheet formulas; this side never writes them.
type StatsRepository interface {
	GetAll(ctx context.Context) ([]*models.StatSnapshot, error)
}

// DefinitionRepository reads the glossary shown on the dashboard.
type DefinitionRepository interface {
	GetAll(ctx context.Context) ([]*models.Definition, error)
}

type statsRepository struct {
	client sheets.Client
}

func NewStatsRepository(client sheets.Client) StatsRepository {
	return &statsRepository{client: client}
}

func (r *statsRepository) GetAll(ctx context.Context) ([]*models.StatSnapshot, error) {
	table, err := r.client.FetchTable(ctx, models.TableCommandCenter)
	if err != nil {
		return nil, err
	}
	stats := make([]*models.StatSnapshot, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		stats = append(stats, &models.StatSnapshot{
			Row:          table.SheetRow(i),
			Stat:         table.Value(i, models.HeaderStat),
			CurrentLevel: table.Value(i, models.HeaderCurrentLevel),
			TotalXP:      atoi(table.Value(i, models.HeaderTotalXP)),
		})
	}
	return stats, nil
}

type definitionRepository struct {
	client sheets.Client
}

func NewDefinitionRepository(client sheets.Client) DefinitionRepository {
	return &definitionRepository{client: client}
}

func (r *definitionRepository) GetAll(ctx context.Context) ([]*models.Definition, error) {
	table, err := r.client.FetchTable(ctx, models.TableDefinitions)
	if err != nil {
		return nil, err
	}
	defs := make([]*models.Definition, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		defs = append(defs, &models.Definition{
			Row:        table.SheetRow(i),
			Term:       table.Value(i, models.HeaderTerm),
			Definition: table.Value(i, models.HeaderDefinition),
		})
	}
	return defs, nil
}
