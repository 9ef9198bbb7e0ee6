package repositories

import (
	"context"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

// BadgeRepository is append-only. Earned badges are never removed or
// overwritten; the evaluator only ever appends rows for IDs not already
// present.
type BadgeRepository interface {
	GetAll(ctx context.Context) ([]*models.Badge, error)
	Append(ctx context.Context, badges []*models.Badge) error
}

type badgeRepository struct {
	client sheets.Client
}

func NewBadgeRepository(client sheets.Client) BadgeRepository {
	return &badgeRepository{client: client}
}

func (r *badgeRepository) GetAll(ctx context.Context) ([]*models.Badge, error) {
	table, err := r.client.FetchTable(ctx, models.TableBadges)
	if err != nil {
		return nil, err
	}
	badges := make([]*models.Badge, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		badges = append(badges, &models.Badge{
			Row:        table.SheetRow(i),
			ID:         table.Value(i, models.HeaderBadgeID),
			Category:   models.BadgeCategory(table.Value(i, models.HeaderCategory)),
			Name:       table.Value(i, models.HeaderName),
			DateEarned: table.Value(i, models.HeaderDateEarned),
		})
	}
	return badges, nil
}

func (r *badgeRepository) Append(ctx context.Context, badges []*models.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	table, err := r.client.FetchTable(ctx, models.TableBadges)
	if err != nil {
		return err
	}
	rows := make([][]interface{}, 0, len(badges))
	for _, b := range badges {
		rows = append(rows, rowFor(table, map[string]interface{}{
			models.HeaderBadgeID:    b.ID,
			models.HeaderCategory:   string(b.Category),
			models.HeaderName:       b.Name,
			models.HeaderDateEarned: b.DateEarned,
		}))
	}
	return r.client.AppendRows(ctx, models.TableBadges, rows)
}
