package services

import (
	"context"
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/repositories"
)

// SearchService powers the admin quick-find box over the Sectors table.
type SearchService struct {
	minions repositories.MinionRepository
}

func NewSearchService(minions repositories.MinionRepository) *SearchService {
	return &SearchService{minions: minions}
}

// Search fuzzy-ranks minions against the query and returns the best hits.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*models.Minion, error) {
	if query == "" {
		return nil, nil
	}
	minions, err := s.minions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	haystack := make([]string, len(minions))
	for i, m := range minions {
		haystack[i] = fmt.Sprintf("%s / %s / %s %s", m.Sector, m.Boss, m.Name, m.Subject)
	}

	matches := fuzzy.Find(query, haystack)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]*models.Minion, 0, len(matches))
	for _, match := range matches {
		results = append(results, minions[match.Index])
	}
	return results, nil
}
