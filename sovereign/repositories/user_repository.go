package repositories

import (
	"context"
	"fmt"

	"github.com/sovereignhud/sovereign-hud/sovereign/models"
	"github.com/sovereignhud/sovereign-hud/sovereign/sheets"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]*models.User, error)
	FindByToken(ctx context.Context, token string) (*models.User, error)
}

type userRepository struct {
	client sheets.Client
}

func NewUserRepository(client sheets.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	table, err := r.client.FetchTable(ctx, models.TableUsers)
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		users = append(users, &models.User{
			Row:   table.SheetRow(i),
			Name:  table.Value(i, models.HeaderName),
			Role:  models.Role(table.Value(i, models.HeaderRole)),
			Token: table.Value(i, models.HeaderToken),
		})
	}
	return users, nil
}

func (r *userRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token: %w", models.ErrNotFound)
	}
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Token == token {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user token: %w", models.ErrNotFound)
}
