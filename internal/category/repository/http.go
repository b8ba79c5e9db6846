package repository

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.client.Get(ctx, "category.all", "/category/all", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
