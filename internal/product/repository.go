package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type Repository interface {
	// Variant reports which endpoint family the repository talks to.
	Variant() dto.Variant
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
}
