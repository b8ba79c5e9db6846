package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/search"
)

type UseCase interface {
	// Query satisfies search.Querier.
	Query(ctx context.Context, req search.Request) ([]model.Product, int, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	InvalidateCache(ctx context.Context) error
}
