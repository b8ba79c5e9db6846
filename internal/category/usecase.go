package category

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	// ListCategories satisfies search.CategorySource.
	ListCategories(ctx context.Context) ([]model.Category, error)
	InvalidateCache(ctx context.Context) error
}
