package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/metrics"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/search"
	"go.uber.org/zap"
)

const (
	listCachePrefix = "products:list"
	listCacheTTL    = 5 * time.Minute
)

type productUseCase struct {
	repo    product.Repository
	cache   cache.Cache
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

// NewProductUseCase builds the product use case. A nil cache disables list
// caching.
func NewProductUseCase(repo product.Repository, c cache.Cache, m *metrics.Metrics, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:    repo,
		cache:   c,
		metrics: m,
		logger:  log,
	}
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) Query(ctx context.Context, req search.Request) ([]model.Product, int, error) {
	filters, err := dto.FiltersFromRequest(req)
	if err != nil {
		return nil, 0, err
	}
	return uc.ListProducts(ctx, filters)
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	// Results of privileged calls stay out of the shared cache.
	cacheable := uc.cache != nil && !filters.Privileged(uc.repo.Variant())

	var cacheKey string
	if cacheable {
		key, err := cache.HashKey(uc.keyPrefix(), filters)
		if err == nil {
			cacheKey = key
			if products, count, ok := uc.lookup(ctx, cacheKey); ok {
				return products, count, nil
			}
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if data, err := json.Marshal(cachedList{Products: products, Count: count}); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, data, listCacheTTL); err != nil {
				uc.logger.Warn("failed to cache product list", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return products, count, nil
}

func (uc *productUseCase) lookup(ctx context.Context, key string) ([]model.Product, int, bool) {
	val, err := uc.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("product list cache unavailable", zap.Error(err))
		}
		uc.metrics.CacheLookup("products", false)
		return nil, 0, false
	}

	var result cachedList
	if err := json.Unmarshal(val, &result); err != nil {
		uc.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		uc.metrics.CacheLookup("products", false)
		return nil, 0, false
	}
	uc.metrics.CacheLookup("products", true)
	return result.Products, result.Count, true
}

func (uc *productUseCase) keyPrefix() string {
	return listCachePrefix + ":" + string(uc.repo.Variant())
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return uc.repo.FindByID(ctx, id)
}

// InvalidateCache drops every cached list page of this variant.
func (uc *productUseCase) InvalidateCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.DeletePattern(ctx, uc.keyPrefix()+":*")
}
