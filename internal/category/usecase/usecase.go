package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/category"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/metrics"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"go.uber.org/zap"
)

const (
	listCacheKey = "categories:all"
	listCacheTTL = 10 * time.Minute
)

type categoryUseCase struct {
	repo    category.Repository
	cache   cache.Cache
	metrics *metrics.Metrics
	logger  logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, c cache.Cache, m *metrics.Metrics, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:    repo,
		cache:   c,
		metrics: m,
		logger:  log,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	if uc.cache != nil {
		val, err := uc.cache.Get(ctx, listCacheKey)
		switch {
		case err == nil:
			var categories []model.Category
			if err := json.Unmarshal(val, &categories); err == nil {
				uc.metrics.CacheLookup("categories", true)
				return categories, nil
			}
			uc.metrics.CacheLookup("categories", false)
		case errors.Is(err, cache.ErrCacheMiss):
			uc.metrics.CacheLookup("categories", false)
		default:
			uc.metrics.CacheLookup("categories", false)
			uc.logger.Warn("category cache unavailable", zap.Error(err))
		}
	}

	categories, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			if err := uc.cache.Set(ctx, listCacheKey, data, listCacheTTL); err != nil {
				uc.logger.Warn("failed to cache categories", zap.Error(err))
			}
		}
	}
	return categories, nil
}

func (uc *categoryUseCase) InvalidateCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.DeletePattern(ctx, listCacheKey)
}
