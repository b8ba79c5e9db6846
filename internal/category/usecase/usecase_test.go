package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/cache"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRepo struct {
	categories []model.Category
	err        error
	calls      int
}

func (f *fakeRepo) FindAll(context.Context) ([]model.Category, error) {
	f.calls++
	return f.categories, f.err
}

type mapCache struct {
	data   map[string][]byte
	getErr error
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mapCache) DeletePattern(_ context.Context, pattern string) error {
	delete(m.data, pattern)
	return nil
}

var categories = []model.Category{{ID: 7, Name: "electronics-id"}, {ID: 8, Name: "Shoes"}}

func TestListCategories_CachesListing(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{categories: categories}
	c := &mapCache{data: map[string][]byte{}}
	uc := NewCategoryUseCase(repo, c, nil, logger.NewNop())

	for range 3 {
		got, err := uc.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, categories, got)
	}
	assert.Equal(t, 1, repo.calls)
	assert.Contains(t, c.data, "categories:all")

	require.NoError(t, uc.InvalidateCache(context.Background()))
	_, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestListCategories_CacheFailureFallsBack(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	repo := &fakeRepo{categories: categories}
	c := &mapCache{data: map[string][]byte{}, getErr: errors.New("dial tcp: refused")}
	uc := NewCategoryUseCase(repo, c, nil, logger.FromZap(zap.New(core)))

	got, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, categories, got)
	assert.Equal(t, 1, logs.FilterMessage("category cache unavailable").Len())
}

func TestListCategories_RepositoryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("down")
	uc := NewCategoryUseCase(&fakeRepo{err: boom}, nil, nil, logger.NewNop())

	_, err := uc.ListCategories(context.Background())
	assert.ErrorIs(t, err, boom)
}
