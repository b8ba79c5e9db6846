package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, variant dto.Variant, handler http.HandlerFunc) *HTTPRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(backend.Config{BaseURL: srv.URL, Timeout: 5 * time.Second},
		auth.NewStaticTokenSource("admin-token"), nil, logger.NewNop())
	require.NoError(t, err)
	return NewHTTPRepository(client, variant)
}

func TestFindAll_Routes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		variant   dto.Variant
		filters   dto.ProductFilters
		wantPath  string
		wantQuery map[string]string
		wantAuth  bool
	}{
		{
			name:     "admin all",
			variant:  dto.VariantAdmin,
			filters:  dto.ProductFilters{Kind: search.KindAll, Page: 1, PageSize: 5},
			wantPath: "/product/admin/all/1",
		},
		{
			name:      "admin name",
			variant:   dto.VariantAdmin,
			filters:   dto.ProductFilters{Kind: search.KindName, Keyword: "red shoe", Page: 2, PageSize: 5},
			wantPath:  "/product/admin/name/2",
			wantQuery: map[string]string{"keyword": "red shoe"},
		},
		{
			name:      "admin stock range is privileged",
			variant:   dto.VariantAdmin,
			filters:   dto.ProductFilters{Kind: search.KindStockRange, Lower: 3, Upper: 9, Page: 1, PageSize: 5},
			wantPath:  "/product/admin/stocks/1",
			wantQuery: map[string]string{"lower": "3", "upper": "9"},
			wantAuth:  true,
		},
		{
			name:      "catalog stock range is public",
			variant:   dto.VariantCatalog,
			filters:   dto.ProductFilters{Kind: search.KindStockRange, Lower: 0, Upper: 1, Page: 1, PageSize: 5},
			wantPath:  "/product/stocks/1",
			wantQuery: map[string]string{"lower": "0", "upper": "1"},
		},
		{
			name:     "catalog category",
			variant:  dto.VariantCatalog,
			filters:  dto.ProductFilters{Kind: search.KindCategory, CategoryID: 7, Page: 3, PageSize: 5},
			wantPath: "/product/category/7/3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, tt.variant, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
				for k, v := range tt.wantQuery {
					assert.Equal(t, v, r.URL.Query().Get(k), k)
				}
				if tt.wantAuth {
					assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
				} else {
					assert.Empty(t, r.Header.Get("Authorization"))
				}
				_, _ = w.Write([]byte(`{"amount": 12, "data": [{"id": 1, "name": "shoe", "price": 100, "stocks": 4}]}`))
			})

			filters := tt.filters
			products, total, err := repo.FindAll(context.Background(), &filters)
			require.NoError(t, err)
			assert.Equal(t, 12, total)
			require.Len(t, products, 1)
			assert.Equal(t, "shoe", products[0].Name)
		})
	}
}

func TestFindAll_AcceptsCount(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, dto.VariantAdmin, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"count": 0, "data": null}`))
	})

	products, total, err := repo.FindAll(context.Background(), &dto.ProductFilters{Kind: search.KindAll, Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestFindAll_DecodesAdminSaleList(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, dto.VariantAdmin, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"count": 2, "data": [
			{"id": 1, "name": "sneaker", "price": 50, "stocks": 3, "newproduct": [{"id": 4}], "onsale": [{"id": 2, "discount": 0.5}]},
			{"id": 2, "name": "boot", "price": 80, "stocks": 1, "onsale": []}
		]}`))
	})

	products, total, err := repo.FindAll(context.Background(), &dto.ProductFilters{Kind: search.KindAll, Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, products, 2)

	require.NotNil(t, products[0].OnSale)
	assert.Equal(t, "25", products[0].EffectivePrice().String())
	assert.True(t, products[0].IsNew())
	assert.Nil(t, products[1].OnSale)
	assert.Equal(t, "80", products[1].EffectivePrice().String())
}

func TestFindAll_RejectsMissingTotal(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, dto.VariantCatalog, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	_, _, err := repo.FindAll(context.Background(), &dto.ProductFilters{Kind: search.KindAll, Page: 1, PageSize: 5})
	assert.Error(t, err)
}

func TestFindAll_SurfacesStatusError(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, dto.VariantCatalog, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, _, err := repo.FindAll(context.Background(), &dto.ProductFilters{Kind: search.KindName, Keyword: "x", Page: 1, PageSize: 5})
	var statusErr *backend.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	repo := newRepo(t, dto.VariantCatalog, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/product/42" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id": 42, "name": "lamp", "price": 30, "stocks": 1, "onsale": {"discount": 0.5}}`))
	})

	p, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "lamp", p.Name)
	assert.Equal(t, "15", p.EffectivePrice().String())

	p, err = repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, p)
}
