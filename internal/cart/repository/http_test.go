package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, mux *http.ServeMux) *HTTPRepository {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(backend.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil, nil, logger.NewNop())
	require.NoError(t, err)
	return NewHTTPRepository(client)
}

func TestHTTPRepository_Lists(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /wishlist/2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 5, "product": {"id": 10, "name": "lamp", "price": 30, "stocks": 2}}]`))
	})
	mux.HandleFunc("GET /cart/2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 6, "product": {"id": 11, "name": "desk", "price": 90, "stocks": 1}}]`))
	})
	mux.HandleFunc("GET /cart/info/2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	repo := newRepo(t, mux)
	ctx := context.Background()

	wishlist, err := repo.ListWishlist(ctx, 2)
	require.NoError(t, err)
	require.Len(t, wishlist, 1)
	assert.Equal(t, "lamp", wishlist[0].Product.Name)

	items, err := repo.ListCart(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(6), items[0].ID)

	info, err := repo.ListCartInfo(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, info)
}

func TestHTTPRepository_AddAndDelete(t *testing.T) {
	t.Parallel()

	var deleted []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /wishlist", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int64
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]int64{"userId": 2, "productId": 10}, body)
		_, _ = w.Write([]byte(`{"id": 8, "product": {"id": 10, "name": "lamp"}}`))
	})
	mux.HandleFunc("POST /cart", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "out of stock", http.StatusConflict)
	})
	mux.HandleFunc("DELETE /cart/6", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /wishlist/8", func(w http.ResponseWriter, r *http.Request) {
		deleted = append(deleted, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	repo := newRepo(t, mux)
	ctx := context.Background()

	item, err := repo.AddWishItem(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(8), item.ID)

	_, err = repo.AddCartItem(ctx, 2, 10)
	var statusErr *backend.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)

	require.NoError(t, repo.DeleteCartItem(ctx, 6))
	require.NoError(t, repo.DeleteWishItem(ctx, 8))
	assert.Equal(t, []string{"/cart/6", "/wishlist/8"}, deleted)
}
