package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, tokens auth.TokenSource, m *metrics.Metrics) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, tokens, m, logger.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{}, nil, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestClient_GetDecodesJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/product/admin/name/2", r.URL.Path)
		assert.Equal(t, "shoe", r.URL.Query().Get("keyword"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"amount": 3}`))
	}))
	defer srv.Close()

	m := metrics.New()
	c := newTestClient(t, srv, nil, m)

	var out struct {
		Amount int `json:"amount"`
	}
	err := c.Get(context.Background(), "product.name", "/product/admin/name/2", url.Values{"keyword": {"shoe"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Amount)
	n, err := testutil.GatherAndCount(m.Registry(), metrics.MetricBackendRequestsTotal)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClient_PathSegmentsAreEscaped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/admin/category/home & garden/1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, nil, nil)
	err := c.Get(context.Background(), "", "/product/admin/category/"+Segment("home & garden")+"/1", nil, nil)
	require.NoError(t, err)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom\n"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, nil, nil)
	err := c.Get(context.Background(), "x", "/x", nil, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "boom", statusErr.Body)
}

func TestClient_PostSendsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"id": 9}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, nil, nil)
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, c.Post(context.Background(), "wishlist.add", "/wishlist", map[string]int{"userId": 2}, &out))
	assert.Equal(t, int64(9), out.ID)
}

func TestClient_PrivilegedRequests(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, auth.NewStaticTokenSource("admin-token"), nil)
	err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/secure", Privileged: true}, nil)
	require.NoError(t, err)

	anon := newTestClient(t, srv, nil, nil)
	err = anon.Do(context.Background(), Request{Method: http.MethodGet, Path: "/secure", Privileged: true}, nil)
	assert.ErrorIs(t, err, auth.ErrNoCredential)
}

func TestClient_DecodeFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, nil, nil)
	var out map[string]any
	err := c.Get(context.Background(), "x", "/x", nil, &out)
	assert.ErrorContains(t, err, "failed to decode")
}

func TestClient_RateLimiterHonoursContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, RateLimit: 0.001, RateBurst: 1}, nil, nil, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, c.Get(context.Background(), "x", "/x", nil, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = c.Get(ctx, "x", "/x", nil, nil)
	assert.ErrorContains(t, err, "rate limiter")
}
