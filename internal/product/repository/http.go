package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/backend"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/internal/search"
)

type HTTPRepository struct {
	client  *backend.Client
	variant dto.Variant
}

func NewHTTPRepository(client *backend.Client, variant dto.Variant) *HTTPRepository {
	return &HTTPRepository{client: client, variant: variant}
}

func (r *HTTPRepository) Variant() dto.Variant {
	return r.variant
}

func (r *HTTPRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	req, err := r.route(f)
	if err != nil {
		return nil, 0, err
	}

	var page dto.ProductPage
	if err := r.client.Do(ctx, req, &page); err != nil {
		return nil, 0, err
	}

	total, ok := page.Total()
	if !ok {
		return nil, 0, fmt.Errorf("%s: response carries neither amount nor count", req.Endpoint)
	}
	products := page.Data
	if products == nil {
		products = []model.Product{}
	}
	return products, total, nil
}

// route maps the filters to exactly one endpoint.
func (r *HTTPRepository) route(f *dto.ProductFilters) (backend.Request, error) {
	prefix := "/product"
	if r.variant == dto.VariantAdmin {
		prefix = "/product/admin"
	}
	page := strconv.Itoa(f.Page)
	query := url.Values{"pageSize": {strconv.Itoa(f.PageSize)}}

	var path string
	switch f.Kind {
	case search.KindAll:
		path = prefix + "/all/" + page
	case search.KindName:
		path = prefix + "/name/" + page
		query.Set("keyword", f.Keyword)
	case search.KindStockRange:
		path = prefix + "/stocks/" + page
		query.Set("lower", strconv.Itoa(f.Lower))
		query.Set("upper", strconv.Itoa(f.Upper))
	case search.KindCategory:
		path = prefix + "/category/" + backend.Segment(f.CategoryID) + "/" + page
	default:
		return backend.Request{}, fmt.Errorf("unsupported search kind %q", f.Kind)
	}

	return backend.Request{
		Endpoint:   fmt.Sprintf("product.%s.%s", r.variant, f.Kind),
		Method:     http.MethodGet,
		Path:       path,
		Query:      query,
		Privileged: f.Privileged(r.variant),
	}, nil
}

func (r *HTTPRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.client.Get(ctx, "product.get", "/product/"+backend.Segment(id), nil, &product)
	if err != nil {
		var statusErr *backend.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}
