package dto

import (
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/search"
)

// Variant selects between the admin endpoints and the public catalog ones.
type Variant string

const (
	VariantAdmin   Variant = "admin"
	VariantCatalog Variant = "catalog"
)

type ProductFilters struct {
	Kind       search.Kind `json:"kind"`
	Keyword    string      `json:"keyword,omitempty"`
	Lower      int         `json:"lower,omitempty"`
	Upper      int         `json:"upper,omitempty"`
	CategoryID int64       `json:"categoryId,omitempty"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
}

// FiltersFromRequest flattens a search request into the query parameters the
// backend understands.
func FiltersFromRequest(req search.Request) (*ProductFilters, error) {
	p := req.Pagination()
	f := &ProductFilters{Kind: req.Kind(), Page: p.Page, PageSize: p.Size}

	switch r := req.(type) {
	case search.AllRequest:
	case search.NameRequest:
		f.Keyword = r.Keyword
	case search.StockRangeRequest:
		f.Lower = r.Range.Lower
		f.Upper = r.Range.Upper
	case search.CategoryRequest:
		f.CategoryID = r.CategoryID
	default:
		return nil, fmt.Errorf("unsupported search request %T", req)
	}
	return f, nil
}

// Privileged reports whether the call needs a bearer credential.
func (f *ProductFilters) Privileged(v Variant) bool {
	return v == VariantAdmin && f.Kind == search.KindStockRange
}

// ProductPage is one page of a list endpoint. Older endpoints report the
// total as count instead of amount.
type ProductPage struct {
	Amount *int            `json:"amount"`
	Count  *int            `json:"count"`
	Data   []model.Product `json:"data"`
}

func (p *ProductPage) Total() (int, bool) {
	switch {
	case p.Amount != nil:
		return *p.Amount, true
	case p.Count != nil:
		return *p.Count, true
	}
	return 0, false
}
