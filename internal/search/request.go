package search

import (
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Paging is the page window shared by every request variant.
type Paging struct {
	Page int `json:"page"`
	Size int `json:"pageSize"`
}

func (p Paging) Pagination() Paging { return p }

// Request is the backend query shape for one committed search. The set of
// variants is closed: AllRequest, NameRequest, StockRangeRequest, CategoryRequest.
type Request interface {
	Kind() Kind
	Pagination() Paging
	WithPage(page int) Request
	isRequest()
}

type AllRequest struct {
	Paging
}

type NameRequest struct {
	Paging
	Keyword string `json:"keyword"`
}

// StockRangeRequest needs a bearer credential on the admin endpoints.
type StockRangeRequest struct {
	Paging
	Range StockRange `json:"range"`
}

type CategoryRequest struct {
	Paging
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"-"`
}

func (AllRequest) Kind() Kind        { return KindAll }
func (NameRequest) Kind() Kind       { return KindName }
func (StockRangeRequest) Kind() Kind { return KindStockRange }
func (CategoryRequest) Kind() Kind   { return KindCategory }

func (r AllRequest) WithPage(page int) Request        { r.Page = page; return r }
func (r NameRequest) WithPage(page int) Request       { r.Page = page; return r }
func (r StockRangeRequest) WithPage(page int) Request { r.Page = page; return r }
func (r CategoryRequest) WithPage(page int) Request   { r.Page = page; return r }

func (AllRequest) isRequest()        {}
func (NameRequest) isRequest()       {}
func (StockRangeRequest) isRequest() {}
func (CategoryRequest) isRequest()   {}

// BuildRequest validates c and maps it to its request variant. Submission and
// page changes both go through here, so the two paths cannot diverge.
func BuildRequest(c Criteria, page, size int, categories []model.Category) (Request, error) {
	paging := Paging{Page: page, Size: size}

	switch c.Kind {
	case KindAll:
		return AllRequest{Paging: paging}, nil
	case KindName:
		keyword := strings.TrimSpace(c.Value)
		if keyword == "" {
			return AllRequest{Paging: paging}, nil
		}
		return NameRequest{Paging: paging, Keyword: keyword}, nil
	case KindStockRange:
		r, err := ParseStockRange(c.Value)
		if err != nil {
			return nil, err
		}
		return StockRangeRequest{Paging: paging, Range: r}, nil
	case KindCategory:
		cat, ok := resolveCategory(c.Value, categories)
		if !ok {
			return nil, &ValidationError{Kind: KindCategory, Reason: "unknown category " + strconv.Quote(c.Value)}
		}
		return CategoryRequest{Paging: paging, CategoryID: cat.ID, CategoryName: cat.Name}, nil
	default:
		return nil, &ValidationError{Kind: c.Kind, Reason: "unknown search kind " + strconv.Quote(string(c.Kind))}
	}
}

// TotalPages is ceil(amount / pageSize); non-positive amounts yield 0.
func TotalPages(amount, pageSize int) int {
	if amount <= 0 || pageSize <= 0 {
		return 0
	}
	return (amount + pageSize - 1) / pageSize
}
