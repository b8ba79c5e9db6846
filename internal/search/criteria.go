// Package search implements the paginated, filterable result-set
// synchronization used by the catalog and admin product views.
package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Kind string

const (
	KindAll        Kind = "all"
	KindName       Kind = "name"
	KindStockRange Kind = "stocks"
	KindCategory   Kind = "category"
)

var Kinds = []Kind{KindAll, KindName, KindStockRange, KindCategory}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return KindAll, nil
	case "name":
		return KindName, nil
	case "stocks", "stock", "stock_range", "stock-range":
		return KindStockRange, nil
	case "category":
		return KindCategory, nil
	}
	return "", &ValidationError{Kind: Kind(s), Reason: fmt.Sprintf("unknown search kind %q", s)}
}

// Criteria is what the user typed: a kind plus a kind-specific value.
type Criteria struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

type StockRange struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

func (r StockRange) String() string {
	return fmt.Sprintf("%d-%d", r.Lower, r.Upper)
}

var stockRangePattern = regexp.MustCompile(`^\s*(\d+)\s*(?:-\s*(\d+)\s*)?$`)

// ParseStockRange accepts "lower-upper" or a single "n" meaning n-n.
func ParseStockRange(s string) (StockRange, error) {
	m := stockRangePattern.FindStringSubmatch(s)
	if m == nil {
		return StockRange{}, &ValidationError{Kind: KindStockRange, Reason: "stock range must look like [lower]-[upper]"}
	}
	lower, err := strconv.Atoi(m[1])
	if err != nil {
		return StockRange{}, &ValidationError{Kind: KindStockRange, Reason: "stock range bound is too large"}
	}
	upper := lower
	if m[2] != "" {
		if upper, err = strconv.Atoi(m[2]); err != nil {
			return StockRange{}, &ValidationError{Kind: KindStockRange, Reason: "stock range bound is too large"}
		}
	}
	if lower > upper {
		return StockRange{}, &ValidationError{Kind: KindStockRange, Reason: "stock range lower bound exceeds upper bound"}
	}
	return StockRange{Lower: lower, Upper: upper}, nil
}

// ResolveCriteriaForKind derives the input shown after the user switches the
// search kind.
func ResolveCriteriaForKind(kind Kind, prev Criteria, categories []model.Category) Criteria {
	if kind == prev.Kind {
		return prev
	}

	switch kind {
	case KindName:
		if prev.Kind == KindCategory {
			return Criteria{Kind: KindName}
		}
		return Criteria{Kind: KindName, Value: prev.Value}
	case KindStockRange:
		if prev.Kind != KindCategory {
			if _, err := ParseStockRange(prev.Value); err == nil {
				return Criteria{Kind: KindStockRange, Value: prev.Value}
			}
		}
		return Criteria{Kind: KindStockRange}
	case KindCategory:
		if len(categories) > 0 {
			return Criteria{Kind: KindCategory, Value: categories[0].Name}
		}
		return Criteria{Kind: KindCategory}
	default:
		return Criteria{Kind: kind}
	}
}

// resolveCategory matches by name first, then by numeric id.
func resolveCategory(value string, categories []model.Category) (model.Category, bool) {
	value = strings.TrimSpace(value)
	for _, c := range categories {
		if c.Name == value {
			return c, true
		}
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, value) {
			return c, true
		}
	}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		for _, c := range categories {
			if c.ID == id {
				return c, true
			}
		}
	}
	return model.Category{}, false
}
