package search

import (
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCategories = []model.Category{
	{ID: 7, Name: "electronics-id"},
	{ID: 8, Name: "Shoes"},
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	cases := map[string]Kind{
		"all":         KindAll,
		"NAME":        KindName,
		"stocks":      KindStockRange,
		"stock_range": KindStockRange,
		"category":    KindCategory,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("price")
	assert.True(t, IsValidation(err))
}

func TestParseStockRange(t *testing.T) {
	t.Parallel()

	valid := map[string]StockRange{
		"10-20":   {Lower: 10, Upper: 20},
		" 0 - 5 ": {Lower: 0, Upper: 5},
		"7":       {Lower: 7, Upper: 7},
		"100-100": {Lower: 100, Upper: 100},
	}
	for in, want := range valid {
		got, err := ParseStockRange(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "10-", "-5", "1-2-3", "20-10", "1.5-3", "99999999999999999999-1"} {
		_, err := ParseStockRange(in)
		assert.True(t, IsValidation(err), in)
	}
}

func TestResolveCriteriaForKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		prev Criteria
		want Criteria
	}{
		{"same kind keeps input", KindName, Criteria{KindName, "shoe"}, Criteria{KindName, "shoe"}},
		{"category defaults to first", KindCategory, Criteria{KindName, "shoe"}, Criteria{KindCategory, "electronics-id"}},
		{"stock keeps numeric", KindStockRange, Criteria{KindName, "5-10"}, Criteria{KindStockRange, "5-10"}},
		{"stock clears text", KindStockRange, Criteria{KindName, "shoe"}, Criteria{KindStockRange, ""}},
		{"stock ignores category value", KindStockRange, Criteria{KindCategory, "12"}, Criteria{KindStockRange, ""}},
		{"name keeps free text", KindName, Criteria{KindStockRange, "3-4"}, Criteria{KindName, "3-4"}},
		{"name drops category", KindName, Criteria{KindCategory, "Shoes"}, Criteria{KindName, ""}},
		{"all clears", KindAll, Criteria{KindName, "shoe"}, Criteria{KindAll, ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCriteriaForKind(tt.kind, tt.prev, testCategories))
		})
	}

	assert.Equal(t, Criteria{Kind: KindCategory}, ResolveCriteriaForKind(KindCategory, Criteria{Kind: KindName}, nil))
}

func TestResolveCategory(t *testing.T) {
	t.Parallel()

	c, ok := resolveCategory("shoes", testCategories)
	require.True(t, ok)
	assert.Equal(t, int64(8), c.ID)

	c, ok = resolveCategory("7", testCategories)
	require.True(t, ok)
	assert.Equal(t, "electronics-id", c.Name)

	_, ok = resolveCategory("garden", testCategories)
	assert.False(t, ok)
}
