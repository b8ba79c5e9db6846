package catalog

import (
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []model.Product {
	out := make([]model.Product, n)
	for i := range out {
		out[i] = model.Product{ID: int64(i + 1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	pages := Paginate(items(7), 3)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 3)
	assert.Equal(t, int64(4), pages[1][0].Product.ID)

	last := pages[2]
	require.Len(t, last, 3)
	assert.Equal(t, int64(7), last[0].Product.ID)
	assert.False(t, last[0].Placeholder)
	assert.True(t, last[1].Placeholder)
	assert.True(t, last[2].Placeholder)
}

func TestPaginate_FirstPageIsNotPadded(t *testing.T) {
	t.Parallel()

	pages := Paginate(items(2), 3)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0], 2)

	assert.Empty(t, Paginate(nil, 3))
	assert.Len(t, Paginate(items(4), 0), 2)
}

func TestCarousel_Show(t *testing.T) {
	t.Parallel()

	c := NewCarousel(items(7), 3)
	assert.Equal(t, 1, c.Current())

	transition, err := c.Show(3)
	require.NoError(t, err)
	assert.Equal(t, "page1to3", transition)
	assert.Equal(t, 3, c.Current())
	assert.Len(t, c.Visible(), 3)

	_, err = c.Show(4)
	assert.Error(t, err)
	assert.Equal(t, 3, c.Current())

	assert.Nil(t, NewCarousel(nil, 3).Visible())
}
