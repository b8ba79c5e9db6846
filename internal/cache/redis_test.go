package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashKey_StableAndPrefixed(t *testing.T) {
	t.Parallel()

	type filters struct {
		Kind string
		Page int
	}

	a, err := HashKey("products:list", filters{Kind: "name", Page: 1})
	require.NoError(t, err)
	b, err := HashKey("products:list", filters{Kind: "name", Page: 1})
	require.NoError(t, err)
	c, err := HashKey("products:list", filters{Kind: "name", Page: 2})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "products:list:"))
	assert.Len(t, strings.TrimPrefix(a, "products:list:"), 32)
}

func TestHashKey_UnmarshalableValue(t *testing.T) {
	t.Parallel()

	_, err := HashKey("x", make(chan int))
	assert.Error(t, err)
}
