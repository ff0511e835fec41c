package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryUnreadCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryUnreadCache()

	_, ok, err := c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, c.Set(ctx, 1, 5))

	count, ok, err := c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(5), count)

	// A zero count is still a hit; misses and zeros must stay distinguishable.
	assert.NoError(t, c.Set(ctx, 2, 0))
	count, ok, err = c.Get(ctx, 2)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), count)

	assert.NoError(t, c.Invalidate(ctx, 1))
	_, ok, err = c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, ok)
}
