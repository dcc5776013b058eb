package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := NewCache("", false)
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	ctx := context.Background()
	assert.NoError(t, c.CachePage(ctx, "/chat", false, []byte("<html></html>"), time.Minute))
	assert.NoError(t, c.InvalidatePages(ctx))
	assert.NoError(t, c.Close())

	_, err = c.GetCachedPage(ctx, "/chat", false)
	assert.ErrorIs(t, err, ErrCacheDisabled)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	assert.False(t, c.Enabled())
	assert.NoError(t, c.Close())
}

func TestPageKeySeparatesMenuState(t *testing.T) {
	open := PageKey("/chat", true)
	closed := PageKey("/chat", false)

	assert.NotEqual(t, open, closed)
	assert.Equal(t, "healbuddy:page:open:/chat", open)
	assert.Equal(t, "healbuddy:page:closed:/chat", closed)
}

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := NewCache(mr.Addr(), true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewCacheFailsWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewCache(addr, true)
	assert.Error(t, err)
}

func TestPageRoundTrip(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	require.True(t, c.Enabled())

	_, err := c.GetCachedPage(ctx, "/chat", false)
	assert.ErrorIs(t, err, ErrCacheMiss)

	page := []byte(`<a href="/chat?menu=open">Open menu</a>`)
	require.NoError(t, c.CachePage(ctx, "/chat", false, page, time.Minute))

	got, err := c.GetCachedPage(ctx, "/chat", false)
	require.NoError(t, err)
	assert.Equal(t, page, got)

	_, err = c.GetCachedPage(ctx, "/chat", true)
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.Equal(t, time.Minute, mr.TTL(PageKey("/chat", false)))
	mr.FastForward(time.Minute + time.Second)

	_, err = c.GetCachedPage(ctx, "/chat", false)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInvalidatePagesKeepsOtherKeys(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	for _, route := range []string{"/chat", "/profile", "/emergency"} {
		require.NoError(t, c.CachePage(ctx, route, false, []byte("closed"), 0))
		require.NoError(t, c.CachePage(ctx, route, true, []byte("open"), 0))
	}
	require.NoError(t, mr.Set("session:abc", "keep"))

	require.NoError(t, c.InvalidatePages(ctx))

	assert.Equal(t, []string{"session:abc"}, mr.Keys())
}

func TestGetSurfacesRedisErrors(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.SetError("ERR simulated failure")

	_, err := c.GetCachedPage(context.Background(), "/chat", false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
