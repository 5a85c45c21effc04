package resultcache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/engine/resultcache"
)

func entryAt(sec int64) domain.CacheEntry {
	return domain.CacheEntry{ProducedAt: time.Unix(sec, 0)}
}

func keys(entries []domain.StoredEntry) []domain.WorkingDirectoryKey {
	out := make([]domain.WorkingDirectoryKey, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := resultcache.New(capacity)
		require.ErrorContains(t, err, domain.ErrInvalidCacheCapacity.Error())
	}
}

func TestCache_GetPut(t *testing.T) {
	c, err := resultcache.New(2)
	require.NoError(t, err)

	_, ok := c.Get("/a")
	assert.False(t, ok)

	c.Put("/a", entryAt(1))
	got, ok := c.Get("/a")
	require.True(t, ok)
	assert.Equal(t, time.Unix(1, 0), got.ProducedAt)

	c.Put("/a", entryAt(2))
	got, ok = c.Get("/a")
	require.True(t, ok)
	assert.Equal(t, time.Unix(2, 0), got.ProducedAt)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Capacity())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := resultcache.New(3)
	require.NoError(t, err)

	c.Put("/a", entryAt(1))
	c.Put("/b", entryAt(2))
	c.Put("/c", entryAt(3))

	// Touch /a so /b becomes the eviction candidate.
	_, ok := c.Get("/a")
	require.True(t, ok)

	c.Put("/d", entryAt(4))

	assert.Equal(t, 3, c.Len())
	_, ok = c.Get("/b")
	assert.False(t, ok)
	assert.Equal(t, []domain.WorkingDirectoryKey{"/d", "/a", "/c"}, keys(c.Entries()))
}

func TestCache_ReplaceDoesNotEvict(t *testing.T) {
	c, err := resultcache.New(2)
	require.NoError(t, err)

	c.Put("/a", entryAt(1))
	c.Put("/b", entryAt(2))
	c.Put("/a", entryAt(3))

	assert.Equal(t, []domain.WorkingDirectoryKey{"/a", "/b"}, keys(c.Entries()))
}

func TestCache_CapacityOne(t *testing.T) {
	c, err := resultcache.New(1)
	require.NoError(t, err)

	for i := range 5 {
		c.Put(domain.WorkingDirectoryKey(fmt.Sprintf("/k%d", i)), entryAt(int64(i)))
		assert.Equal(t, 1, c.Len())
	}
	assert.Equal(t, []domain.WorkingDirectoryKey{"/k4"}, keys(c.Entries()))
}

func TestCache_PutIfNewer(t *testing.T) {
	c, err := resultcache.New(2)
	require.NoError(t, err)

	assert.True(t, c.PutIfNewer("/a", entryAt(5)), "empty slot")
	assert.False(t, c.PutIfNewer("/a", entryAt(5)), "same run")
	assert.False(t, c.PutIfNewer("/a", entryAt(3)), "older run")

	got, ok := c.Get("/a")
	require.True(t, ok)
	assert.Equal(t, entryAt(5).ProducedAt, got.ProducedAt)

	assert.True(t, c.PutIfNewer("/a", entryAt(7)))
	got, _ = c.Get("/a")
	assert.Equal(t, entryAt(7).ProducedAt, got.ProducedAt)
}

func TestCache_PutIfNewerTouchesRecency(t *testing.T) {
	c, err := resultcache.New(2)
	require.NoError(t, err)

	c.Put("/a", entryAt(5))
	c.Put("/b", entryAt(5))
	assert.False(t, c.PutIfNewer("/a", entryAt(1)))

	c.Put("/c", entryAt(5))
	assert.Equal(t, []domain.WorkingDirectoryKey{"/c", "/a"}, keys(c.Entries()))
}

func TestCache_Restore(t *testing.T) {
	src, err := resultcache.New(3)
	require.NoError(t, err)
	src.Put("/a", entryAt(1))
	src.Put("/b", entryAt(2))
	src.Put("/c", entryAt(3))

	dst, err := resultcache.New(2)
	require.NoError(t, err)
	dst.Restore(src.Entries())

	assert.Equal(t, []domain.WorkingDirectoryKey{"/c", "/b"}, keys(dst.Entries()))
}

func TestCache_ConcurrentAccessNeverExceedsCapacity(t *testing.T) {
	const (
		capacity   = 8
		goroutines = 16
		iterations = 500
	)

	c, err := resultcache.New(capacity)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range iterations {
				key := domain.WorkingDirectoryKey(fmt.Sprintf("/k%d", (g*iterations+i)%(capacity*3)))
				c.Put(key, entryAt(int64(i)))
				c.Get(key)
				assert.LessOrEqual(t, c.Len(), capacity)
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, capacity, c.Len())
	assert.Len(t, c.Entries(), capacity)
}
