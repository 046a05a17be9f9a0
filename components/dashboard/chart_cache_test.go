package dashboard

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "<div>chart</div>", nil
	}

	first, err := cache.GetOrRender("bar:abc", render)
	require.NoError(t, err)
	second, err := cache.GetOrRender("bar:abc", render)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheExpiresAndPurges(t *testing.T) {
	cache := NewChartCache(2 * time.Millisecond)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("line:k", render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	cache.Purge()
	assert.Equal(t, 0, cache.Len())

	_, err = cache.GetOrRender("line:k", render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCacheDoesNotStoreFailures(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("pie:x", func() (string, error) {
		return "", errors.New("render failed")
	})
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestConfigHashIsStable(t *testing.T) {
	spec := ChartSpec{Kind: ChartBar, Title: "Stock", Series: []ChartSeries{{Name: "qty", Points: []ChartPoint{{Label: "A", Value: 1}}}}}
	assert.Equal(t, configHash(spec), configHash(spec))
	other := spec
	other.Theme = ThemeDark
	assert.NotEqual(t, configHash(spec), configHash(other))
}

func TestChartCacheSharesConcurrentRenders(t *testing.T) {
	cache := NewChartCache(time.Minute)
	release := make(chan struct{})
	var calls atomic.Int32
	render := func() (string, error) {
		calls.Add(1)
		<-release
		return "<div>shared</div>", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			html, err := cache.GetOrRender("gauge:k", render)
			assert.NoError(t, err)
			results[i] = html
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, html := range results {
		assert.Equal(t, "<div>shared</div>", html)
	}
}

func TestNilChartCacheRenders(t *testing.T) {
	var cache *ChartCache
	html, err := cache.GetOrRender("k", func() (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x", html)
	assert.Zero(t, cache.Len())
}
