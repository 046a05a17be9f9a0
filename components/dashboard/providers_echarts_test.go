package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSpec(kind ChartKind) ChartSpec {
	return ChartSpec{
		Kind:  kind,
		Title: "Orders",
		XAxis: []string{"Mon", "Tue", "Wed"},
		Series: []ChartSeries{
			{Name: "Received", Points: []ChartPoint{{Label: "Mon", Value: 280}, {Label: "Tue", Value: 300}, {Label: "Wed", Value: 350}}},
		},
	}
}

func TestEChartsRendererKinds(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil))
	for _, kind := range []ChartKind{ChartBar, ChartLine, ChartPie, ChartGauge} {
		html, err := renderer.RenderChart(context.Background(), sampleSpec(kind))
		require.NoError(t, err, "kind %s", kind)
		assert.Contains(t, html, "echarts", "kind %s", kind)
	}
}

func TestEChartsRendererRejectsUnknownKind(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer()
	_, err := renderer.RenderChart(context.Background(), sampleSpec("bubble"))
	require.Error(t, err)
}

func TestEChartsRendererRequiresSeries(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer()
	_, err := renderer.RenderChart(context.Background(), ChartSpec{Kind: ChartBar, Title: "Empty"})
	require.Error(t, err)
}

func TestEChartsRendererHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEChartsRenderer().RenderChart(ctx, sampleSpec(ChartBar))
	require.ErrorIs(t, err, context.Canceled)
}

type countingCache struct {
	inner *ChartCache
	calls atomic.Int32
}

func (c *countingCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	return c.inner.GetOrRender(key, func() (string, error) {
		c.calls.Add(1)
		return render()
	})
}

func TestEChartsRendererUsesCache(t *testing.T) {
	t.Parallel()
	cache := &countingCache{inner: NewChartCache(time.Minute)}
	renderer := NewEChartsRenderer(WithChartCache(cache))
	spec := sampleSpec(ChartLine)

	first, err := renderer.RenderChart(context.Background(), spec)
	require.NoError(t, err)
	second, err := renderer.RenderChart(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), cache.calls.Load())

	spec.Theme = ThemeDark
	_, err = renderer.RenderChart(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, int32(2), cache.calls.Load())
}

func TestEChartsRendererThemeAndAssetsHost(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil), WithChartAssetsHost("https://cdn.example.com/echarts"))
	spec := sampleSpec(ChartBar)
	spec.Theme = ThemeDark

	html, err := renderer.RenderChart(context.Background(), spec)
	require.NoError(t, err)
	assert.Contains(t, html, types.ThemeChalk)
	assert.Contains(t, html, "https://cdn.example.com/echarts/")
}

func TestChartThemeFor(t *testing.T) {
	assert.Equal(t, types.ThemeWesteros, ChartThemeFor(ThemeLight))
	assert.Equal(t, types.ThemeChalk, ChartThemeFor(ThemeDark))
	assert.Equal(t, types.ThemeWesteros, ChartThemeFor(""))
}

func TestInferredAxisLabels(t *testing.T) {
	labels := inferredAxisLabels([]ChartSeries{
		{Name: "a", Points: []ChartPoint{{Value: 1}}},
		{Name: "b", Points: []ChartPoint{{Label: "x", Value: 1}, {Value: 2}}},
	})
	assert.Equal(t, []string{"x", "Item 2"}, labels)
}
