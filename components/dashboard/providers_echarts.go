package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ChartKind selects the echarts chart type.
type ChartKind string

const (
	ChartBar   ChartKind = "bar"
	ChartLine  ChartKind = "line"
	ChartPie   ChartKind = "pie"
	ChartGauge ChartKind = "gauge"
)

// DefaultEChartsAssetsHost serves the echarts runtime when no host is configured.
const DefaultEChartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// ChartSpec is everything needed to draw one chart.
type ChartSpec struct {
	Kind     ChartKind     `json:"kind"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	XAxis    []string      `json:"x_axis,omitempty"`
	Series   []ChartSeries `json:"series"`
	Theme    Theme         `json:"theme"`
	Height   int           `json:"height,omitempty"`
}

// ChartSeries represents a set of values plotted for a given legend entry.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartPoint represents an individual value (optionally labeled).
type ChartPoint struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
}

// ChartRenderer turns a ChartSpec into embeddable HTML.
type ChartRenderer interface {
	RenderChart(ctx context.Context, spec ChartSpec) (string, error)
}

// EChartsRenderer renders server-side chart HTML with go-echarts.
type EChartsRenderer struct {
	cache      RenderCache
	assetsHost string
}

// EChartsOption customizes renderer behavior.
type EChartsOption func(*EChartsRenderer)

// WithChartCache injects a render cache. A nil cache disables caching.
func WithChartCache(cache RenderCache) EChartsOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsOption {
	return func(r *EChartsRenderer) {
		if host = strings.TrimSpace(host); host != "" {
			r.assetsHost = ensureTrailingSlash(host)
		}
	}
}

// NewEChartsRenderer builds a renderer with a five minute cache.
func NewEChartsRenderer(options ...EChartsOption) *EChartsRenderer {
	r := &EChartsRenderer{
		cache:      NewChartCache(5 * time.Minute),
		assetsHost: DefaultEChartsAssetsHost,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

var _ ChartRenderer = (*EChartsRenderer)(nil)

// RenderChart satisfies ChartRenderer.
func (r *EChartsRenderer) RenderChart(ctx context.Context, spec ChartSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(spec.Series) == 0 {
		return "", fmt.Errorf("dashboard: chart %q has no series", spec.Title)
	}
	if len(spec.XAxis) == 0 && spec.Kind != ChartPie && spec.Kind != ChartGauge {
		spec.XAxis = inferredAxisLabels(spec.Series)
	}
	renderFn := func() (string, error) {
		return r.render(spec)
	}
	if r.cache == nil {
		return renderFn()
	}
	return r.cache.GetOrRender(string(spec.Kind)+":"+configHash(spec), renderFn)
}

func (r *EChartsRenderer) render(spec ChartSpec) (string, error) {
	switch spec.Kind {
	case ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(spec)...)
		bar.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	case ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(spec)...)
		line.SetXAxis(spec.XAxis)
		for _, s := range spec.Series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(spec)...)
		for _, s := range spec.Series {
			pie.AddSeries(s.Name, toPieData(s.Points))
		}
		return renderChart(pie)
	case ChartGauge:
		gauge := charts.NewGauge()
		gauge.SetGlobalOptions(r.globalChartOptions(spec)...)
		for _, s := range spec.Series {
			if len(s.Points) == 0 {
				continue
			}
			gauge.AddSeries(s.Name, []opts.GaugeData{
				{Name: s.Name, Value: s.Points[0].Value},
			})
		}
		return renderChart(gauge)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", spec.Kind)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *EChartsRenderer) globalChartOptions(spec ChartSpec) []charts.GlobalOpts {
	height := spec.Height
	if height <= 0 {
		height = defaultCardHeight
	}
	initOpts := opts.Initialization{
		Theme:  ChartThemeFor(spec.Theme),
		Width:  "100%",
		Height: fmt.Sprintf("%dpx", height),
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(len(spec.Series) > 1 || spec.Kind == ChartPie)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

// ChartThemeFor maps the dashboard theme to an echarts theme.
func ChartThemeFor(theme Theme) string {
	if theme == ThemeDark {
		return types.ThemeChalk
	}
	return types.ThemeWesteros
}

func toBarData(points []ChartPoint) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toLineData(points []ChartPoint) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{
			Name:  point.Label,
			Value: point.Value,
		}
	}
	return data
}

func toPieData(points []ChartPoint) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{
			Name:  name,
			Value: point.Value,
		}
	}
	return data
}

func inferredAxisLabels(series []ChartSeries) []string {
	var candidate []string
	longest := 0
	for _, s := range series {
		if len(s.Points) > longest {
			longest = len(s.Points)
			candidate = make([]string, len(s.Points))
			for i, point := range s.Points {
				if point.Label != "" {
					candidate[i] = point.Label
				} else {
					candidate[i] = fmt.Sprintf("Item %d", i+1)
				}
			}
		}
	}
	return candidate
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
