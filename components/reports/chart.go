package reports

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// SalesChart renders sales reports into echarts HTML snippets.
type SalesChart struct {
	chartType string
	cache     RenderCache
	theme     string
}

// SalesChartOption customizes chart behavior.
type SalesChartOption func(*SalesChart)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) SalesChartOption {
	return func(c *SalesChart) {
		c.cache = cache
	}
}

// WithTheme sets the chart theme (defaults to Westeros).
func WithTheme(theme string) SalesChartOption {
	return func(c *SalesChart) {
		c.theme = theme
	}
}

// NewSalesChart builds a chart renderer for "bar" or "line" output.
func NewSalesChart(chartType string, options ...SalesChartOption) *SalesChart {
	c := &SalesChart{
		chartType: strings.ToLower(chartType),
		cache:     sharedChartCache,
		theme:     types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Render converts a sales report into chart HTML, memoized per year/type.
func (c *SalesChart) Render(report SalesReport) (string, error) {
	render := func() (string, error) {
		switch c.chartType {
		case "bar":
			return c.renderBar(report)
		case "line":
			return c.renderLine(report)
		default:
			return "", fmt.Errorf("reports: unsupported chart type: %s", c.chartType)
		}
	}
	if c.cache == nil {
		return render()
	}
	key := fmt.Sprintf("sales:%d:%s:%s", report.Year, c.chartType, report.Summary.TotalSales)
	return c.cache.GetOrRender(key, render)
}

func (c *SalesChart) renderBar(report SalesReport) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(c.globalChartOptions(report)...)
	bar.SetXAxis(monthLabels(report))
	bar.AddSeries("Sales", toBarData(report))
	return renderChart(bar)
}

func (c *SalesChart) renderLine(report SalesReport) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(c.globalChartOptions(report)...)
	line.SetXAxis(monthLabels(report))
	line.AddSeries("Sales", toLineData(report))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (c *SalesChart) globalChartOptions(report SalesReport) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Sales Report %d", report.Year),
			Subtitle: fmt.Sprintf("%s %s total", Currency, report.Summary.TotalSales),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  c.theme,
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func monthLabels(report SalesReport) []string {
	labels := make([]string, len(report.Monthly))
	for i, month := range report.Monthly {
		labels[i] = month.Month
	}
	return labels
}

func toBarData(report SalesReport) []opts.BarData {
	data := make([]opts.BarData, len(report.Monthly))
	for i, month := range report.Monthly {
		data[i] = opts.BarData{Name: month.Month, Value: month.Sales}
	}
	return data
}

func toLineData(report SalesReport) []opts.LineData {
	data := make([]opts.LineData, len(report.Monthly))
	for i, month := range report.Monthly {
		data[i] = opts.LineData{Name: month.Month, Value: month.Sales}
	}
	return data
}
