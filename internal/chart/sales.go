// Package chart renders loaded dashboard data into standalone echarts HTML
// files so a trend can be opened in a browser from the terminal client.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"csdesk/internal/api"
)

const chartHeight = "420px"

// WriteSalesTrend renders the daily sales series as a line chart under dir
// and returns the written file path.
func WriteSalesTrend(dir string, points []api.SalesPoint) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("sales trend chart: no data points")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "일간 매출 추이",
			Subtitle: fmt.Sprintf("%d일 구간", len(points)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	labels := make([]string, 0, len(points))
	values := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		labels = append(labels, p.Date)
		values = append(values, opts.LineData{Value: p.Amount})
	}
	line.SetXAxis(labels).AddSeries("매출", values,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	)

	path := filepath.Join(dir, fmt.Sprintf("sales-trend-%s.html", time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("sales trend chart: %w", err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		return "", fmt.Errorf("sales trend chart: %w", err)
	}
	return path, nil
}
