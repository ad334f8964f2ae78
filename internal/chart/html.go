package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cxd309/speed-profile/internal/profile"
)

// WriteProfileHTML renders an interactive page with velocity over time and velocity
// over distance.
func WriteProfileHTML(w io.Writer, prof *profile.Profile) error {
	if prof == nil || len(prof.Samples) == 0 {
		return fmt.Errorf("empty profile")
	}
	sum := prof.Summarize()
	subtitle := fmt.Sprintf("segments=%d samples=%d duration=%.2fs peak=%.3f",
		sum.Segments, sum.Samples, sum.Duration, sum.PeakSpeed)

	byTime := make([]opts.LineData, len(prof.Samples))
	byDistance := make([]opts.LineData, len(prof.Samples))
	for i, s := range prof.Samples {
		byTime[i] = opts.LineData{Value: []interface{}{s.Time, s.Velocity}}
		byDistance[i] = opts.LineData{Value: []interface{}{s.Distance, s.Velocity}}
	}

	page := components.NewPage()
	page.PageTitle = "Speed profile"
	page.AddCharts(
		velocityChart("Velocity over time", subtitle, "Time (s)", byTime),
		velocityChart("Velocity over distance", subtitle, "Distance", byDistance),
	)
	return page.Render(w)
}

func velocityChart(title, subtitle, xName string, data []opts.LineData) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xName, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Velocity", NameLocation: "middle", NameGap: 30}),
	)
	line.AddSeries("velocity", data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	return line
}
