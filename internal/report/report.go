package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/skein-aero/tracksync/internal/payload"
)

// WriteSessionReport renders an HTML report for one alignment session: a
// summary bar chart of per-stream offsets and, where correlation
// diagnostics were captured, one correlation-curve chart per stream.
func WriteSessionReport(w io.Writer, sessionID string, outcomes map[string]payload.Outcome, rateHz float64) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("no outcomes to report for session %s", sessionID)
	}

	streams := make([]string, 0, len(outcomes))
	for name := range outcomes {
		streams = append(streams, name)
	}
	sort.Strings(streams)

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("tracksync session %s", sessionID)
	page.AddCharts(summaryChart(sessionID, streams, outcomes))

	for _, name := range streams {
		if chart := correlationChart(name, outcomes[name], rateHz); chart != nil {
			page.AddCharts(chart)
		}
	}

	return page.Render(w)
}

// summaryChart shows the fused time offset per stream with its status.
func summaryChart(sessionID string, streams []string, outcomes map[string]payload.Outcome) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Session %s", sessionID),
			Subtitle: "time offset per stream (seconds)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(streams))
	offsets := make([]opts.BarData, 0, len(streams))
	for _, name := range streams {
		o := outcomes[name]
		label := fmt.Sprintf("%s [%s]", name, o.Result.Status)
		if o.Err != nil {
			label = fmt.Sprintf("%s [invalid input]", name)
		}
		labels = append(labels, label)
		offsets = append(offsets, opts.BarData{Value: o.Result.TimeOffsetSeconds})
	}

	bar.SetXAxis(labels).AddSeries("offset_s", offsets)
	return bar
}

// correlationChart plots the per-axis correlation curves for one stream, or
// nil when no axis carries diagnostics.
func correlationChart(stream string, o payload.Outcome, rateHz float64) *charts.Line {
	if rateHz <= 0 || len(o.Result.PerAxis) == 0 {
		return nil
	}

	axes := make([]string, 0, len(o.Result.PerAxis))
	for name := range o.Result.PerAxis {
		axes = append(axes, name)
	}
	sort.Strings(axes)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    stream,
			Subtitle: fmt.Sprintf("offset %.4fs quality %.3f", o.Result.TimeOffsetSeconds, o.Result.Quality),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lag (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "score"}),
	)

	added := false
	for _, name := range axes {
		axis := o.Result.PerAxis[name]
		if axis.Diagnostics == nil {
			continue
		}
		if !added {
			lags := make([]string, len(axis.Diagnostics.Lags))
			for i, lag := range axis.Diagnostics.Lags {
				lags[i] = fmt.Sprintf("%.2f", float64(lag)/rateHz)
			}
			line.SetXAxis(lags)
			added = true
		}
		data := make([]opts.LineData, len(axis.Diagnostics.Scores))
		for i, s := range axis.Diagnostics.Scores {
			data[i] = opts.LineData{Value: s}
		}
		line.AddSeries(name, data)
	}

	if !added {
		return nil
	}
	return line
}
