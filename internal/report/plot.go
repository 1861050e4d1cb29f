// Package report renders alignment diagnostics: correlation-curve PNGs for
// quick inspection and an HTML session report. Curves are only available
// when the alignment call was configured to capture diagnostics.
package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/skein-aero/tracksync/internal/align"
)

// SaveCorrelationPlot writes a PNG of normalized correlation score against
// lag (in seconds) for every axis of the result that carries diagnostics.
func SaveCorrelationPlot(path, title string, res align.Result, rateHz float64) error {
	if rateHz <= 0 {
		return fmt.Errorf("rateHz must be positive, got %g", rateHz)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "lag (s)"
	p.Y.Label.Text = "normalized score"
	p.Legend.Top = true

	names := make([]string, 0, len(res.PerAxis))
	for name := range res.PerAxis {
		names = append(names, name)
	}
	sort.Strings(names)

	added := 0
	for i, name := range names {
		axis := res.PerAxis[name]
		if axis.Diagnostics == nil {
			continue
		}
		pts := make(plotter.XYs, len(axis.Diagnostics.Lags))
		for j, lag := range axis.Diagnostics.Lags {
			pts[j].X = float64(lag) / rateHz
			pts[j].Y = axis.Diagnostics.Scores[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to build line for axis %s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
		added++
	}

	if added == 0 {
		return fmt.Errorf("result carries no correlation diagnostics (enable CaptureDiagnostics)")
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
