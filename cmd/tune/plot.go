package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// saveSettlePlot draws probe distance over time for every drop of ev, with the
// ride height as a dashed reference line.
func saveSettlePlot(path string, ev *Evaluation, rideHeight float64) error {
	if len(ev.Runs) == 0 {
		return fmt.Errorf("plot data invalid")
	}

	p := plot.New()
	p.Title.Text = "Hover settle"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "probe distance"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Legend.Top = true

	for i, run := range ev.Runs {
		pts := make(plotter.XYs, len(run.Path.Time))
		for j := range run.Path.Time {
			pts[j].X = run.Path.Time[j]
			pts[j].Y = run.Path.Distance[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("drop %.1f", run.Path.DropHeight), line)
	}

	ride := plotter.NewFunction(func(float64) float64 { return rideHeight })
	ride.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	ride.Width = vg.Points(1)
	p.Add(ride)
	p.Legend.Add("ride height", ride)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
