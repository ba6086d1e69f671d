// Package plot renders the four diagnostic plots of the lab: traces,
// marginal densities, posterior-predictive overlays, and interval plots.
// Nothing here computes a statistic beyond the kernel density smoothing;
// convergence assessment is left to the reader's eye.
package plot

import (
	"image/color"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bayeslab/domain/draws"
	"bayeslab/internal/errors"
	"bayeslab/internal/summarize"
)

const (
	plotWidth  = 7 * vg.Inch
	plotHeight = 3 * vg.Inch
	gridPoints = 200
)

// Trace writes a trace plot for one monitored name: draw index against
// value, one colored line per chain. A stationary "caterpillar" means the
// chain settled; a directionless wander means it did not.
func Trace(post *draws.Posterior, name, path string) error {
	p := gplot.New()
	p.Title.Text = post.Model + ": trace of " + name
	p.X.Label.Text = "draw"
	p.Y.Label.Text = name

	for c := 0; c < post.NumChains; c++ {
		chain := post.Chain(name, c)
		xys := make(plotter.XYs, len(chain))
		for i, v := range chain {
			xys[i] = plotter.XY{X: float64(i + 1), Y: v}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return errors.RenderError("building trace line", err)
		}
		line.Color = plotutil.Color(c)
		p.Add(line)
	}

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return errors.RenderError("saving trace plot "+path, err)
	}
	return nil
}

// Density writes the marginal posterior density of one monitored name over
// the pooled draws.
func Density(post *draws.Posterior, name, path string) error {
	p := gplot.New()
	p.Title.Text = post.Model + ": posterior density of " + name
	p.X.Label.Text = name
	p.Y.Label.Text = "density"

	line, err := plotter.NewLine(densityCurve(post.Pooled(name), gridPoints))
	if err != nil {
		return errors.RenderError("building density curve", err)
	}
	line.Color = plotutil.Color(0)
	line.Width = vg.Points(1.5)
	p.Add(line)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return errors.RenderError("saving density plot "+path, err)
	}
	return nil
}

// PredictiveOverlay writes the observed outcome density on top of a sample
// of posterior-predicted outcome densities. The predicted curves are drawn
// first in light gray so the observed curve stays legible.
func PredictiveOverlay(title string, observed []float64, replicates [][]float64, path string) error {
	p := gplot.New()
	p.Title.Text = title
	p.X.Label.Text = "y"
	p.Y.Label.Text = "density"

	for _, rep := range replicates {
		line, err := plotter.NewLine(densityCurve(rep, gridPoints))
		if err != nil {
			return errors.RenderError("building predictive curve", err)
		}
		line.Color = color.RGBA{R: 170, G: 170, B: 170, A: 120}
		p.Add(line)
	}

	obs, err := plotter.NewLine(densityCurve(observed, gridPoints))
	if err != nil {
		return errors.RenderError("building observed curve", err)
	}
	obs.Color = color.RGBA{B: 200, A: 255}
	obs.Width = vg.Points(2)
	p.Add(obs)
	p.Legend.Add("observed", obs)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return errors.RenderError("saving predictive overlay "+path, err)
	}
	return nil
}

// intervalData adapts summaries to gonum plot's error bar interfaces.
type intervalData []summarize.Summary

func (d intervalData) Len() int { return len(d) }
func (d intervalData) XY(i int) (float64, float64) {
	return float64(i), d[i].Mean
}
func (d intervalData) YError(i int) (float64, float64) {
	half := summarize.IntervalMultiple * d[i].SD
	return half, half
}

// Intervals writes a point-estimate-with-interval plot for the given
// summaries: posterior mean with a band of IntervalMultiple posterior
// standard deviations on each side.
func Intervals(title string, summaries []summarize.Summary, path string) error {
	p := gplot.New()
	p.Title.Text = title
	p.Y.Label.Text = "value"

	data := intervalData(summaries)

	points, err := plotter.NewScatter(data)
	if err != nil {
		return errors.RenderError("building interval points", err)
	}
	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return errors.RenderError("building interval bars", err)
	}
	p.Add(points, bars)

	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = s.Name
	}
	p.NominalX(names...)
	p.X.Min = -1
	p.X.Max = float64(len(summaries))

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return errors.RenderError("saving interval plot "+path, err)
	}
	return nil
}
