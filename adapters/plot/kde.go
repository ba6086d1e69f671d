package plot

import (
	"math"

	"gonum.org/v1/plot/plotter"
)

// densityCurve evaluates a Gaussian kernel density estimate of the draws on
// an evenly spaced grid, with Silverman's rule-of-thumb bandwidth. This is
// presentation smoothing for density plots, not an inference step.
func densityCurve(draws []float64, points int) plotter.XYs {
	n := len(draws)
	if n == 0 || points < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range draws {
		mean += v
	}
	mean /= float64(n)
	ss := 0.0
	lo, hi := draws[0], draws[0]
	for _, v := range draws {
		ss += (v - mean) * (v - mean)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	sd := math.Sqrt(ss / math.Max(float64(n-1), 1))
	if sd == 0 {
		sd = 1e-9
	}

	h := 1.06 * sd * math.Pow(float64(n), -0.2)
	gridLo, gridHi := lo-3*h, hi+3*h
	step := (gridHi - gridLo) / float64(points-1)

	norm := 1 / (float64(n) * h * math.Sqrt(2*math.Pi))
	xys := make(plotter.XYs, points)
	for i := 0; i < points; i++ {
		x := gridLo + float64(i)*step
		density := 0.0
		for _, v := range draws {
			z := (x - v) / h
			density += math.Exp(-0.5 * z * z)
		}
		xys[i] = plotter.XY{X: x, Y: density * norm}
	}
	return xys
}
