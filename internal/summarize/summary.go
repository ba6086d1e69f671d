package summarize

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// IntervalMultiple is the fixed multiple of the posterior standard error
// used for interval plots (mean ± 2 SE, the usual coefficient-plot width).
const IntervalMultiple = 2.0

// Summary describes one monitored quantity's pooled posterior draws.
// SD doubles as the quantity's standard error in the Bayesian sense;
// MCErr is the Monte Carlo error of the posterior mean estimate.
type Summary struct {
	Name   string
	N      int
	Mean   float64
	SD     float64
	MCErr  float64
	Median float64
	Q2_5   float64
	Q25    float64
	Q75    float64
	Q97_5  float64
}

// Parameter summarizes a pooled draw sequence for one monitored name.
func Parameter(name string, draws []float64) (Summary, error) {
	if len(draws) < 2 {
		return Summary{}, fmt.Errorf("parameter %q: need at least 2 draws, have %d", name, len(draws))
	}

	mean, err := stats.Mean(draws)
	if err != nil {
		return Summary{}, err
	}
	sd, err := stats.StandardDeviationSample(draws)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(draws)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Name:   name,
		N:      len(draws),
		Mean:   mean,
		SD:     sd,
		MCErr:  sd / math.Sqrt(float64(len(draws))),
		Median: median,
	}

	for _, q := range []struct {
		p   float64
		dst *float64
	}{
		{2.5, &s.Q2_5},
		{25, &s.Q25},
		{75, &s.Q75},
		{97.5, &s.Q97_5},
	} {
		v, err := stats.Percentile(draws, q.p)
		if err != nil {
			return Summary{}, err
		}
		*q.dst = v
	}

	return s, nil
}

// Interval returns the mean ± IntervalMultiple*SD band for interval plots.
func (s Summary) Interval() (lo, hi float64) {
	return s.Mean - IntervalMultiple*s.SD, s.Mean + IntervalMultiple*s.SD
}
