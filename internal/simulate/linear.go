package simulate

import (
	"math/rand"
)

// LinearConfig configures the Gaussian regression simulator
type LinearConfig struct {
	N         int     `json:"n"`
	Intercept float64 `json:"intercept"`
	Beta1     float64 `json:"beta1"`
	Beta2     float64 `json:"beta2"`
	NoiseSD   float64 `json:"noise_sd"`
	Seed      int64   `json:"seed"`
}

// DefaultLinearConfig returns the lesson defaults: a small effect in each
// direction on top of a near-zero intercept.
func DefaultLinearConfig() LinearConfig {
	return LinearConfig{
		N:         100,
		Intercept: 0.1,
		Beta1:     0.3,
		Beta2:     -0.3,
		NoiseSD:   0.5,
		Seed:      42,
	}
}

// LinearDataset holds one simulated regression dataset. Noise is retained
// so the generative identity y = a + b1*x1 + b2*x2 + e is checkable.
type LinearDataset struct {
	X1    []float64
	X2    []float64
	Y     []float64
	Noise []float64
}

// Columns returns the dataset as the data mapping a model spec expects.
func (d *LinearDataset) Columns() map[string][]float64 {
	return map[string][]float64{"x1": d.X1, "x2": d.X2, "y": d.Y}
}

// LinearSimulator draws i.i.d. standard normal covariates and computes the
// outcome from the closed-form linear formula plus normal noise.
type LinearSimulator struct {
	config LinearConfig
	rng    *rand.Rand
}

// NewLinearSimulator creates a seeded linear regression simulator
func NewLinearSimulator(config LinearConfig) *LinearSimulator {
	return &LinearSimulator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces one dataset of N observations
func (s *LinearSimulator) Generate() *LinearDataset {
	n := s.config.N
	d := &LinearDataset{
		X1:    make([]float64, n),
		X2:    make([]float64, n),
		Y:     make([]float64, n),
		Noise: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d.X1[i] = s.rng.NormFloat64()
		d.X2[i] = s.rng.NormFloat64()
		d.Noise[i] = s.rng.NormFloat64() * s.config.NoiseSD
		d.Y[i] = s.config.Intercept + s.config.Beta1*d.X1[i] + s.config.Beta2*d.X2[i] + d.Noise[i]
	}
	return d
}
