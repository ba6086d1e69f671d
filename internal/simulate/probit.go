package simulate

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// stdNormal is used only for its CDF (the probit link), never for draws.
var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Phi is the standard normal CDF.
func Phi(x float64) float64 {
	return stdNormal.CDF(x)
}

// ProbitConfig configures the binary outcome simulator
type ProbitConfig struct {
	N         int     `json:"n"`
	Intercept float64 `json:"intercept"`
	Beta1     float64 `json:"beta1"`
	Beta2     float64 `json:"beta2"`
	Seed      int64   `json:"seed"`
}

// DefaultProbitConfig returns the lesson defaults
func DefaultProbitConfig() ProbitConfig {
	return ProbitConfig{
		N:         100,
		Intercept: 0.2,
		Beta1:     0.4,
		Beta2:     -0.2,
		Seed:      42,
	}
}

// ProbitDataset holds one simulated binary classification dataset. Y values
// are 0/1 stored as float64 so the data mapping stays uniform.
type ProbitDataset struct {
	X1 []float64
	X2 []float64
	Y  []float64
}

// Columns returns the dataset as the data mapping a model spec expects.
func (d *ProbitDataset) Columns() map[string][]float64 {
	return map[string][]float64{"x1": d.X1, "x2": d.X2, "y": d.Y}
}

// ProbitSimulator thresholds a latent normal variable at zero, which is
// equivalent to a Bernoulli draw with success probability Phi(eta).
type ProbitSimulator struct {
	config ProbitConfig
	rng    *rand.Rand
}

// NewProbitSimulator creates a seeded probit simulator
func NewProbitSimulator(config ProbitConfig) *ProbitSimulator {
	return &ProbitSimulator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces one dataset of N observations
func (s *ProbitSimulator) Generate() *ProbitDataset {
	n := s.config.N
	d := &ProbitDataset{
		X1: make([]float64, n),
		X2: make([]float64, n),
		Y:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d.X1[i] = s.rng.NormFloat64()
		d.X2[i] = s.rng.NormFloat64()
		eta := s.config.Intercept + s.config.Beta1*d.X1[i] + s.config.Beta2*d.X2[i]
		latent := eta + s.rng.NormFloat64()
		if latent > 0 {
			d.Y[i] = 1
		}
	}
	return d
}
