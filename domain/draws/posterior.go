package draws

import (
	"time"

	"bayeslab/domain/core"
)

// Posterior holds post-warmup draws for every monitored name, kept per
// chain so trace plots can distinguish chains while summaries pool them.
type Posterior struct {
	RunID      core.RunID
	Model      string
	Names      []string // monitor order from the spec
	Seed       int64
	Warmup     int
	Iterations int // post-warmup draws per chain
	NumChains  int
	StartedAt  core.Timestamp
	Elapsed    time.Duration

	// Draws maps monitored name -> chain index -> draw sequence.
	Draws map[string][][]float64
}

// New allocates a posterior container with one draw slice per chain.
func New(modelName string, names []string, numChains, iterations int) *Posterior {
	d := make(map[string][][]float64, len(names))
	for _, name := range names {
		chains := make([][]float64, numChains)
		for c := range chains {
			chains[c] = make([]float64, 0, iterations)
		}
		d[name] = chains
	}
	return &Posterior{
		RunID:      core.RunID(core.NewID()),
		Model:      modelName,
		Names:      append([]string(nil), names...),
		Iterations: iterations,
		NumChains:  numChains,
		StartedAt:  core.Now(),
		Draws:      d,
	}
}

// Has reports whether a name was monitored.
func (p *Posterior) Has(name string) bool {
	_, ok := p.Draws[name]
	return ok
}

// Chain returns one chain's draw sequence for a monitored name.
func (p *Posterior) Chain(name string, chain int) []float64 {
	chains, ok := p.Draws[name]
	if !ok || chain < 0 || chain >= len(chains) {
		return nil
	}
	return chains[chain]
}

// Pooled concatenates all chains' draws for a monitored name.
func (p *Posterior) Pooled(name string) []float64 {
	chains, ok := p.Draws[name]
	if !ok {
		return nil
	}
	total := 0
	for _, c := range chains {
		total += len(c)
	}
	pooled := make([]float64, 0, total)
	for _, c := range chains {
		pooled = append(pooled, c...)
	}
	return pooled
}

// Append records one draw for a name on a chain.
func (p *Posterior) Append(name string, chain int, value float64) {
	p.Draws[name][chain] = append(p.Draws[name][chain], value)
}
