// Package measure turns amplitudes into outcome probabilities and sampled
// measurement results.
package measure

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"

	"qcircuitgrid/internal/sim"
)

// Probabilities returns |a|² for every amplitude, in basis-index order.
func Probabilities(amps []complex128) []float64 {
	probs := make([]float64, len(amps))
	for i, a := range amps {
		r := cmplx.Abs(a)
		probs[i] = r * r
	}
	return probs
}

// Sampler draws outcomes from the state held by a simulation engine.
type Sampler struct {
	engine *sim.Engine
	rng    *rand.Rand
}

// NewSampler uses rng for every draw. A nil rng is seeded from the process.
func NewSampler(engine *sim.Engine, rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{engine: engine, rng: rng}
}

// NewSeeded returns a sampler whose draws are reproducible for a given seed.
func NewSeeded(engine *sim.Engine, seed uint64) *Sampler {
	return NewSampler(engine, NewRand(seed))
}

// NewRand returns a PCG source for seed. Zero seeds from the process.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Probabilities of the engine's current state.
func (s *Sampler) Probabilities() []float64 {
	return Probabilities(s.engine.Amplitudes())
}

// Sample draws one basis index with probability |amplitude|². The state is
// left untouched.
func (s *Sampler) Sample() int {
	probs := s.Probabilities()
	cdf := floats.CumSum(make([]float64, len(probs)), probs)
	total := cdf[len(cdf)-1]
	r := s.rng.Float64() * total

	idx := sort.Search(len(cdf), func(i int) bool { return cdf[i] > r })
	if idx == len(cdf) {
		// r landed on the rounding tail; take the last reachable outcome.
		for idx = len(probs) - 1; idx > 0 && probs[idx] == 0; idx-- {
		}
	}
	return idx
}

// Collapse projects the state onto |index>.
func (s *Sampler) Collapse(index int) error {
	return s.engine.Collapse(index)
}

// Measure samples an outcome and, when collapse is set, projects onto it.
func (s *Sampler) Measure(collapse bool) (int, error) {
	idx := s.Sample()
	if !collapse {
		return idx, nil
	}
	if err := s.Collapse(idx); err != nil {
		return idx, err
	}
	return idx, nil
}

// Bitstring renders index as an n-bit binary string, row 0 first.
func Bitstring(index, n int) string {
	return fmt.Sprintf("%0*b", n, index)
}

// BasisLabels returns the computational basis states of n qubits in
// basis-index order.
func BasisLabels(n int) []string {
	labels := make([]string, 1<<n)
	for i := range labels {
		labels[i] = Bitstring(i, n)
	}
	return labels
}

// Alpha maps a probability to an 8-bit opacity.
func Alpha(p float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, p)) * 255))
}
