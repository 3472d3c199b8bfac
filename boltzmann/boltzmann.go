// Package boltzmann trains a small fully connected Boltzmann machine on
// ±1 patterns by matching clamped and free-running correlations.
package boltzmann

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Config sets the size and schedule of a machine.
type Config struct {
	Neurons       int
	SampleSteps   int     // Glauber updates per free phase
	LearningSteps int     // weight updates
	Rate          float64 // learning rate
	Seed          int64
}

// DefaultConfig mirrors the classic exercise: 10 neurons, 500 sampling
// steps and 200 learning steps.
func DefaultConfig() Config {
	return Config{
		Neurons:       10,
		SampleSteps:   500,
		LearningSteps: 200,
		Rate:          1,
		Seed:          1,
	}
}

// Machine is a Boltzmann machine with symmetric, zero-diagonal weights.
type Machine struct {
	cfg   Config
	W     *mat.SymDense
	Theta *mat.VecDense
	state *mat.VecDense
	rng   *rand.Rand
}

// New initialises weights uniformly in [-1, 1) and a random ±1 state.
func New(cfg Config) (*Machine, error) {
	if cfg.Neurons < 2 {
		return nil, fmt.Errorf("need at least 2 neurons, got %d", cfg.Neurons)
	}
	if cfg.SampleSteps < 1 || cfg.LearningSteps < 0 {
		return nil, errors.New("sample steps must be positive and learning steps non-negative")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	n := cfg.Neurons

	w := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w.SetSym(i, j, rng.Float64()*2-1)
		}
	}

	state := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		state.SetVec(i, spin(rng.Intn(2) == 0))
	}

	return &Machine{
		cfg:   cfg,
		W:     w,
		Theta: mat.NewVecDense(n, nil),
		state: state,
		rng:   rng,
	}, nil
}

func spin(up bool) float64 {
	if up {
		return 1
	}
	return -1
}

// RandomPatterns draws p patterns of n independent ±1 units, one pattern per column.
func RandomPatterns(rng *rand.Rand, n, p int) *mat.Dense {
	data := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			data.Set(i, j, spin(rng.Intn(2) == 0))
		}
	}
	return data
}

// Statistics returns the mean activity <x_i> and correlations <x_i x_j> of
// patterns stored one per column.
func Statistics(data *mat.Dense) (*mat.VecDense, *mat.SymDense) {
	n, p := data.Dims()

	first := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		first.SetVec(i, mat.Sum(data.RowView(i))/float64(p))
	}

	var second mat.SymDense
	second.SymOuterK(1/float64(p), data)

	return first, &second
}

// Sample runs steps single-unit Glauber updates and returns the visited
// states, one per column.
func (m *Machine) Sample(steps int) *mat.Dense {
	n := m.cfg.Neurons
	states := mat.NewDense(n, steps, nil)
	field := mat.NewVecDense(n, nil)

	for t := 0; t < steps; t++ {
		k := m.rng.Intn(n)

		field.MulVec(m.W, m.state)
		h := field.AtVec(k) + m.Theta.AtVec(k)

		// P(x_k = +1) = (1 + tanh(h)) / 2
		m.state.SetVec(k, spin(m.rng.Float64() < (1+math.Tanh(h))/2))
		states.SetCol(t, m.state.RawVector().Data)
	}

	return states
}

// Train fits the machine to patterns stored one per column and returns the
// total absolute weight change of every learning step.
func (m *Machine) Train(data *mat.Dense) ([]float64, error) {
	n, _ := data.Dims()
	if n != m.cfg.Neurons {
		return nil, fmt.Errorf("patterns have %d units, machine has %d neurons", n, m.cfg.Neurons)
	}

	clamped1, clamped2 := Statistics(data)
	deltas := make([]float64, 0, m.cfg.LearningSteps)

	for step := 0; step < m.cfg.LearningSteps; step++ {
		free1, free2 := Statistics(m.Sample(m.cfg.SampleSteps))

		var grad mat.VecDense
		grad.SubVec(clamped1, free1)
		m.Theta.AddScaledVec(m.Theta, m.cfg.Rate, &grad)

		var delta float64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dw := m.cfg.Rate * (clamped2.At(i, j) - free2.At(i, j))
				m.W.SetSym(i, j, m.W.At(i, j)+dw)
				delta += 2 * math.Abs(dw)
			}
		}
		deltas = append(deltas, delta)
	}

	return deltas, nil
}
