// Package perceptron trains a single-layer perceptron to tell binary
// patterns with at least half of their bits set from the rest.
package perceptron

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Perceptron is a linear threshold unit over Dim inputs.
type Perceptron struct {
	Dim     int
	Rate    float64
	Weights *mat.VecDense
	Bias    float64
}

// New returns a perceptron with zero weights.
func New(dim int, rate float64) *Perceptron {
	return &Perceptron{
		Dim:     dim,
		Rate:    rate,
		Weights: mat.NewVecDense(dim, nil),
	}
}

// RandomInputs draws n binary patterns of dim bits, one per row.
func RandomInputs(rng *rand.Rand, n, dim int) *mat.Dense {
	inputs := mat.NewDense(n, dim, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < dim; j++ {
			inputs.Set(i, j, float64(rng.Intn(2)))
		}
	}
	return inputs
}

// Labels marks patterns with at least dim/2 bits set as +1, others as -1.
func Labels(inputs *mat.Dense) []float64 {
	n, dim := inputs.Dims()
	labels := make([]float64, n)
	for i := 0; i < n; i++ {
		if mat.Sum(inputs.RowView(i)) >= float64(dim)/2 {
			labels[i] = 1
		} else {
			labels[i] = -1
		}
	}
	return labels
}

// Output returns the unit response to x, +1 or -1.
func (p *Perceptron) Output(x mat.Vector) float64 {
	if mat.Dot(p.Weights, x)+p.Bias >= 0 {
		return 1
	}
	return -1
}

// Train applies the perceptron rule to randomly drawn patterns and returns
// the number of updates made.
func (p *Perceptron) Train(rng *rand.Rand, inputs *mat.Dense, labels []float64, iterations int) (int, error) {
	n, dim := inputs.Dims()
	if dim != p.Dim {
		return 0, fmt.Errorf("inputs have %d columns, perceptron has %d", dim, p.Dim)
	}
	if len(labels) != n {
		return 0, fmt.Errorf("%d labels for %d inputs", len(labels), n)
	}

	updates := 0
	for it := 0; it < iterations; it++ {
		i := rng.Intn(n)
		x := inputs.RowView(i)
		if p.Output(x) == labels[i] {
			continue
		}
		p.Weights.AddScaledVec(p.Weights, p.Rate*labels[i], x)
		p.Bias += p.Rate * labels[i]
		updates++
	}

	return updates, nil
}

// Predict returns the output for every row of inputs.
func (p *Perceptron) Predict(inputs *mat.Dense) []float64 {
	n, _ := inputs.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = p.Output(inputs.RowView(i))
	}
	return out
}

// Accuracy is the fraction of predictions equal to labels.
func Accuracy(predictions, labels []float64) float64 {
	if len(labels) == 0 {
		return 0
	}
	var hits int
	for i := range labels {
		if predictions[i] == labels[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(labels))
}
