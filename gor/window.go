package gor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tikz/secstruct/aminoacid"
)

// Variant selects a windowing scheme.
type Variant int

const (
	GOR3 Variant = iota + 3
	GOR4
	GOR5
)

// FixedRadius is the half window used by GOR3 and GOR4.
const FixedRadius = 8

// minAdaptiveLength is the shortest sequence GOR5 rejects plus one.
const minAdaptiveLength = 9

func (v Variant) String() string {
	switch v {
	case GOR3, GOR4, GOR5:
		return fmt.Sprintf("GOR%d", int(v))
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant reads "gor3", "GOR4", "5" and similar.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "3", "gor3", "GOR3", "GOR III":
		return GOR3, nil
	case "4", "gor4", "GOR4", "GOR IV":
		return GOR4, nil
	case "5", "gor5", "GOR5", "GOR V":
		return GOR5, nil
	}
	return 0, fmt.Errorf("unknown GOR variant %q", s)
}

// ValidationError rejects a query sequence before any scoring.
type ValidationError struct {
	Variant   Variant
	Length    int
	MinLength int
	Err       error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid sequence: %v", e.Variant, e.Err)
	}
	return fmt.Sprintf("%s: sequence of %d residues is too short, at least %d required", e.Variant, e.Length, e.MinLength)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// MinLength returns the shortest sequence a variant accepts.
func (v Variant) MinLength() int {
	if v == GOR5 {
		return minAdaptiveLength
	}
	return 2*FixedRadius + 1
}

// Radius returns the half window GOR5 uses for a sequence of length n.
func Radius(n int) int {
	switch {
	case n >= 100:
		return 6
	case n > 50:
		return 5
	case n > 25:
		return 4
	}
	return 3
}

func (v Variant) radius(n int) int {
	if v == GOR5 {
		return Radius(n)
	}
	return FixedRadius
}

// Classify predicts the class of every position of seq.
func (m *Model) Classify(v Variant, seq string) ([]Prediction, error) {
	switch v {
	case GOR3, GOR4, GOR5:
	default:
		return nil, fmt.Errorf("unknown variant %s", v)
	}

	clean, err := aminoacid.ValidateSequence(seq)
	if err != nil {
		return nil, &ValidationError{Variant: v, Err: err}
	}
	if len(clean) < v.MinLength() {
		return nil, &ValidationError{Variant: v, Length: len(clean), MinLength: v.MinLength()}
	}

	triples, err := m.triplesFor(clean)
	if err != nil {
		return nil, err
	}

	d := v.radius(len(clean))
	preds := make([]Prediction, len(clean))
	for i := range clean {
		var acc Triple
		if i >= d && i <= len(clean)-d-1 {
			if v == GOR3 {
				acc = sumWindow(triples, i, d)
			} else {
				acc = m.weightedWindow(triples, i, d)
			}
		}
		preds[i] = Prediction{
			Position: i + 1,
			Residue:  clean[i],
			Class:    Decide(acc),
			Scores:   acc,
		}
	}

	return preds, nil
}

// GOR3 classifies seq with the unweighted window.
func (m *Model) GOR3(seq string) ([]Prediction, error) { return m.Classify(GOR3, seq) }

// GOR4 classifies seq with pair terms and class priors over a fixed window.
func (m *Model) GOR4(seq string) ([]Prediction, error) { return m.Classify(GOR4, seq) }

// GOR5 classifies seq like GOR4 with a window sized to the sequence.
func (m *Model) GOR5(seq string) ([]Prediction, error) { return m.Classify(GOR5, seq) }

// sumWindow adds the centre and each neighbour pair, d times each.
func sumWindow(t []Triple, i, d int) Triple {
	var acc Triple
	for w := 1; w <= d; w++ {
		floats.Add(acc[:], t[i][:])
		floats.Add(acc[:], t[i+w][:])
		floats.Add(acc[:], t[i-w][:])
	}
	return acc
}

// weightedWindow combines pairwise neighbour terms weighted 2/(2d+1) with
// single residue terms weighted -(2d-1)/(2d+1), both shifted by the class prior.
// Pair terms whose logarithm is undefined are skipped.
func (m *Model) weightedWindow(t []Triple, i, d int) Triple {
	pairW := 2 / float64(2*d+1)
	singleW := float64(2*d-1) / float64(2*d+1)

	var logPrior Triple
	for c := range logPrior {
		logPrior[c] = math.Log(m.priors[c])
	}

	var acc Triple
	for l := -d; l < d; l++ {
		for k := 0; k < d-1-l; k++ {
			a, b := t[i+l], t[i+l+k]
			for c := range acc {
				x := a[c] + b[c]
				if x <= 0 {
					continue
				}
				acc[c] += pairW * (math.Log(x) + logPrior[c])
			}
		}
	}

	var term Triple
	for r := 1; r <= d; r++ {
		floats.AddTo(term[:], t[i][:], t[i+r][:])
		floats.Add(term[:], logPrior[:])
		floats.AddScaled(acc[:], -singleW, term[:])

		floats.AddTo(term[:], t[i-r][:], logPrior[:])
		floats.AddScaled(acc[:], -singleW, term[:])
	}

	return acc
}
