package gor

import (
	"fmt"
	"math"

	"github.com/tikz/secstruct/reference"
	"github.com/tikz/secstruct/structure"
)

// Triple holds one score per class, indexed by structure.Class.
type Triple [structure.NumClasses]float64

// Get returns the score for a class.
func (t Triple) Get(c structure.Class) float64 {
	return t[c]
}

// InsufficientDataError is returned when a residue has no observations in
// a class (or its complement), so its log-odds score is undefined.
type InsufficientDataError struct {
	Residue byte // 0 when the whole table lacks the class
	Class   structure.Class
}

func (e *InsufficientDataError) Error() string {
	if e.Residue == 0 {
		return fmt.Sprintf("reference table has no %s observations", e.Class.Name())
	}
	return fmt.Sprintf("residue %c: insufficient %s observations in reference table", e.Residue, e.Class.Name())
}

// Fano computes the information difference of a residue for each class:
//
//	I(S; R) = ln(f(S,R) / f(n-S,R)) + ln(f(n-S) / f(S))
//
// where f(S,R) counts residue R in class S and f(S) counts class S overall.
func Fano(table *reference.Table, residue byte) (Triple, error) {
	counts, err := table.Counts()
	if err != nil {
		return Triple{}, fmt.Errorf("count reference: %w", err)
	}
	return fano(counts, residue)
}

func fano(counts reference.Counts, residue byte) (Triple, error) {
	var t Triple

	res := counts.Residues[residue]
	var resTotal, total int
	for _, c := range structure.Classes {
		resTotal += res[c]
		total += counts.Totals[c]
	}

	// Every class must be observed, which also keeps every complement non-empty.
	for _, c := range structure.Classes {
		if counts.Totals[c] == 0 {
			return Triple{}, &InsufficientDataError{Class: c}
		}
	}
	for _, c := range structure.Classes {
		if res[c] == 0 {
			return Triple{}, &InsufficientDataError{Residue: residue, Class: c}
		}
	}

	for _, c := range structure.Classes {
		in, out := res[c], resTotal-res[c]
		overallIn, overallOut := counts.Totals[c], total-counts.Totals[c]
		t[c] = math.Log(float64(in)/float64(out)) + math.Log(float64(overallOut)/float64(overallIn))
	}

	return t, nil
}
