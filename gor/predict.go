package gor

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/tikz/secstruct/structure"
)

// Prediction is the outcome for one sequence position.
type Prediction struct {
	Position int // 1-based
	Residue  byte
	Class    structure.Class
	Scores   Triple
}

// Decide assigns the class with the highest score.
// A triple of zeros is Unclassified; ties go to Helix, then Sheet, then Coil.
func Decide(t Triple) structure.Class {
	if t[structure.Helix] == 0 && t[structure.Sheet] == 0 && t[structure.Coil] == 0 {
		return structure.Unclassified
	}
	return structure.Class(floats.MaxIdx(t[:]))
}

// Write renders one "<residue> : <class>" line per position.
func Write(w io.Writer, preds []Prediction) error {
	for _, p := range preds {
		if _, err := fmt.Fprintf(w, "%c : %s\n", p.Residue, p.Class); err != nil {
			return err
		}
	}
	return nil
}

// String renders the predicted classes as a single line.
func String(preds []Prediction) string {
	var b strings.Builder
	for _, p := range preds {
		b.WriteString(p.Class.String())
	}
	return b.String()
}

// Sequence returns the residues the predictions were made on, as validated.
func Sequence(preds []Prediction) string {
	b := make([]byte, len(preds))
	for i, p := range preds {
		b[i] = p.Residue
	}
	return string(b)
}

// Composition returns the fraction of classified positions in each class.
func Composition(preds []Prediction) Triple {
	var comp Triple
	for _, p := range preds {
		if p.Class.Valid() {
			comp[p.Class]++
		}
	}

	if total := floats.Sum(comp[:]); total > 0 {
		floats.Scale(1/total, comp[:])
	}
	return comp
}
