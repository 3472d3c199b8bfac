package gor

import (
	"fmt"

	"github.com/tikz/secstruct/aminoacid"
	"github.com/tikz/secstruct/reference"
	"github.com/tikz/secstruct/structure"
)

// Model holds the statistics derived from a reference table.
// It is read-only once built and can be shared between goroutines.
type Model struct {
	triples map[byte]Triple
	missing map[byte]error
	priors  Triple // P(S) / P(n-S)
	counts  reference.Counts
}

// NewModel derives the score triples of every canonical residue from a table.
// Later changes to the table are not seen by the model; build a new one instead.
func NewModel(table *reference.Table) (*Model, error) {
	counts, err := table.Counts()
	if err != nil {
		return nil, fmt.Errorf("count reference: %w", err)
	}

	m := &Model{
		triples: make(map[byte]Triple),
		missing: make(map[byte]error),
		counts:  counts,
	}

	var total int
	for _, c := range structure.Classes {
		total += counts.Totals[c]
	}
	for _, c := range structure.Classes {
		if counts.Totals[c] == 0 {
			return nil, &InsufficientDataError{Class: c}
		}
	}
	for _, c := range structure.Classes {
		in := counts.Totals[c]
		m.priors[c] = float64(in) / float64(total-in)
	}

	for _, aa := range aminoacid.Codes {
		t, err := fano(counts, aa)
		if err != nil {
			// Reported when a sequence actually uses the residue.
			m.missing[aa] = err
			continue
		}
		m.triples[aa] = t
	}

	return m, nil
}

// Triple returns the score triple for a residue.
func (m *Model) Triple(residue byte) (Triple, error) {
	if t, ok := m.triples[residue]; ok {
		return t, nil
	}
	if err, ok := m.missing[residue]; ok {
		return Triple{}, err
	}
	return Triple{}, &aminoacid.InvalidResidueError{Letter: rune(residue)}
}

// Priors returns the ratio P(S) / P(n-S) for each class.
func (m *Model) Priors() Triple {
	return m.priors
}

// Counts returns the reference counts the model was built from.
func (m *Model) Counts() reference.Counts {
	return m.counts
}

// triplesFor resolves the triple of each residue of a validated sequence.
func (m *Model) triplesFor(seq string) ([]Triple, error) {
	triples := make([]Triple, len(seq))
	for i := 0; i < len(seq); i++ {
		t, err := m.Triple(seq[i])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i+1, err)
		}
		triples[i] = t
	}
	return triples, nil
}
