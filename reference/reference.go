package reference

import (
	"errors"

	"github.com/tikz/secstruct/structure"
)

// Observation is a single residue with its observed secondary structure.
type Observation struct {
	Index   int    `json:"index"`
	Residue byte   `json:"residue"` // one letter code
	Label   string `json:"label"`   // eight-state DSSP label or the missing sentinel
}

// Table is an ordered set of observations used as the statistical reference.
type Table struct {
	Observations []Observation `json:"observations"`

	// Sentinel marks observations without a structure assignment.
	// Defaults to structure.MissingSentinel when empty.
	Sentinel string `json:"sentinel"`
}

// Counts holds class occurrences per residue and overall.
type Counts struct {
	Residues map[byte][structure.NumClasses]int
	Totals   [structure.NumClasses]int
	Missing  int
}

// NewTable constructs a table from observations.
func NewTable(obs ...Observation) *Table {
	t := &Table{}
	t.Add(obs...)
	return t
}

// Add appends observations, numbering those without an index.
func (t *Table) Add(obs ...Observation) {
	for _, o := range obs {
		if o.Index == 0 {
			o.Index = len(t.Observations) + 1
		}
		t.Observations = append(t.Observations, o)
	}
}

// Len returns the number of observations.
func (t *Table) Len() int {
	return len(t.Observations)
}

// Class returns the three-state class of an observation.
func (t *Table) Class(o Observation) (structure.Class, error) {
	sentinel := t.Sentinel
	if sentinel == "" {
		sentinel = structure.MissingSentinel
	}
	return structure.ReduceWith(o.Label, sentinel)
}

// Counts tallies the observations. Missing labels are skipped.
func (t *Table) Counts() (Counts, error) {
	c := Counts{Residues: make(map[byte][structure.NumClasses]int)}

	for _, o := range t.Observations {
		class, err := t.Class(o)
		if errors.Is(err, structure.ErrMissing) {
			c.Missing++
			continue
		}
		if err != nil {
			return c, &RowError{Index: o.Index, Err: err}
		}

		res := c.Residues[o.Residue]
		res[class]++
		c.Residues[o.Residue] = res
		c.Totals[class]++
	}

	return c, nil
}
