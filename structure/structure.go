package structure

import (
	"errors"
	"fmt"
	"strings"
)

// Class is a three-state secondary structure class.
type Class int

// Helix, Sheet and Coil are also the indexes of a score triple.
const (
	Helix Class = iota
	Sheet
	Coil
	Unclassified
)

// NumClasses is the number of assignable classes.
const NumClasses = 3

// Classes lists the assignable classes in scoring order.
var Classes = [NumClasses]Class{Helix, Sheet, Coil}

// ErrMissing is returned by Reduce for unobserved labels.
var ErrMissing = errors.New("missing structure label")

// MissingSentinel marks an observation without a structure assignment.
const MissingSentinel = "NaN"

func (c Class) String() string {
	switch c {
	case Helix:
		return "H"
	case Sheet:
		return "E"
	case Coil:
		return "C"
	}
	return "-"
}

// Name returns the long class name.
func (c Class) Name() string {
	switch c {
	case Helix:
		return "Helix"
	case Sheet:
		return "Sheet"
	case Coil:
		return "Coil"
	}
	return "Unclassified"
}

// Valid reports whether c can index a score triple.
func (c Class) Valid() bool {
	return c >= Helix && c <= Coil
}

// Parse reads a three-state letter as produced by Class.String.
func Parse(s string) (Class, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H":
		return Helix, nil
	case "E":
		return Sheet, nil
	case "C":
		return Coil, nil
	case "-", "":
		return Unclassified, nil
	}
	return Unclassified, fmt.Errorf("unknown class %q", s)
}

// Reduce collapses an eight-state DSSP label to three states.
// https://swift.cmbi.umcn.nl/gv/dssp/
//
//	H (alpha), G (3-10), I (pi)          -> Helix
//	E (strand), B (isolated bridge)      -> Sheet
//	T (turn), S (bend), P (PPII), blank  -> Coil
func Reduce(label string) (Class, error) {
	return ReduceWith(label, MissingSentinel)
}

// ReduceWith is Reduce with a custom missing-data sentinel.
func ReduceWith(label string, sentinel string) (Class, error) {
	if label == sentinel || label == "" {
		return Unclassified, ErrMissing
	}

	switch label {
	case "H", "G", "I":
		return Helix, nil
	case "E", "B":
		return Sheet, nil
	case "T", "S", "C", "P", "-", " ", "L":
		return Coil, nil
	}
	return Unclassified, fmt.Errorf("unknown DSSP label %q", label)
}
