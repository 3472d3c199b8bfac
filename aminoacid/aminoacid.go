package aminoacid

import (
	"fmt"
	"strings"
)

var names = [...][3]string{
	{"Alanine", "Ala", "A"},
	{"Arginine", "Arg", "R"},
	{"Asparagine", "Asn", "N"},
	{"Aspartic acid", "Asp", "D"},
	{"Cysteine", "Cys", "C"},
	{"Glutamic acid", "Glu", "E"},
	{"Glutamine", "Gln", "Q"},
	{"Glycine", "Gly", "G"},
	{"Histidine", "His", "H"},
	{"Isoleucine", "Ile", "I"},
	{"Leucine", "Leu", "L"},
	{"Lysine", "Lys", "K"},
	{"Methionine", "Met", "M"},
	{"Phenylalanine", "Phe", "F"},
	{"Proline", "Pro", "P"},
	{"Serine", "Ser", "S"},
	{"Threonine", "Thr", "T"},
	{"Tryptophan", "Trp", "W"},
	{"Tyrosine", "Tyr", "Y"},
	{"Valine", "Val", "V"},
}

// Codes holds the one letter codes of the 20 canonical aminoacids.
var Codes = func() []byte {
	codes := make([]byte, len(names))
	for i, n := range names {
		codes[i] = n[2][0]
	}
	return codes
}()

// InvalidResidueError reports a letter in a sequence that is not a canonical aminoacid.
type InvalidResidueError struct {
	Position int // 1-based
	Letter   rune
}

func (e *InvalidResidueError) Error() string {
	return fmt.Sprintf("position %d: %q is not a canonical aminoacid", e.Position, e.Letter)
}

// IsAminoacid returns true if the given letter is an aminoacid, false otherwise.
func IsAminoacid(letter byte) bool {
	for _, res := range names {
		if res[2][0] == letter {
			return true
		}
	}
	return false
}

// Names receives a name and returns all the possible representations as strings.
// The input is case-insensitive and can be either a full aminoacid name, one or three letter abbreviation.
func Names(input string) (string, string, string) {
	s := strings.ToLower(input)
	for _, res := range names {
		for _, n := range res {
			if strings.ToLower(n) == s {
				return res[0], res[1], res[2]
			}
		}
	}

	return input, "Unk", "X"
}

// ValidateSequence upper-cases a sequence, drops whitespace and checks that every letter is canonical.
func ValidateSequence(seq string) (string, error) {
	var b strings.Builder
	b.Grow(len(seq))

	pos := 0
	for _, r := range seq {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		pos++

		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r > 0x7f || !IsAminoacid(byte(r)) {
			return "", &InvalidResidueError{Position: pos, Letter: r}
		}
		b.WriteByte(byte(r))
	}

	return b.String(), nil
}
