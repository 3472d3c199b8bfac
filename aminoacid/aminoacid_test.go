package aminoacid

import (
	"errors"
	"testing"
)

func TestNames(t *testing.T) {
	for _, input := range []string{"leucine", "LEU", "l", "Leucine"} {
		name, abbrv3, abbrv1 := Names(input)
		if name != "Leucine" || abbrv3 != "Leu" || abbrv1 != "L" {
			t.Errorf("%s: expected Leucine Leu L, got %s %s %s", input, name, abbrv3, abbrv1)
		}
	}

	name, abbrv3, abbrv1 := Names("Selenocysteine")
	if name != "Selenocysteine" || abbrv3 != "Unk" || abbrv1 != "X" {
		t.Errorf("expected unknown residue, got %s %s %s", name, abbrv3, abbrv1)
	}
}

func TestCodes(t *testing.T) {
	if len(Codes) != 20 {
		t.Fatalf("expected 20 codes, got %d", len(Codes))
	}
	for _, c := range Codes {
		if !IsAminoacid(c) {
			t.Errorf("%c should be an aminoacid", c)
		}
	}
	for _, c := range []byte("BJOUXZ*-") {
		if IsAminoacid(c) {
			t.Errorf("%c should not be an aminoacid", c)
		}
	}
}

func TestValidateSequence(t *testing.T) {
	seq, err := ValidateSequence("madq lt\nee")
	if err != nil {
		t.Fatal(err)
	}
	if seq != "MADQLTEE" {
		t.Errorf("expected MADQLTEE, got %s", seq)
	}

	_, err = ValidateSequence("MADXQ")
	var invalid *InvalidResidueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidResidueError, got %v", err)
	}
	if invalid.Position != 4 || invalid.Letter != 'X' {
		t.Errorf("expected X at 4, got %q at %d", invalid.Letter, invalid.Position)
	}

	if _, err = ValidateSequence("MAδ"); err == nil {
		t.Errorf("expected error for non-ASCII letter")
	}
}
