package pdb

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/tikz/secstruct/aminoacid"
)

// Chain is the primary sequence of one chain as declared in SEQRES records.
type Chain struct {
	ID       string
	Sequence string // one letter codes, X for non-canonical residues
}

// SeqRes parses the SEQRES records of a PDB file, in file order.
// Chains without a single canonical aminoacid (waters, ligands, nucleic acids) are dropped.
func SeqRes(r io.Reader) ([]Chain, error) {
	var chains []Chain
	index := make(map[string]int)
	found := false

	// https://www.wwpdb.org/documentation/file-format-content/format33/sect3.html#SEQRES
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "SEQRES") || len(line) < 20 {
			continue
		}
		found = true

		chain := line[11:12]
		i, ok := index[chain]
		if !ok {
			i = len(chains)
			index[chain] = i
			chains = append(chains, Chain{ID: chain})
		}

		var b strings.Builder
		for _, name := range strings.Fields(line[19:]) {
			// Nucleotides use one or two letter names that would clash with one letter codes.
			if len(name) != 3 {
				b.WriteByte('X')
				continue
			}
			_, _, abbrv1 := aminoacid.Names(name)
			b.WriteString(abbrv1)
		}
		chains[i].Sequence += b.String()
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("SEQRES not found")
	}

	var protein []Chain
	for _, c := range chains {
		if strings.Trim(c.Sequence, "X") != "" {
			protein = append(protein, c)
		}
	}

	return protein, nil
}
