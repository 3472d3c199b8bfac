package dssp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tikz/secstruct/aminoacid"
	"github.com/tikz/secstruct/reference"
	"github.com/tikz/secstruct/structure"
)

// Binary is the DSSP executable used by Run.
var Binary = "mkdssp"

// Residue is a single line of the DSSP residue section.
type Residue struct {
	Number   int64  // sequential DSSP number
	Position int64  // PDB residue number
	Chain    string // PDB chain ID
	Residue  byte   // one letter code
	Label    string // eight-state structure, blank for loops
}

// Parse reads the residue section of classic DSSP output.
// https://swift.cmbi.umcn.nl/gv/dssp/
func Parse(r io.Reader) ([]Residue, error) {
	var residues []Residue

	start := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		l := scanner.Text()
		if !start {
			if len(l) > 2 && l[2] == '#' {
				start = true
			}
			continue
		}
		if len(l) < 17 {
			continue
		}

		// Chain breaks are marked with '!' in the aminoacid column.
		aa := l[13]
		if aa == '!' {
			continue
		}
		// Half-cystines in disulfide bridges are lower-case letters.
		if aa >= 'a' && aa <= 'z' {
			aa = 'C'
		}
		if !aminoacid.IsAminoacid(aa) {
			continue
		}

		number, err := strconv.ParseInt(strings.TrimSpace(l[0:5]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse DSSP number %q: %v", l[0:5], err)
		}
		pos, err := strconv.ParseInt(strings.TrimSpace(l[5:10]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse PDB residue number %q: %v", l[5:10], err)
		}

		residues = append(residues, Residue{
			Number:   number,
			Position: pos,
			Chain:    string(l[11]),
			Residue:  aa,
			Label:    string(l[16]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !start {
		return nil, errors.New("DSSP residue section not found")
	}

	return residues, nil
}

// Observations converts DSSP residues into reference observations.
func Observations(residues []Residue) []reference.Observation {
	obs := make([]reference.Observation, len(residues))
	for i, r := range residues {
		obs[i] = reference.Observation{
			Index:   int(r.Number),
			Residue: r.Residue,
			Label:   r.Label,
		}
	}
	return obs
}

// Chain is the sequence of one chain with its observed three-state classes.
type Chain struct {
	ID       string
	Sequence string
	Classes  []structure.Class
}

// Chains groups residues by chain, in order of appearance.
func Chains(residues []Residue) ([]Chain, error) {
	var chains []Chain
	index := make(map[string]int)

	for _, r := range residues {
		i, ok := index[r.Chain]
		if !ok {
			i = len(chains)
			index[r.Chain] = i
			chains = append(chains, Chain{ID: r.Chain})
		}

		class, err := structure.Reduce(r.Label)
		if err != nil {
			return nil, fmt.Errorf("residue %d: %v", r.Number, err)
		}
		chains[i].Sequence += string(r.Residue)
		chains[i].Classes = append(chains[i].Classes, class)
	}

	return chains, nil
}

// Run calculates secondary structure for a PDB file.
func Run(ctx context.Context, pdbPath string) ([]Residue, error) {
	cmd := exec.CommandContext(ctx, Binary, "-i", pdbPath)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %s", Binary, err, strings.TrimSpace(string(out)))
	}

	return Parse(bytes.NewReader(out))
}

// Table builds a reference table from DSSP output files.
func Table(paths ...string) (*reference.Table, error) {
	t := &reference.Table{}
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}

		residues, err := Parse(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %v", path, err)
		}

		// Renumber so indexes stay unique across files.
		for _, o := range Observations(residues) {
			o.Index = 0
			t.Add(o)
		}
	}

	return t, nil
}
