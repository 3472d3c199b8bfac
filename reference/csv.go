package reference

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tikz/secstruct/aminoacid"
	"github.com/tikz/secstruct/http"
)

// RowError locates a malformed reference row.
type RowError struct {
	Index int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var (
	residueColumns   = []string{"RESIDUE", "AA", "AMINOACID"}
	structureColumns = []string{"STRUCTURE", "SS", "DSSP"}
	indexColumns     = []string{"INDEX", "#", "ID", "POSITION"}
)

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToUpper(strings.TrimSpace(h))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}

// ReadCSV parses a delimited reference table.
// The first row is a header naming at least a residue and a structure column.
func ReadCSV(r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	resCol := findColumn(header, residueColumns)
	ssCol := findColumn(header, structureColumns)
	idxCol := findColumn(header, indexColumns)
	if resCol < 0 || ssCol < 0 {
		return nil, errors.New("header must name a residue and a structure column")
	}

	t := &Table{}
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) <= resCol || len(record) <= ssCol {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, max(resCol, ssCol)+1, len(record))
		}

		res := strings.ToUpper(strings.TrimSpace(record[resCol]))
		if len(res) != 1 || !aminoacid.IsAminoacid(res[0]) {
			_, _, abbrv1 := aminoacid.Names(res)
			if abbrv1 == "X" {
				return nil, fmt.Errorf("line %d: unknown residue %q", line, record[resCol])
			}
			res = abbrv1
		}

		obs := Observation{Residue: res[0], Label: strings.TrimSpace(record[ssCol])}
		if idxCol >= 0 && idxCol < len(record) {
			idx, err := strconv.Atoi(strings.TrimSpace(record[idxCol]))
			if err != nil {
				return nil, fmt.Errorf("line %d: index: %w", line, err)
			}
			obs.Index = idx
		}
		t.Add(obs)
	}

	return t, nil
}

func delimiter(ext string) (rune, bool) {
	switch strings.ToLower(ext) {
	case ".csv":
		return ',', true
	case ".tsv", ".tab":
		return '\t', true
	}
	return 0, false
}

// LoadFile reads a reference table from a .csv, .tsv or .tab file.
func LoadFile(path string) (*Table, error) {
	comma, ok := delimiter(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("unsupported reference file extension %q", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference: %w", err)
	}
	defer file.Close()

	t, err := ReadCSV(file, comma)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Fetch downloads a reference table. URLs whose path ends in .tsv or .tab
// are read as tab separated, anything else as comma separated.
func Fetch(ctx context.Context, rawURL string) (*Table, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("reference URL: %w", err)
	}

	raw, err := http.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("download reference: %w", err)
	}

	comma, ok := delimiter(path.Ext(u.Path))
	if !ok {
		comma = ','
	}

	t, err := ReadCSV(bytes.NewReader(raw), comma)
	if err != nil {
		return nil, fmt.Errorf("parse reference: %w", err)
	}
	return t, nil
}
