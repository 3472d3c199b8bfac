package fasta

import (
	"bufio"
	"io"
	"strings"
)

// Record is a single FASTA entry.
type Record struct {
	Header   string
	Sequence string
}

// Parse reads FASTA records. Lines starting with '>' open a record and the
// following lines are concatenated. Sequence lines before any header form a
// record with an empty header, so bare sequences are accepted too.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	var current *Record
	var seq strings.Builder

	flush := func() {
		if current != nil {
			current.Sequence = seq.String()
			records = append(records, *current)
		}
		seq.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, ">"):
			flush()
			current = &Record{Header: strings.TrimSpace(line[1:])}
		default:
			if current == nil {
				current = &Record{}
			}
			seq.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()

	return records, nil
}

// ID returns the first word of the header.
func (r Record) ID() string {
	if fields := strings.Fields(r.Header); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
