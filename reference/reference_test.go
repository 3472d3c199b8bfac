package reference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/secstruct/structure"
)

const sampleCSV = `INDEX,CHAIN,RESIDUE,STRUCTURE
1,A,M,NaN
2,A,A,H
3,A,D,G
4,A,Q,E
5,A,Leu,B
6,A,T,T
7,A,E,S
8,A,E,
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV), ',')
	require.NoError(t, err)
	require.Equal(t, 8, table.Len())

	assert.Equal(t, byte('L'), table.Observations[4].Residue)
	assert.Equal(t, 5, table.Observations[4].Index)

	counts, err := table.Counts()
	require.NoError(t, err)

	// NaN and the empty label are both missing.
	assert.Equal(t, 2, counts.Missing)
	assert.Equal(t, [structure.NumClasses]int{2, 2, 2}, counts.Totals)
	assert.Equal(t, [structure.NumClasses]int{0, 0, 1}, counts.Residues['E'])
	assert.Equal(t, [structure.NumClasses]int{1, 0, 0}, counts.Residues['A'])
	_, ok := counts.Residues['M']
	assert.False(t, ok)
}

func TestReadCSVErrors(t *testing.T) {
	cases := map[string]string{
		"no structure column": "RESIDUE,FOO\nA,H\n",
		"unknown residue":     "RESIDUE,STRUCTURE\nZ,H\n",
		"bad index":           "INDEX,RESIDUE,STRUCTURE\nx,A,H\n",
		"short row":           "RESIDUE,STRUCTURE\nA\n",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input), ',')
			assert.Error(t, err)
		})
	}
}

func TestCountsUnknownLabel(t *testing.T) {
	table := NewTable(Observation{Residue: 'A', Label: "H"}, Observation{Residue: 'A', Label: "Q"})

	_, err := table.Counts()
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Index)
}

func TestCustomSentinel(t *testing.T) {
	table := NewTable(Observation{Residue: 'A', Label: "?"}, Observation{Residue: 'A', Label: "H"})
	table.Sentinel = "?"

	counts, err := table.Counts()
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Missing)
	assert.Equal(t, 1, counts.Totals[structure.Helix])
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RESIDUE\tSS\nA\tH\nG\tE\n"))
	}))
	defer srv.Close()

	for _, path := range []string{"/ref.tsv", "/ref.TAB", "/ref.tsv?version=2", "/ref.tab#top"} {
		t.Run(path, func(t *testing.T) {
			table, err := Fetch(context.Background(), srv.URL+path)
			require.NoError(t, err)
			assert.Equal(t, 2, table.Len())
			assert.Equal(t, "E", table.Observations[1].Label)
		})
	}
}

func TestFetchComma(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RESIDUE,SS\nA,H\nG,E\nV,C\n"))
	}))
	defer srv.Close()

	table, err := Fetch(context.Background(), srv.URL+"/download?format=tsv")
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}
