package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/secstruct/fasta"
	"github.com/tikz/secstruct/gor"
	"github.com/tikz/secstruct/structure"
)

func TestQueries(t *testing.T) {
	qs, err := queries("MKV", "", "../../pdb/testdata/1mso.pdb", "../../dssp/testdata/1tst.dssp")
	require.NoError(t, err)
	require.Len(t, qs, 5)

	assert.Equal(t, "query", qs[0].Record.Header)
	assert.Equal(t, "1mso-A", qs[1].Record.Header)
	assert.Equal(t, "GIVEQCCTSICSLYQLENYCN", qs[1].Record.Sequence)
	assert.Equal(t, "1mso-B", qs[2].Record.Header)
	assert.Nil(t, qs[2].Observed)

	assert.Equal(t, "1tst-A", qs[3].Record.Header)
	assert.Equal(t, "MADQC", qs[3].Record.Sequence)
	assert.Len(t, qs[3].Observed, 5)

	_, err = queries("", "", "does-not-exist.pdb", "")
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	rec := fasta.Record{Header: "test protein"}
	preds := []gor.Prediction{
		{Position: 1, Residue: 'M', Class: structure.Unclassified},
		{Position: 2, Residue: 'A', Class: structure.Helix, Scores: gor.Triple{1, 0.5, -1}},
		{Position: 3, Residue: 'V', Class: structure.Sheet, Scores: gor.Triple{0.1, 0.5, -1}},
	}
	eval := &gor.Evaluation{Compared: 2, Correct: 1}

	var text bytes.Buffer
	require.NoError(t, writeText(&text, rec, gor.GOR4, preds, "", eval))
	assert.True(t, strings.HasPrefix(text.String(), "# test (GOR4, 3 residues)\n# Q3 0.500 over 2 positions\nM : -\n"))

	var raw bytes.Buffer
	require.NoError(t, writeJSON(&raw, rec, gor.GOR4, preds, "run-1", eval, true))

	var out outputData
	require.NoError(t, json.Unmarshal(raw.Bytes(), &out))
	assert.Equal(t, "-HE", out.Prediction)
	assert.Equal(t, "run-1", out.RunID)
	require.NotNil(t, out.Q3)
	assert.InDelta(t, 0.5, *out.Q3, 1e-12)
	assert.InDelta(t, 0.5, out.Composition["helix"], 1e-12)
	require.Len(t, out.Residues, 3)
	assert.Equal(t, "E", out.Residues[2].Class)
}
