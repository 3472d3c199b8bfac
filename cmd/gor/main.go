package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tikz/secstruct/config"
	"github.com/tikz/secstruct/dssp"
	"github.com/tikz/secstruct/fasta"
	"github.com/tikz/secstruct/gor"
	"github.com/tikz/secstruct/http"
	"github.com/tikz/secstruct/pdb"
	"github.com/tikz/secstruct/reference"
	"github.com/tikz/secstruct/store"
	"github.com/tikz/secstruct/structure"
)

type outputData struct {
	Name        string             `json:"name"`
	Variant     string             `json:"variant"`
	Length      int                `json:"length"`
	Prediction  string             `json:"prediction"`
	Composition map[string]float64 `json:"composition"`
	RunID       string             `json:"run_id,omitempty"`
	Q3          *float64           `json:"q3,omitempty"`
	Residues    []residueOut       `json:"residues,omitempty"`
}

type residueOut struct {
	Position int     `json:"position"`
	Residue  string  `json:"residue"`
	Class    string  `json:"class"`
	Helix    float64 `json:"helix"`
	Sheet    float64 `json:"sheet"`
	Coil     float64 `json:"coil"`
}

func main() {
	var (
		configPath string
		ref        string
		variant    string
		sequence   string
		fastaPath  string
		pdbPath    string
		dsspPath   string
		dbPath     string
		saveTable  string
		jsonOut    bool
		withScores bool
	)

	flag.StringVar(&configPath, "config", "", "JSON config file")
	flag.StringVar(&ref, "ref", "", "Reference table: .csv/.tsv file, .dssp files (comma separated), http(s) URL or sqlite:<name>")
	flag.StringVar(&variant, "variant", "", "GOR variant: gor3, gor4, gor5")
	flag.StringVar(&variant, "v", "", "GOR variant: gor3, gor4, gor5")
	flag.StringVar(&sequence, "sequence", "", "Protein sequence")
	flag.StringVar(&sequence, "s", "", "Protein sequence")
	flag.StringVar(&fastaPath, "fasta", "", "FASTA file with query sequences (- for stdin)")
	flag.StringVar(&pdbPath, "pdb", "", "PDB file whose SEQRES chains are classified")
	flag.StringVar(&dsspPath, "observed", "", "DSSP output whose chains are classified and scored against the observed structure")
	flag.StringVar(&dbPath, "db", "", "SQLite database for reference tables and runs")
	flag.StringVar(&saveTable, "save-table", "", "Store the loaded reference table in the database under this name")
	flag.BoolVar(&jsonOut, "json", false, "Output JSON")
	flag.BoolVar(&withScores, "scores", false, "Include per-residue scores in JSON output")
	flag.Parse()

	log.SetFlags(0)

	cfg := config.Empty()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatalf("[gor] %v", err)
		}
	}
	cfg.SetReference(ref)
	cfg.SetVariant(variant)
	cfg.SetDB(dbPath)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[gor] %v", err)
	}
	http.Timeout = cfg.GetFetchTimeout()

	if cfg.GetReference() == "" {
		fmt.Fprintln(os.Stderr, "a reference table is required (-ref or config \"reference\")")
		flag.Usage()
		os.Exit(2)
	}

	records, err := queries(sequence, fastaPath, pdbPath, dsspPath)
	if err != nil {
		log.Fatalf("[gor] %v", err)
	}
	if len(records) == 0 && saveTable == "" {
		fmt.Fprintln(os.Stderr, "no query sequence given (-sequence, -fasta, -pdb or -observed)")
		os.Exit(2)
	}

	var db *store.DB
	if cfg.GetDB() != "" {
		if db, err = store.NewDB(cfg.GetDB()); err != nil {
			log.Fatalf("[gor] open database: %v", err)
		}
		defer db.Close()
	}

	ctx := context.Background()
	table, err := loadReference(ctx, cfg, db)
	if err != nil {
		log.Fatalf("[gor] load reference: %v", err)
	}
	table.Sentinel = cfg.GetMissingSentinel()

	if saveTable != "" {
		if db == nil {
			log.Fatalf("[gor] -save-table requires -db")
		}
		if err := db.SaveTable(saveTable, table); err != nil {
			log.Fatalf("[gor] %v", err)
		}
	}

	model, err := gor.NewModel(table)
	if err != nil {
		log.Fatalf("[gor] build model: %v", err)
	}
	counts := model.Counts()
	log.Printf("[gor] reference table: %d observations, %d without structure, H/E/C %v",
		table.Len(), counts.Missing, counts.Totals)

	v := cfg.GetVariant()
	failed := false
	for _, q := range records {
		rec := q.Record
		preds, err := model.Classify(v, rec.Sequence)
		if err != nil {
			log.Printf("[gor] %s: %v", name(rec), err)
			failed = true
			continue
		}

		var eval *gor.Evaluation
		if q.Observed != nil {
			e, err := gor.Evaluate(preds, q.Observed)
			if err != nil {
				log.Fatalf("[gor] %s: %v", name(rec), err)
			}
			eval = &e
		}

		var runID string
		if db != nil {
			if runID, err = db.RecordRun(v, preds); err != nil {
				log.Fatalf("[gor] record run: %v", err)
			}
		}

		if jsonOut {
			err = writeJSON(os.Stdout, rec, v, preds, runID, eval, withScores)
		} else {
			err = writeText(os.Stdout, rec, v, preds, runID, eval)
		}
		if err != nil {
			log.Fatalf("[gor] write output: %v", err)
		}
	}

	if failed {
		os.Exit(1)
	}
}

type query struct {
	Record   fasta.Record
	Observed []structure.Class
}

func queries(sequence, fastaPath, pdbPath, dsspPath string) ([]query, error) {
	var qs []query
	if sequence != "" {
		qs = append(qs, query{Record: fasta.Record{Header: "query", Sequence: sequence}})
	}

	if fastaPath != "" {
		var r io.Reader = os.Stdin
		if fastaPath != "-" {
			file, err := os.Open(fastaPath)
			if err != nil {
				return nil, err
			}
			defer file.Close()
			r = file
		}

		parsed, err := fasta.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("parse FASTA: %w", err)
		}
		for _, rec := range parsed {
			qs = append(qs, query{Record: rec})
		}
	}

	if pdbPath != "" {
		file, err := os.Open(pdbPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		chains, err := pdb.SeqRes(file)
		if err != nil {
			return nil, fmt.Errorf("parse PDB: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(pdbPath), filepath.Ext(pdbPath))
		for _, c := range chains {
			qs = append(qs, query{Record: fasta.Record{Header: base + "-" + c.ID, Sequence: c.Sequence}})
		}
	}

	if dsspPath != "" {
		file, err := os.Open(dsspPath)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		residues, err := dssp.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("parse DSSP: %w", err)
		}
		chains, err := dssp.Chains(residues)
		if err != nil {
			return nil, fmt.Errorf("parse DSSP: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(dsspPath), filepath.Ext(dsspPath))
		for _, c := range chains {
			qs = append(qs, query{
				Record:   fasta.Record{Header: base + "-" + c.ID, Sequence: c.Sequence},
				Observed: c.Classes,
			})
		}
	}

	return qs, nil
}

func loadReference(ctx context.Context, cfg *config.Config, db *store.DB) (*reference.Table, error) {
	ref := cfg.GetReference()
	switch {
	case strings.HasPrefix(ref, "sqlite:"):
		if db == nil {
			return nil, errors.New("sqlite reference requires -db")
		}
		return db.LoadTable(strings.TrimPrefix(ref, "sqlite:"))
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		cache, err := store.NewCache(cfg.GetCacheDir())
		if err != nil {
			return nil, err
		}
		return cache.LoadReference(ctx, ref)
	case strings.EqualFold(filepath.Ext(strings.Split(ref, ",")[0]), ".dssp"):
		return dssp.Table(strings.Split(ref, ",")...)
	}
	return reference.LoadFile(ref)
}

func name(rec fasta.Record) string {
	if id := rec.ID(); id != "" {
		return id
	}
	return "query"
}

func writeText(w io.Writer, rec fasta.Record, v gor.Variant, preds []gor.Prediction, runID string, eval *gor.Evaluation) error {
	fmt.Fprintf(w, "# %s (%s, %d residues)\n", name(rec), v, len(preds))
	if runID != "" {
		fmt.Fprintf(w, "# run %s\n", runID)
	}
	if eval != nil {
		fmt.Fprintf(w, "# Q3 %.3f over %d positions\n", eval.Q3(), eval.Compared)
	}
	return gor.Write(w, preds)
}

func writeJSON(w io.Writer, rec fasta.Record, v gor.Variant, preds []gor.Prediction, runID string, eval *gor.Evaluation, scores bool) error {
	comp := gor.Composition(preds)
	out := outputData{
		Name:       name(rec),
		Variant:    v.String(),
		Length:     len(preds),
		Prediction: gor.String(preds),
		Composition: map[string]float64{
			"helix": comp[structure.Helix],
			"sheet": comp[structure.Sheet],
			"coil":  comp[structure.Coil],
		},
		RunID: runID,
	}
	if eval != nil {
		q3 := eval.Q3()
		out.Q3 = &q3
	}

	if scores {
		for _, p := range preds {
			out.Residues = append(out.Residues, residueOut{
				Position: p.Position,
				Residue:  string(p.Residue),
				Class:    p.Class.String(),
				Helix:    p.Scores.Get(structure.Helix),
				Sheet:    p.Scores.Get(structure.Sheet),
				Coil:     p.Scores.Get(structure.Coil),
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
