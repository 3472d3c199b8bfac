package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tikz/secstruct/gor"
	"github.com/tikz/secstruct/reference"
	"github.com/tikz/secstruct/structure"
)

// ErrNotFound is returned when a table or run does not exist.
var ErrNotFound = errors.New("not found")

type DB struct {
	*sql.DB
}

// Run is a stored classification of one sequence.
type Run struct {
	ID          string
	Variant     string
	Sequence    string
	CreatedAt   time.Time
	Predictions []gor.Prediction
}

// NewDB opens (or creates) a SQLite database and migrates it to the latest schema.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	d := &DB{db}
	if err := d.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// SaveTable replaces the stored observations of a named reference table.
func (db *DB) SaveTable(name string, t *reference.Table) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM observations WHERE table_name = ?`, name); err != nil {
		return fmt.Errorf("clear table %s: %w", name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO observations (table_name, idx, residue, label) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range t.Observations {
		if _, err := stmt.Exec(name, o.Index, string(o.Residue), o.Label); err != nil {
			return fmt.Errorf("insert observation %d: %w", o.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("[store] saved reference table %q with %d observations", name, t.Len())
	return nil
}

// LoadTable reads a named reference table in its stored order.
func (db *DB) LoadTable(name string) (*reference.Table, error) {
	rows, err := db.Query(`SELECT idx, residue, label FROM observations WHERE table_name = ? ORDER BY rowid`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := &reference.Table{}
	for rows.Next() {
		var o reference.Observation
		var residue string
		if err := rows.Scan(&o.Index, &residue, &o.Label); err != nil {
			return nil, err
		}
		if len(residue) != 1 {
			return nil, fmt.Errorf("observation %d: bad residue %q", o.Index, residue)
		}
		o.Residue = residue[0]
		t.Observations = append(t.Observations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, fmt.Errorf("reference table %q: %w", name, ErrNotFound)
	}

	return t, nil
}

// RecordRun stores the predictions of one sequence and returns the new run ID.
// The stored sequence is the one the positions refer to.
func (db *DB) RecordRun(v gor.Variant, preds []gor.Prediction) (string, error) {
	id := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs (run_id, variant, sequence, created_at) VALUES (?, ?, ?, ?)`,
		id, v.String(), gor.Sequence(preds), time.Now().Unix()); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO predictions (run_id, position, residue, class, helix, sheet, coil) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, p := range preds {
		_, err := stmt.Exec(id, p.Position, string(p.Residue), p.Class.String(),
			p.Scores.Get(structure.Helix), p.Scores.Get(structure.Sheet), p.Scores.Get(structure.Coil))
		if err != nil {
			return "", fmt.Errorf("insert prediction %d: %w", p.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Run reads back a stored run.
func (db *DB) Run(id string) (*Run, error) {
	run := &Run{ID: id}
	var createdAtUnix int64
	err := db.QueryRow(`SELECT variant, sequence, created_at FROM runs WHERE run_id = ?`, id).
		Scan(&run.Variant, &run.Sequence, &createdAtUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	run.CreatedAt = time.Unix(createdAtUnix, 0)

	rows, err := db.Query(`SELECT position, residue, class, helix, sheet, coil FROM predictions WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p gor.Prediction
		var residue, class string
		err := rows.Scan(&p.Position, &residue, &class,
			&p.Scores[structure.Helix], &p.Scores[structure.Sheet], &p.Scores[structure.Coil])
		if err != nil {
			return nil, err
		}
		if p.Class, err = structure.Parse(class); err != nil {
			return nil, err
		}
		if len(residue) != 1 {
			return nil, fmt.Errorf("prediction %d: bad residue %q", p.Position, residue)
		}
		p.Residue = residue[0]
		run.Predictions = append(run.Predictions, p)
	}

	return run, rows.Err()
}
