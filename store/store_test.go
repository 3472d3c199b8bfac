package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/secstruct/gor"
	"github.com/tikz/secstruct/reference"
	"github.com/tikz/secstruct/structure"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "secstruct.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secstruct.db")
	db, err := NewDB(path)
	require.NoError(t, err)

	version, dirty, err := db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, db.Close())

	// Reopening an up to date database is a no-op.
	db, err = NewDB(path)
	require.NoError(t, err)
	defer db.Close()
	version, _, err = db.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestTableRoundTrip(t *testing.T) {
	db := newTestDB(t)

	table := reference.NewTable(
		reference.Observation{Residue: 'A', Label: "H"},
		reference.Observation{Residue: 'G', Label: "NaN"},
		reference.Observation{Residue: 'V', Label: "E"},
	)
	require.NoError(t, db.SaveTable("test", table))

	loaded, err := db.LoadTable("test")
	require.NoError(t, err)
	assert.Equal(t, table.Observations, loaded.Observations)

	// Saving again replaces the previous rows.
	table.Add(reference.Observation{Residue: 'L', Label: "T"})
	require.NoError(t, db.SaveTable("test", table))
	loaded, err = db.LoadTable("test")
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Len())

	_, err = db.LoadTable("other")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRecordRun(t *testing.T) {
	db := newTestDB(t)

	preds := []gor.Prediction{
		{Position: 1, Residue: 'M', Class: structure.Unclassified},
		{Position: 2, Residue: 'A', Class: structure.Helix, Scores: gor.Triple{1.5, -0.5, 0.25}},
	}

	id, err := db.RecordRun(gor.GOR3, preds)
	require.NoError(t, err)
	require.Len(t, id, 36)

	run, err := db.Run(id)
	require.NoError(t, err)
	assert.Equal(t, "GOR3", run.Variant)
	assert.Equal(t, "MA", run.Sequence)
	assert.False(t, run.CreatedAt.IsZero())
	assert.Equal(t, preds, run.Predictions)

	other, err := db.RecordRun(gor.GOR3, preds)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	_, err = db.Run("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRunBadResidue(t *testing.T) {
	db := newTestDB(t)

	id, err := db.RecordRun(gor.GOR4, []gor.Prediction{{Position: 1, Residue: 'M', Class: structure.Coil}})
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE predictions SET residue = '' WHERE run_id = ?`, id)
	require.NoError(t, err)

	_, err = db.Run(id)
	assert.ErrorContains(t, err, "bad residue")
}

func TestCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("INDEX,RESIDUE,STRUCTURE\n1,A,H\n2,G,E\n3,P,NaN\n"))
	}))
	defer srv.Close()

	cache, err := NewCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	ctx := context.Background()
	first, err := cache.LoadReference(ctx, srv.URL+"/ref.csv")
	require.NoError(t, err)
	second, err := cache.LoadReference(ctx, srv.URL+"/ref.csv")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, first.Observations, second.Observations)

	require.NoError(t, cache.Forget(srv.URL+"/ref.csv"))
	require.NoError(t, cache.Forget(srv.URL+"/ref.csv"))
	_, err = cache.LoadReference(ctx, srv.URL+"/ref.csv")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
