package io

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRunInfo() RunInfo {
	return RunInfo{
		L: 0.067, Dt: 1e-10, Volt: 100, Frequency: 13.56e6,
		Nx: 129, Steps: 3, Seed: 7,
	}
}

func TestRunDB(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "runs.sqlite")
	db, err := OpenRunDB(fname)
	require.NoError(t, err)

	assert.Error(t, db.InsertStep(StepRecord{Step: 0}))

	id, err := db.BeginRun(testRunInfo())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, db.RunID())

	for i := 0; i < 3; i++ {
		require.NoError(t, db.InsertStep(StepRecord{
			Step: i, Time: float64(i+1) * 1e-10, Voltage: float64(i),
			Electrons: 100 + i, Ions: 100 + 2*i, Created: 2,
			Events: []EventCount{
				{"electrons", "ionization", 2},
				{"ions", "charge exchange", i},
			},
		}))
	}

	steps, err := db.Steps(id)
	require.NoError(t, err)
	assert.Len(t, steps, 0, "steps written before EndRun")

	require.NoError(t, db.EndRun())
	steps, err = db.Steps(id)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	for i, rec := range steps {
		if rec.Step != i || rec.Electrons != 100+i || rec.Ions != 100+2*i {
			t.Errorf("%d) Read back step %+v", i, rec)
		}
	}

	totals, err := db.EventTotals(id)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ionization": 6, "charge exchange": 3}, totals)

	require.NoError(t, db.Close())
}

func TestRunDBSharedFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "runs.sqlite")

	ids := []uuid.UUID{}
	for run := 0; run < 2; run++ {
		db, err := OpenRunDB(fname)
		require.NoError(t, err)
		id, err := db.BeginRun(testRunInfo())
		require.NoError(t, err)
		require.NoError(t, db.InsertStep(StepRecord{Step: 0, Electrons: run}))
		require.NoError(t, db.Close())
		ids = append(ids, id)
	}
	assert.NotEqual(t, ids[0], ids[1])

	db, err := OpenRunDB(fname)
	require.NoError(t, err)
	defer db.Close()

	runs, err := db.Runs()
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, runs)

	for i, id := range ids {
		steps, err := db.Steps(id)
		require.NoError(t, err)
		require.Len(t, steps, 1)
		assert.Equal(t, i, steps[0].Electrons)
	}
}

func TestRunDBDumpFreq(t *testing.T) {
	db, err := OpenRunDB(filepath.Join(t.TempDir(), "runs.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	id, err := db.BeginRun(testRunInfo())
	require.NoError(t, err)
	for i := 0; i < DumpFreq+1; i++ {
		require.NoError(t, db.InsertStep(StepRecord{Step: i}))
	}

	steps, err := db.Steps(id)
	require.NoError(t, err)
	assert.Len(t, steps, DumpFreq)
}
