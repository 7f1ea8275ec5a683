package io

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DumpFreq is the number of steps buffered before they are written to the
// database in a single transaction.
const DumpFreq = 1000

var (
	preExecStmts = []string{
		"PRAGMA synchronous = OFF;",
		"CREATE TABLE IF NOT EXISTS Runs (RunId TEXT PRIMARY KEY, L REAL, Nx INTEGER, Dt REAL, Steps INTEGER, Volt REAL, Frequency REAL, Seed INTEGER);",
		"CREATE TABLE IF NOT EXISTS Steps (RunId TEXT, Step INTEGER, Time REAL, Voltage REAL, Electrons INTEGER, Ions INTEGER, ElectronsAbsorbed INTEGER, IonsAbsorbed INTEGER, Created INTEGER);",
		"CREATE TABLE IF NOT EXISTS Events (RunId TEXT, Step INTEGER, Species TEXT, Reaction TEXT, Count INTEGER);",
		"CREATE INDEX IF NOT EXISTS Steps_RunId ON Steps (RunId, Step);",
		"CREATE INDEX IF NOT EXISTS Events_RunId ON Events (RunId, Reaction);",
	}

	insertRunSql   = "INSERT INTO Runs VALUES (?, ?, ?, ?, ?, ?, ?, ?);"
	insertStepSql  = "INSERT INTO Steps VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);"
	insertEventSql = "INSERT INTO Events VALUES (?, ?, ?, ?, ?);"
)

// StepRecord is the row stored for a single step.
type StepRecord struct {
	Step                            int
	Time, Voltage                   float64
	Electrons, Ions                 int
	ElectronsAbsorbed, IonsAbsorbed int
	Created                         int
	Events                          []EventCount
}

// EventCount is the number of times a reaction occurred during a step.
type EventCount struct {
	Species, Reaction string
	Count             int
}

// RunDB appends the step history of runs to an SQLite database.
type RunDB struct {
	db    *sql.DB
	runID uuid.UUID
	buf   []StepRecord
}

// OpenRunDB opens (or creates) the database at fname.
func OpenRunDB(fname string) (*RunDB, error) {
	db, err := sql.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}
	for _, s := range preExecStmts {
		if _, err := db.Exec(s); err != nil {
			db.Close()
			return nil, fmt.Errorf("preparing %s: %w", fname, err)
		}
	}
	return &RunDB{db: db}, nil
}

// BeginRun stores the parameters of a new run and returns its RunId. Every
// step inserted afterwards belongs to this run.
func (rdb *RunDB) BeginRun(run RunInfo) (uuid.UUID, error) {
	if err := rdb.flush(); err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, err
	}
	_, err = rdb.db.Exec(insertRunSql, id.String(), run.L, run.Nx, run.Dt,
		run.Steps, run.Volt, run.Frequency, run.Seed)
	if err != nil {
		return uuid.Nil, err
	}

	rdb.runID = id
	return id, nil
}

// RunID returns the id of the current run.
func (rdb *RunDB) RunID() uuid.UUID { return rdb.runID }

// InsertStep buffers a step of the current run. Buffered steps are written
// every DumpFreq steps and by EndRun.
func (rdb *RunDB) InsertStep(rec StepRecord) error {
	if rdb.runID == uuid.Nil {
		return fmt.Errorf("Step %d inserted before BeginRun.", rec.Step)
	}
	rdb.buf = append(rdb.buf, rec)
	if len(rdb.buf) >= DumpFreq {
		return rdb.flush()
	}
	return nil
}

// EndRun writes all buffered steps.
func (rdb *RunDB) EndRun() error { return rdb.flush() }

func (rdb *RunDB) flush() (err error) {
	if len(rdb.buf) == 0 {
		return nil
	}

	tx, err := rdb.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stepStmt, err := tx.Prepare(insertStepSql)
	if err != nil {
		return err
	}
	defer stepStmt.Close()
	eventStmt, err := tx.Prepare(insertEventSql)
	if err != nil {
		return err
	}
	defer eventStmt.Close()

	id := rdb.runID.String()
	for _, rec := range rdb.buf {
		_, err = stepStmt.Exec(id, rec.Step, rec.Time, rec.Voltage,
			rec.Electrons, rec.Ions, rec.ElectronsAbsorbed, rec.IonsAbsorbed,
			rec.Created)
		if err != nil {
			return err
		}
		for _, ev := range rec.Events {
			_, err = eventStmt.Exec(id, rec.Step, ev.Species, ev.Reaction, ev.Count)
			if err != nil {
				return err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	rdb.buf = rdb.buf[:0]
	return nil
}

// Steps returns the stored steps of a run in order. Events are not filled in.
func (rdb *RunDB) Steps(id uuid.UUID) ([]StepRecord, error) {
	rows, err := rdb.db.Query(
		"SELECT Step, Time, Voltage, Electrons, Ions, ElectronsAbsorbed, "+
			"IonsAbsorbed, Created FROM Steps WHERE RunId = ? ORDER BY Step;",
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []StepRecord{}
	for rows.Next() {
		rec := StepRecord{}
		err := rows.Scan(&rec.Step, &rec.Time, &rec.Voltage, &rec.Electrons,
			&rec.Ions, &rec.ElectronsAbsorbed, &rec.IonsAbsorbed, &rec.Created)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// EventTotals returns the number of events of each reaction over a whole
// run, keyed by reaction name.
func (rdb *RunDB) EventTotals(id uuid.UUID) (map[string]int, error) {
	rows, err := rdb.db.Query(
		"SELECT Reaction, SUM(Count) FROM Events WHERE RunId = ? "+
			"GROUP BY Reaction;",
		id.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[string]int{}
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		totals[name] = n
	}
	return totals, rows.Err()
}

// Runs returns the ids of every run in the database.
func (rdb *RunDB) Runs() ([]uuid.UUID, error) {
	rows, err := rdb.db.Query("SELECT RunId FROM Runs;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close writes any buffered steps and closes the database.
func (rdb *RunDB) Close() error {
	err := rdb.flush()
	if cerr := rdb.db.Close(); err == nil {
		err = cerr
	}
	return err
}
