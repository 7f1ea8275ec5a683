package io

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// ProfileSeparator separates the columns of profile files. It matches the
// separator used by cross section tables.
const ProfileSeparator = ';'

// WriteProfile writes the given columns to a headerless text file with one
// row per element. All columns must have the same length.
func WriteProfile(fname string, cols ...[]float64) error {
	if len(cols) == 0 {
		return fmt.Errorf("No columns given to WriteProfile for '%s'.", fname)
	}
	for i := range cols {
		if len(cols[i]) != len(cols[0]) {
			return fmt.Errorf(
				"Column %d of '%s' has length %d, but column 0 has length %d.",
				i, fname, len(cols[i]), len(cols[0]),
			)
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	wr := csv.NewWriter(f)
	wr.Comma = ProfileSeparator
	rec := make([]string, len(cols))
	for j := range cols[0] {
		for i := range cols {
			rec[i] = strconv.FormatFloat(cols[i][j], 'g', -1, 64)
		}
		if err := wr.Write(rec); err != nil {
			return err
		}
	}
	wr.Flush()
	if err := wr.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteCounts writes an integer history (e.g. particle counts per step) as a
// profile whose first column is the step index.
func WriteCounts(fname string, cols ...[]int) error {
	fcols := make([][]float64, len(cols)+1)
	if len(cols) > 0 {
		fcols[0] = make([]float64, len(cols[0]))
		for i := range fcols[0] {
			fcols[0][i] = float64(i)
		}
	}
	for i, col := range cols {
		fcols[i+1] = make([]float64, len(col))
		for j := range col {
			fcols[i+1][j] = float64(col[j])
		}
	}
	return WriteProfile(fname, fcols...)
}
