package collisions

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phil-mansfield/goccp"
)

// Separator is the column separator used in cross section files.
const Separator = ';'

// ReadCrossSection reads a two-column cross section table from disk. Column
// 0 is the energy in eV and column 1 the cross section in m^2.
//
// Files ending in .dat or .txt are read as whitespace-separated tables.
// Everything else is read as Separator-delimited text without a header row.
// All failures are returned as *goccp.DataError values naming the file.
func ReadCrossSection(path string, threshold float64) (*CrossSection, error) {
	var (
		energy, value []float64
		err           error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".dat", ".txt":
		energy, value, err = readWhitespaceTable(path)
	default:
		energy, value, err = readSeparatedTable(path)
	}
	if err != nil {
		return nil, err
	}

	return newCrossSection(path, energy, value, threshold)
}

// readWhitespaceTable reads the first two columns of a whitespace-separated
// table. Blank lines and lines starting with '#' are skipped.
func readWhitespaceTable(path string) (energy, value []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &goccp.DataError{
			File: path, Msg: "could not open cross section table", Err: err,
		}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for row := 0; scanner.Scan(); row++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		e, v, err := parseRow(path, row, strings.Fields(line))
		if err != nil {
			return nil, nil, err
		}
		energy, value = append(energy, e), append(value, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &goccp.DataError{
			File: path, Msg: "could not parse cross section table", Err: err,
		}
	}

	return energy, value, nil
}

func readSeparatedTable(path string) (energy, value []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &goccp.DataError{
			File: path, Msg: "could not open cross section table", Err: err,
		}
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.Comma = Separator
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	for row := 0; ; row++ {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, nil, &goccp.DataError{
				File: path, Msg: "could not parse cross section table", Err: err,
			}
		}

		e, v, err := parseRow(path, row, rec)
		if err != nil {
			return nil, nil, err
		}
		energy, value = append(energy, e), append(value, v)
	}

	return energy, value, nil
}

// parseRow parses the energy and cross section columns of a single row.
func parseRow(path string, row int, fields []string) (e, v float64, err error) {
	if len(fields) < 2 {
		return 0, 0, goccp.DataErrorf(path,
			"row %d: expected 2 columns, found %d", row, len(fields),
		)
	}

	e, err = strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, goccp.DataErrorf(path,
			"row %d: energy '%s' is not a number", row, fields[0],
		)
	}
	v, err = strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, 0, goccp.DataErrorf(path,
			"row %d: cross section '%s' is not a number", row, fields[1],
		)
	}
	return e, v, nil
}
