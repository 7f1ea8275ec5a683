package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"
)

var end = binary.LittleEndian

/*
The binary format used for averaged profile files is as follows:
    |-- 1 --||-- 2 --||-- ... 3 ... --|

    1 - (GridHeader) Header containing meta-information about the run which
        produced the grids.
    2 - (int64) Number of grids, Count.
    3 - Count repetitions of an int64 GridFlag followed by Nx float64 values.

Files are always little endian. The Endianness field of the header is -1 so
that readers can check this.
*/

// GridHeader describes the run which produced a set of profile grids.
type GridHeader struct {
	Type TypeInfo
	Run  RunInfo
}

type TypeInfo struct {
	Endianness int64
	HeaderSize int64
}

// RunInfo contains the parameters needed to interpret a profile grid.
type RunInfo struct {
	L, Dt, Volt, Frequency  float64
	Nx, Steps, AverageSteps int64
	Seed                    int64
}

type GridFlag int64

const (
	ElectronDensity GridFlag = iota
	IonDensity
	Potential
	ElectricField
	EndGridFlag
)

func (flag GridFlag) String() string {
	switch flag {
	case ElectronDensity:
		return "ElectronDensity"
	case IonDensity:
		return "IonDensity"
	case Potential:
		return "Potential"
	case ElectricField:
		return "ElectricField"
	}
	return fmt.Sprintf("GridFlag(%d)", int64(flag))
}

// NewRunInfo creates a RunInfo describing the given configuration.
func NewRunInfo(con *SimulationConfig) RunInfo {
	return RunInfo{
		L: con.L, Dt: con.Dt, Volt: con.Volt, Frequency: con.Frequency,
		Nx: int64(con.Nx), Steps: int64(con.Steps),
		AverageSteps: int64(con.AverageSteps), Seed: con.Seed,
	}
}

// WriteGrids writes the given grids, each tagged by the flag at the same
// index, to wr. Every grid must have run.Nx elements.
func WriteGrids(
	wr io.Writer, run RunInfo, flags []GridFlag, grids [][]float64,
) error {
	if len(flags) != len(grids) {
		return fmt.Errorf(
			"Given %d grid flags, but %d grids.", len(flags), len(grids),
		)
	}

	hd := GridHeader{}
	hd.Type.Endianness = -1
	hd.Type.HeaderSize = int64(unsafe.Sizeof(hd))
	hd.Run = run

	if err := binary.Write(wr, end, &hd); err != nil {
		return err
	}
	if err := binary.Write(wr, end, int64(len(grids))); err != nil {
		return err
	}
	for i, grid := range grids {
		if int64(len(grid)) != run.Nx {
			return fmt.Errorf(
				"%s grid has %d points, but Nx = %d.",
				flags[i], len(grid), run.Nx,
			)
		}
		if err := binary.Write(wr, end, int64(flags[i])); err != nil {
			return err
		}
		if err := binary.Write(wr, end, grid); err != nil {
			return err
		}
	}
	return nil
}

// WriteGridFile writes grids to the file fname. See WriteGrids.
func WriteGridFile(
	fname string, run RunInfo, flags []GridFlag, grids [][]float64,
) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteGrids(f, run, flags, grids); err != nil {
		return err
	}
	return f.Close()
}

// ReadGrids reads grids written by WriteGrids.
func ReadGrids(rd io.Reader) (*GridHeader, []GridFlag, [][]float64, error) {
	hd := &GridHeader{}
	if err := binary.Read(rd, end, hd); err != nil {
		return nil, nil, nil, err
	}
	if hd.Type.Endianness != -1 {
		return nil, nil, nil, fmt.Errorf(
			"Unrecognized endianness flag %d.", hd.Type.Endianness,
		)
	} else if hd.Type.HeaderSize != int64(unsafe.Sizeof(*hd)) {
		return nil, nil, nil, fmt.Errorf(
			"Header size is %d, but expected %d.",
			hd.Type.HeaderSize, unsafe.Sizeof(*hd),
		)
	} else if hd.Run.Nx < 0 {
		return nil, nil, nil, fmt.Errorf("Negative grid size %d.", hd.Run.Nx)
	}

	var count int64
	if err := binary.Read(rd, end, &count); err != nil {
		return nil, nil, nil, err
	}
	if count < 0 || count > int64(EndGridFlag) {
		return nil, nil, nil, fmt.Errorf("Invalid grid count %d.", count)
	}

	flags := make([]GridFlag, count)
	grids := make([][]float64, count)
	for i := range grids {
		var flag int64
		if err := binary.Read(rd, end, &flag); err != nil {
			return nil, nil, nil, err
		}
		if flag < 0 || flag >= int64(EndGridFlag) {
			return nil, nil, nil, fmt.Errorf("Invalid grid flag %d.", flag)
		}
		flags[i] = GridFlag(flag)

		var err error
		if grids[i], err = readGrid(rd, hd.Run.Nx); err != nil {
			return nil, nil, nil, err
		}
	}

	return hd, flags, grids, nil
}

// gridChunk is the number of values readGrid reads at a time.
const gridChunk = 1 << 14

// readGrid reads nx float64 values. Memory is only allocated for values
// which are actually present, so a corrupt header cannot force a large
// allocation.
func readGrid(rd io.Reader, nx int64) ([]float64, error) {
	grid := make([]float64, 0, min(nx, gridChunk))
	buf := make([]float64, min(nx, gridChunk))
	for remaining := nx; remaining > 0; {
		chunk := buf[:min(remaining, gridChunk)]
		if err := binary.Read(rd, end, chunk); err != nil {
			return nil, fmt.Errorf(
				"Grid ended after %d of %d points: %w", int64(len(grid)), nx, err,
			)
		}
		grid = append(grid, chunk...)
		remaining -= int64(len(chunk))
	}
	return grid, nil
}
