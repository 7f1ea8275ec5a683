package sim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phil-mansfield/goccp/io"
)

// Diagnostics averages the densities, potential and electric field over the
// final AverageSteps steps of a run. It also records the particle counts of
// every step and writes both to an output directory at the end of the run.
type Diagnostics struct {
	// Dir is the output directory. Nothing is written if it is empty.
	Dir string
	// Plot queues up figures of the averaged profiles. They are drawn by
	// pyplot's Execute.
	Plot bool

	samples int
	ne, ni  []float64
	phi, ef []float64
	eCounts []int
	iCounts []int
}

// Samples returns the number of steps that have been averaged.
func (d *Diagnostics) Samples() int { return d.samples }

// Counts returns the electron and ion counts after every step.
func (d *Diagnostics) Counts() (electrons, ions []int) {
	return d.eCounts, d.iCounts
}

// Averages returns the time-averaged electron and ion densities [m^-3] and
// potential [V].
func (d *Diagnostics) Averages() (ne, ni, phi []float64) {
	ne, ni, phi = make([]float64, len(d.ne)), make([]float64, len(d.ni)),
		make([]float64, len(d.phi))
	if d.samples == 0 {
		return ne, ni, phi
	}
	k := 1 / float64(d.samples)
	for i := range ne {
		ne[i], ni[i], phi[i] = d.ne[i]*k, d.ni[i]*k, d.phi[i]*k
	}
	return ne, ni, phi
}

// AverageField returns the time-averaged electric field [V/m].
func (d *Diagnostics) AverageField() []float64 {
	ef := make([]float64, len(d.ef))
	if d.samples == 0 {
		return ef
	}
	for i := range ef {
		ef[i] = d.ef[i] / float64(d.samples)
	}
	return ef
}

func (d *Diagnostics) Notify(ev Event, st State) error {
	con := st.Config()
	switch ev {
	case Start:
		d.samples = 0
		d.ne = make([]float64, con.Nx)
		d.ni = make([]float64, con.Nx)
		d.phi = make([]float64, con.Nx)
		d.ef = make([]float64, con.Nx)
		d.eCounts = make([]int, 0, con.Steps)
		d.iCounts = make([]int, 0, con.Steps)

	case Step:
		d.eCounts = append(d.eCounts, st.Electrons().N())
		d.iCounts = append(d.iCounts, st.Ions().N())

		averageSteps := con.AverageSteps
		if averageSteps <= 0 || averageSteps > con.Steps {
			averageSteps = con.Steps
		}
		if st.Step() < con.Steps-averageSteps {
			return nil
		}

		w := con.ParticleWeight()
		ne, ni := st.ElectronDensity().Data, st.IonDensity().Data
		phi, ef := st.Potential().Data, st.ElectricField().Data
		for i := range d.ne {
			d.ne[i] += ne[i] * w
			d.ni[i] += ni[i] * w
			d.phi[i] += phi[i]
			d.ef[i] += ef[i]
		}
		d.samples++

	case End:
		if d.Dir == "" {
			return nil
		}
		return d.write(st)
	}
	return nil
}

func (d *Diagnostics) write(st State) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return err
	}

	xs := st.Potential().Xs()
	ne, ni, phi := d.Averages()

	if err := io.WriteProfile(
		filepath.Join(d.Dir, "density.csv"), xs, ne, ni,
	); err != nil {
		return fmt.Errorf("writing densities: %w", err)
	}
	if err := io.WriteProfile(
		filepath.Join(d.Dir, "potential.csv"), xs, phi,
	); err != nil {
		return fmt.Errorf("writing potential: %w", err)
	}
	if err := io.WriteCounts(
		filepath.Join(d.Dir, "counts.csv"), d.eCounts, d.iCounts,
	); err != nil {
		return fmt.Errorf("writing counts: %w", err)
	}

	con := st.Config()
	run := io.NewRunInfo(con)
	run.AverageSteps = int64(d.samples)
	err := io.WriteGridFile(
		filepath.Join(d.Dir, "profiles.grid"), run,
		[]io.GridFlag{
			io.ElectronDensity, io.IonDensity, io.Potential, io.ElectricField,
		},
		[][]float64{ne, ni, phi, d.AverageField()},
	)
	if err != nil {
		return fmt.Errorf("writing grids: %w", err)
	}

	if d.Plot {
		io.PlotProfiles(filepath.Join(d.Dir, "profiles"), xs, ne, ni, phi)
	}
	return nil
}
