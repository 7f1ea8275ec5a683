package sim

import (
	"log"

	"github.com/phil-mansfield/goccp/collisions"
)

// LogObserver logs the progress of a run every Interval steps.
type LogObserver struct {
	Interval int
	// Logger defaults to the standard logger.
	Logger *log.Logger

	eTotal, iTotal collisions.Stats
}

func (lo *LogObserver) printf(format string, args ...interface{}) {
	if lo.Logger == nil {
		log.Printf(format, args...)
	} else {
		lo.Logger.Printf(format, args...)
	}
}

func (lo *LogObserver) Notify(ev Event, st State) error {
	con := st.Config()
	switch ev {
	case Start:
		lo.eTotal, lo.iTotal = collisions.Stats{}, collisions.Stats{}
		lo.printf(
			"Starting run: %d steps, dt = %g s, L = %g m, Nx = %d, %d "+
				"electrons, %d ions, seed %d.",
			con.Steps, con.Dt, con.L, con.Nx,
			st.Electrons().N(), st.Ions().N(), con.Seed,
		)
	case Step:
		lo.eTotal.Add(st.ElectronStats())
		lo.iTotal.Add(st.IonStats())
		if lo.Interval > 0 && (st.Step()+1)%lo.Interval == 0 {
			lo.printf(
				"Step %d/%d: %d electrons, %d ions, %d created, V = %.4g V",
				st.Step()+1, con.Steps, st.Electrons().N(), st.Ions().N(),
				lo.eTotal.Created+lo.iTotal.Created, st.BoundaryVoltage(),
			)
		}
	case End:
		lo.printf(
			"Finished run at t = %.4g s: %d electrons, %d ions, %d created, "+
				"%d electron and %d ion collisions, %d rejected.",
			st.Time(), st.Electrons().N(), st.Ions().N(),
			lo.eTotal.Created+lo.iTotal.Created,
			lo.eTotal.TotalEvents(), lo.iTotal.TotalEvents(),
			lo.eTotal.Rejected+lo.iTotal.Rejected,
		)
	}
	return nil
}
