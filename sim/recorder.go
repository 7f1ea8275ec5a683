package sim

import (
	"github.com/phil-mansfield/goccp/collisions"
	"github.com/phil-mansfield/goccp/io"
)

// Recorder stores the history of a run in a RunDB: one row per step and
// one row per reaction which occurred during the step.
type Recorder struct {
	DB *io.RunDB
}

func (rec *Recorder) Notify(ev Event, st State) error {
	switch ev {
	case Start:
		_, err := rec.DB.BeginRun(io.NewRunInfo(st.Config()))
		return err

	case Step:
		eStats, iStats := st.ElectronStats(), st.IonStats()
		r := io.StepRecord{
			Step: st.Step(), Time: st.Time(), Voltage: st.BoundaryVoltage(),
			Electrons: st.Electrons().N(), Ions: st.Ions().N(),
			ElectronsAbsorbed: st.ElectronsAbsorbed(),
			IonsAbsorbed:      st.IonsAbsorbed(),
			Created:           eStats.Created + iStats.Created,
		}
		r.Events = eventCounts(r.Events, "electrons", st.ElectronReactions(), eStats)
		r.Events = eventCounts(r.Events, "ions", st.IonReactions(), iStats)
		return rec.DB.InsertStep(r)

	case End:
		return rec.DB.EndRun()
	}
	return nil
}

// eventCounts appends the reactions which occurred at least once.
func eventCounts(
	out []io.EventCount, species string,
	set *collisions.ReactionSet, st *collisions.Stats,
) []io.EventCount {
	for i, n := range st.Events {
		if n > 0 {
			out = append(out, io.EventCount{
				Species: species, Reaction: set.Reaction(i).Name, Count: n,
			})
		}
	}
	return out
}
