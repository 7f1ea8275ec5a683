/*package monitor streams the state of a running simulation to websocket
clients and to the terminal.

Both Broadcaster and Terminal are sim.Observers. Neither holds on to the
grids or species of the simulation: everything they need is copied into a
Snapshot during Notify.
*/
package monitor

import (
	"encoding/json"

	"github.com/phil-mansfield/goccp/sim"
)

// Snapshot is a copy of the observable state of a simulation after a step.
// Densities are physical densities [m^-3].
type Snapshot struct {
	Event     string  `json:"event"`
	Step      int     `json:"step"`
	Steps     int     `json:"steps"`
	Time      float64 `json:"time"`
	Voltage   float64 `json:"voltage"`
	Electrons int     `json:"electrons"`
	Ions      int     `json:"ions"`

	ElectronCollisions int `json:"electronCollisions"`
	IonCollisions      int `json:"ionCollisions"`
	Created            int `json:"created"`
	ElectronsAbsorbed  int `json:"electronsAbsorbed"`
	IonsAbsorbed       int `json:"ionsAbsorbed"`

	X               []float64 `json:"x"`
	Potential       []float64 `json:"potential"`
	ElectronDensity []float64 `json:"electronDensity"`
	IonDensity      []float64 `json:"ionDensity"`
}

// NewSnapshot copies the state of st.
func NewSnapshot(ev sim.Event, st sim.State) *Snapshot {
	con := st.Config()
	snap := &Snapshot{
		Event: ev.String(), Step: st.Step(), Steps: con.Steps,
		Time: st.Time(), Voltage: st.BoundaryVoltage(),
		Electrons: st.Electrons().N(), Ions: st.Ions().N(),
	}

	if ev != sim.Start {
		snap.ElectronCollisions = st.ElectronStats().TotalEvents()
		snap.IonCollisions = st.IonStats().TotalEvents()
		snap.Created = st.ElectronStats().Created + st.IonStats().Created
		snap.ElectronsAbsorbed = st.ElectronsAbsorbed()
		snap.IonsAbsorbed = st.IonsAbsorbed()
	}

	phi := st.Potential()
	snap.X = phi.Xs()
	snap.Potential = append([]float64{}, phi.Data...)

	w := con.ParticleWeight()
	ne, ni := st.ElectronDensity().Data, st.IonDensity().Data
	snap.ElectronDensity = make([]float64, len(ne))
	snap.IonDensity = make([]float64, len(ni))
	for i := range ne {
		snap.ElectronDensity[i] = ne[i] * w
	}
	for i := range ni {
		snap.IonDensity[i] = ni[i] * w
	}

	return snap
}

// JSON encodes the snapshot.
func (snap *Snapshot) JSON() ([]byte, error) { return json.Marshal(snap) }

// every returns true if a snapshot should be taken for this event.
func every(interval int, ev sim.Event, st sim.State) bool {
	if ev != sim.Step {
		return true
	}
	return interval <= 1 || (st.Step()+1)%interval == 0
}
