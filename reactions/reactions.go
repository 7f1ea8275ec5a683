/*package reactions builds the helium reaction sets used by the discharge
simulation from a directory of cross section tables.

The directory must contain the files

	Elastic_He.csv, Excitation1_He.csv, Excitation2_He.csv, Ionization_He.csv,
	Isotropic_He.csv, Backscattering_He.csv

each in the two-column format read by collisions.ReadCrossSection.
*/
package reactions

import (
	"fmt"
	"path/filepath"

	"github.com/phil-mansfield/goccp"
	"github.com/phil-mansfield/goccp/collisions"
	"github.com/phil-mansfield/goccp/particle"
)

// Parameters are the properties of the background gas needed to build
// reactions.
type Parameters struct {
	GasMass        float64 // [kg]
	GasTemperature float64 // [K]
	// EmitSecondary adds a secondary electron for every ionization.
	EmitSecondary bool
}

// entry describes one tabulated reaction.
type entry struct {
	file       string
	threshold  float64 // [eV]
	kind       collisions.Kind
	projectile collisions.Projectile
}

var (
	electronEntries = []entry{
		{"Elastic_He.csv", 0, collisions.Elastic, collisions.Electron},
		{"Excitation1_He.csv", 19.82, collisions.Excitation, collisions.Electron},
		{"Excitation2_He.csv", 20.61, collisions.Excitation, collisions.Electron},
		{"Ionization_He.csv", 24.59, collisions.Ionization, collisions.Electron},
	}
	ionEntries = []entry{
		{"Isotropic_He.csv", 0, collisions.Elastic, collisions.Ion},
		{"Backscattering_He.csv", 0, collisions.ChargeExchange, collisions.Ion},
	}
)

// Files returns the names of all the cross section files read from a data
// directory.
func Files() []string {
	names := []string{}
	for _, e := range electronEntries {
		names = append(names, e.file)
	}
	for _, e := range ionEntries {
		names = append(names, e.file)
	}
	return names
}

// LoadElectronReactions reads the electron-helium reactions in dir: elastic
// scattering, two excitations, and ionization. Ions created by ionization
// are added to the species with handle ions.
func LoadElectronReactions(
	dir string, par Parameters, ions particle.Handle,
) ([]collisions.Reaction, error) {
	return load(dir, par, ions, electronEntries)
}

// LoadIonReactions reads the ion-helium reactions in dir: isotropic elastic
// scattering and charge exchange (backscattering).
func LoadIonReactions(dir string, par Parameters) ([]collisions.Reaction, error) {
	return load(dir, par, 0, ionEntries)
}

func load(
	dir string, par Parameters, product particle.Handle, entries []entry,
) ([]collisions.Reaction, error) {
	if par.GasMass <= 0 {
		return nil, goccp.ConfigErrorf("IonMass",
			"gas particle mass must be positive, got %g", par.GasMass)
	} else if par.GasTemperature < 0 {
		return nil, goccp.ConfigErrorf("GasTemperature",
			"must be non-negative, got %g", par.GasTemperature)
	}

	out := make([]collisions.Reaction, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(dir, e.file)
		cs, err := collisions.ReadCrossSection(path, e.threshold)
		if err != nil {
			return nil, err
		}

		var r collisions.Reaction
		switch {
		case e.kind == collisions.Elastic && e.projectile == collisions.Electron:
			r = collisions.NewElectronElastic(par.GasMass, cs)
		case e.kind == collisions.Elastic:
			r = collisions.NewIonElastic(par.GasMass, cs)
		case e.kind == collisions.Excitation:
			r = collisions.NewExcitation(par.GasMass, cs)
		case e.kind == collisions.Ionization:
			r = collisions.NewIonization(
				par.GasMass, cs, product, par.GasTemperature,
			)
			r.EmitSecondary = par.EmitSecondary
		case e.kind == collisions.ChargeExchange:
			r = collisions.NewChargeExchange(par.GasMass, cs)
		default:
			panic(fmt.Sprintf("Unrecognized reaction kind %v.", e.kind))
		}
		r.Name = e.file
		out = append(out, r)
	}

	return out, nil
}
