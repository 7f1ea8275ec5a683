package io

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/goccp"
	"github.com/phil-mansfield/goccp/constants"
)

const (
	ExampleSimulationFile = `[Simulation]

#######################
# Required Parameters #
#######################

# Gap between the two electrodes [m] and the number of grid points spanning
# it. The grid spacing is L / (Nx - 1).
L  = 0.067
Nx = 129

# Timestep [s] and number of steps to run for.
Dt    = 9.183e-11
Steps = 512000

# Number of electron and ion macro-particles created at the start of the run,
# and the plasma density [m^-3] they represent.
InitialParticles = 512000
PlasmaDensity    = 2.56e14

# Initial temperatures of the electrons and ions [K].
ElectronTemperature = 30000
IonTemperature      = 300

# Amplitude [V] and frequency [Hz] of the voltage applied to the right
# electrode. The left electrode is grounded.
Volt      = 450
Frequency = 13.56e6

# Density [m^-3] and temperature [K] of the background helium.
GasDensity     = 9.64e20
GasTemperature = 300

# Directory containing Elastic_He.csv, Excitation1_He.csv,
# Excitation2_He.csv, Ionization_He.csv, Isotropic_He.csv, and
# Backscattering_He.csv.
CrossSections = path/to/cross/sections

#######################
# Optional Parameters #
#######################

# Mass of a background gas particle [kg]. Default is the mass of helium.
# IonMass = 6.67e-27

# Seed of the random number generator. Default is 1. Zero seeds from the
# current time, and the seed which was used is written to the outputs.
# Seed = 1

# Directory which density.csv, potential.csv, counts.csv, and profiles.grid
# will be written to. If not set, no output files are written.
# Output = path/to/output/dir

# Number of final steps which the output profiles are averaged over. Default
# is all steps.
# AverageSteps = 12800

# Adds a secondary electron to the plasma for every ionization.
# EmitSecondary = false

# Number of steps between progress log lines. Default is 1000.
# LogInterval = 1000

# Draws the averaged profiles to Output/profiles_density.png and
# Output/profiles_potential.png. Requires python and matplotlib.
# Plot = true

# Streams per-step summaries as JSON over a websocket at this address.
# MonitorAddr = localhost:8080

# Shows a live dashboard in the terminal.
# Terminal = true

# SQLite database which the step history of the run is appended to. Every
# run gets its own RunId, so many runs can share one database.
# Database = runs.sqlite

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

// SimulationConfig holds the parameters of a discharge run.
type SimulationConfig struct {
	// Required
	L                                   float64
	Nx                                  int
	Dt                                  float64
	Steps, InitialParticles             int
	PlasmaDensity                       float64
	ElectronTemperature, IonTemperature float64
	Volt, Frequency                     float64
	GasDensity, GasTemperature          float64
	CrossSections                       string

	// Optional
	IonMass              float64
	Seed                 int64
	Output               string
	AverageSteps         int
	EmitSecondary        bool
	LogInterval          int
	Plot, Terminal       bool
	MonitorAddr          string
	Database             string
	LogFile, ProfileFile string
}

type SimulationWrapper struct {
	Simulation SimulationConfig
}

func DefaultSimulationWrapper() *SimulationWrapper {
	con := SimulationConfig{}
	con.IonMass = constants.HeliumMass
	con.Seed = 1
	con.LogInterval = 1000
	return &SimulationWrapper{con}
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

func nonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

func (con *SimulationConfig) ValidL() bool { return positive(con.L) }
func (con *SimulationConfig) ValidNx() bool { return con.Nx >= 3 }
func (con *SimulationConfig) ValidDt() bool { return positive(con.Dt) }
func (con *SimulationConfig) ValidSteps() bool {
	return con.Steps > 0
}
func (con *SimulationConfig) ValidInitialParticles() bool {
	return con.InitialParticles > 0
}
func (con *SimulationConfig) ValidPlasmaDensity() bool {
	return positive(con.PlasmaDensity)
}
func (con *SimulationConfig) ValidElectronTemperature() bool {
	return nonNegative(con.ElectronTemperature)
}
func (con *SimulationConfig) ValidIonTemperature() bool {
	return nonNegative(con.IonTemperature)
}
func (con *SimulationConfig) ValidVolt() bool {
	return !math.IsInf(con.Volt, 0) && !math.IsNaN(con.Volt)
}
func (con *SimulationConfig) ValidFrequency() bool {
	return nonNegative(con.Frequency)
}
func (con *SimulationConfig) ValidGasDensity() bool {
	return nonNegative(con.GasDensity)
}
func (con *SimulationConfig) ValidGasTemperature() bool {
	return nonNegative(con.GasTemperature)
}
func (con *SimulationConfig) ValidCrossSections() bool {
	return con.CrossSections != ""
}
func (con *SimulationConfig) ValidIonMass() bool {
	return positive(con.IonMass)
}
func (con *SimulationConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SimulationConfig) ValidAverageSteps() bool {
	return con.AverageSteps >= 0
}
func (con *SimulationConfig) ValidLogInterval() bool {
	return con.LogInterval > 0
}
func (con *SimulationConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SimulationConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}
func (con *SimulationConfig) ValidMonitorAddr() bool {
	return con.MonitorAddr != ""
}
func (con *SimulationConfig) ValidDatabase() bool {
	return con.Database != ""
}

// CheckInit checks that all required parameters have been set to valid
// values and fills in derived optional values. The first problem found is
// returned as a *goccp.ConfigError.
func (con *SimulationConfig) CheckInit() error {
	checks := []struct {
		name  string
		valid bool
		msg   string
	}{
		{"L", con.ValidL(), "must be positive"},
		{"Nx", con.ValidNx(), "must be at least 3"},
		{"Dt", con.ValidDt(), "must be positive"},
		{"Steps", con.ValidSteps(), "must be positive"},
		{"InitialParticles", con.ValidInitialParticles(), "must be positive"},
		{"PlasmaDensity", con.ValidPlasmaDensity(), "must be positive"},
		{"ElectronTemperature", con.ValidElectronTemperature(), "must be non-negative"},
		{"IonTemperature", con.ValidIonTemperature(), "must be non-negative"},
		{"Volt", con.ValidVolt(), "must be finite"},
		{"Frequency", con.ValidFrequency(), "must be non-negative"},
		{"GasDensity", con.ValidGasDensity(), "must be non-negative"},
		{"GasTemperature", con.ValidGasTemperature(), "must be non-negative"},
		{"CrossSections", con.ValidCrossSections(), "must name a directory"},
		{"IonMass", con.ValidIonMass(), "must be positive"},
		{"AverageSteps", con.ValidAverageSteps(), "must be non-negative"},
		{"LogInterval", con.ValidLogInterval(), "must be positive"},
	}

	for _, check := range checks {
		if !check.valid {
			return goccp.ConfigErrorf(check.name, "%s", check.msg)
		}
	}

	if con.Plot && !con.ValidOutput() {
		return goccp.ConfigErrorf("Plot", "requires 'Output' to be set")
	}
	if con.AverageSteps == 0 || con.AverageSteps > con.Steps {
		con.AverageSteps = con.Steps
	}

	return nil
}

// Dx returns the grid spacing [m].
func (con *SimulationConfig) Dx() float64 {
	return con.L / float64(con.Nx-1)
}

// ParticleWeight returns the number of physical particles represented by a
// single macro-particle.
func (con *SimulationConfig) ParticleWeight() float64 {
	return con.PlasmaDensity * con.L / float64(con.InitialParticles)
}

// ReadSimulationConfig reads a [Simulation] configuration file and checks
// it. Files ending in .toml are read as TOML and everything else is read as
// a gcfg (INI-style) file.
func ReadSimulationConfig(fname string) (*SimulationConfig, error) {
	wrap := DefaultSimulationWrapper()

	if strings.ToLower(filepath.Ext(fname)) == ".toml" {
		meta, err := toml.DecodeFile(fname, wrap)
		if err != nil {
			return nil, &goccp.ConfigError{
				Msg: fmt.Sprintf("could not read '%s': %s", fname, err.Error()),
			}
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, goccp.ConfigErrorf(undecoded[0].String(),
				"unrecognized parameter in '%s'", fname,
			)
		}
	} else if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, &goccp.ConfigError{
			Msg: fmt.Sprintf("could not read '%s': %s", fname, err.Error()),
		}
	}

	con := &wrap.Simulation
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}
