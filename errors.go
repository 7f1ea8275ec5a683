/*package goccp simulates a capacitively coupled helium discharge with a 1D3V
electrostatic particle-in-cell code and null-collision Monte Carlo collisions
against a static background gas.

The numerical pieces live in subpackages (collisions, particle, density,
poisson, sim). This package only holds the error types shared between them.
*/
package goccp

import (
	"fmt"
)

// ConfigError is returned when a run parameter is missing or invalid or when
// a reaction set cannot be assembled from the parameters it was given.
type ConfigError struct {
	Param string
	Msg   string
}

func (err *ConfigError) Error() string {
	if err.Param == "" {
		return fmt.Sprintf("config error: %s", err.Msg)
	}
	return fmt.Sprintf("config error: parameter '%s': %s", err.Param, err.Msg)
}

// ConfigErrorf creates a ConfigError for the named parameter.
func ConfigErrorf(param, format string, args ...interface{}) error {
	return &ConfigError{Param: param, Msg: fmt.Sprintf(format, args...)}
}

// DataError is returned when a cross section table cannot be read or is
// malformed. File is empty for tables which were built in memory.
type DataError struct {
	File string
	Msg  string
	Err  error
}

func (err *DataError) Error() string {
	msg := err.Msg
	if err.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Err.Error())
	}
	if err.File == "" {
		return fmt.Sprintf("data error: %s", msg)
	}
	return fmt.Sprintf("data error in '%s': %s", err.File, msg)
}

func (err *DataError) Unwrap() error { return err.Err }

// DataErrorf creates a DataError for the given file.
func DataErrorf(file, format string, args ...interface{}) error {
	return &DataError{File: file, Msg: fmt.Sprintf(format, args...)}
}

// PhysicalStateError is returned when the simulation state stops being
// physical (NaN or infinite fields or velocities). Step is the step during
// which the problem was detected.
type PhysicalStateError struct {
	Step int
	Msg  string
}

func (err *PhysicalStateError) Error() string {
	return fmt.Sprintf("physical state error at step %d: %s", err.Step, err.Msg)
}
