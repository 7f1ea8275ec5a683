package monitor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/goccp/sim"
)

var (
	textStyle      = tcell.StyleDefault
	headerStyle    = tcell.StyleDefault.Bold(true)
	potentialStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	axisStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// headerRows is the number of text rows above the potential plot.
const headerRows = 4

// Terminal draws the progress of a run and the current potential profile to
// a tcell screen every Interval steps.
type Terminal struct {
	Interval int
	screen   tcell.Screen
}

// NewTerminal creates a Terminal which draws to screen. If screen is nil,
// the terminal the process is attached to is used.
func NewTerminal(screen tcell.Screen, interval int) (*Terminal, error) {
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, err
		}
	}
	screen.Clear()
	return &Terminal{Interval: interval, screen: screen}, nil
}

// Close restores the terminal.
func (term *Terminal) Close() { term.screen.Fini() }

func (term *Terminal) Notify(ev sim.Event, st sim.State) error {
	if !every(term.Interval, ev, st) {
		return nil
	}
	term.Draw(NewSnapshot(ev, st))
	return nil
}

// Draw renders snap to the screen.
func (term *Terminal) Draw(snap *Snapshot) {
	term.screen.Clear()
	width, height := term.screen.Size()

	term.print(0, 0, headerStyle, fmt.Sprintf(
		"%s: step %d/%d   t = %.4g s   V = %.4g V",
		snap.Event, snap.Step+1, snap.Steps, snap.Time, snap.Voltage,
	))
	term.print(0, 1, textStyle, fmt.Sprintf(
		"electrons %d   ions %d   created %d",
		snap.Electrons, snap.Ions, snap.Created,
	))
	term.print(0, 2, textStyle, fmt.Sprintf(
		"collisions: electron %d   ion %d   absorbed: electron %d   ion %d",
		snap.ElectronCollisions, snap.IonCollisions,
		snap.ElectronsAbsorbed, snap.IonsAbsorbed,
	))

	plotHeight := height - headerRows
	if plotHeight < 2 || width < 2 || len(snap.Potential) == 0 {
		term.screen.Show()
		return
	}

	lo, hi := floats.Min(snap.Potential), floats.Max(snap.Potential)
	term.print(0, headerRows-1, axisStyle, fmt.Sprintf(
		"potential [%.4g, %.4g] V", lo, hi,
	))

	n := len(snap.Potential)
	for x := 0; x < width; x++ {
		i := x * (n - 1) / (width - 1)
		row := plotHeight - 1
		if hi > lo {
			frac := (snap.Potential[i] - lo) / (hi - lo)
			row = int(float64(plotHeight-1) * (1 - frac))
		}
		term.screen.SetContent(x, headerRows+row, '*', nil, potentialStyle)
	}

	term.screen.Show()
}

func (term *Terminal) print(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		term.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
