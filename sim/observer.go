package sim

import (
	"fmt"
)

// Event is a point in the lifecycle of a run at which observers are
// notified.
type Event int

const (
	// Start is sent once the initial conditions are set, before the first
	// step.
	Start Event = iota
	// Step is sent after every completed step.
	Step
	// End is sent after the final step.
	End
)

func (ev Event) String() string {
	switch ev {
	case Start:
		return "Start"
	case Step:
		return "Step"
	case End:
		return "End"
	}
	return fmt.Sprintf("Event(%d)", int(ev))
}

// Observer is notified of lifecycle events. Notify is called synchronously
// from the step loop, so observers must not hold on to the grids or species
// they read from st and must never modify them. A non-nil error aborts the
// run.
type Observer interface {
	Notify(ev Event, st State) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event, st State) error

func (f ObserverFunc) Notify(ev Event, st State) error { return f(ev, st) }

// ObserverHandle identifies a registered Observer.
type ObserverHandle int

type observerEntry struct {
	h   ObserverHandle
	obs Observer
}

// observers is an ordered list of Observers.
type observers struct {
	entries []observerEntry
	next    ObserverHandle
}

func (list *observers) add(obs Observer) ObserverHandle {
	h := list.next
	list.next++
	list.entries = append(list.entries, observerEntry{h, obs})
	return h
}

func (list *observers) remove(h ObserverHandle) bool {
	for i := range list.entries {
		if list.entries[i].h == h {
			list.entries = append(list.entries[:i], list.entries[i+1:]...)
			return true
		}
	}
	return false
}

// notify calls every Observer in registration order and stops at the first
// error. Observers added or removed during a notification take effect from
// the next event.
func (list *observers) notify(ev Event, st State) error {
	entries := append([]observerEntry(nil), list.entries...)
	for _, e := range entries {
		if err := e.obs.Notify(ev, st); err != nil {
			return fmt.Errorf("observer %d failed on %s: %w", e.h, ev, err)
		}
	}
	return nil
}
