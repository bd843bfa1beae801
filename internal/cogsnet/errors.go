package cogsnet

import "fmt"

// ValidationError reports a run parameter outside its allowed range. It is
// returned before any event is processed.
type ValidationError struct {
	Param string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Msg)
}

// SchedulingError reports a snapshot interval so small that the run would
// materialize at least as many snapshots as there are events. It is returned
// before any snapshot storage is allocated.
type SchedulingError struct {
	Snapshots int
	Events    int
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("snapshot interval too small: %d snapshots for %d events, increase the interval", e.Snapshots, e.Events)
}

// ChronologyError reports an event that predates the previous interaction of
// the same pair. The input stream must be sorted by timestamp; instead of
// silently corrupting edge state, the run aborts with the offending event.
type ChronologyError struct {
	Event     int // index into the event sequence, -1 when unknown
	Time      int64
	LastEvent int64
}

func (e *ChronologyError) Error() string {
	return fmt.Sprintf("event %d out of chronological order: timestamp %d precedes previous interaction at %d", e.Event, e.Time, e.LastEvent)
}
