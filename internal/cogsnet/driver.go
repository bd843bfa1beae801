// Package cogsnet computes CogSNet, a cognitively-inspired temporal social
// network: each interaction between two nodes boosts the weight of their
// edge, and the weight decays between interactions according to a forgetting
// function. The network is periodically frozen into dense snapshots.
package cogsnet

import (
	"errors"
	"fmt"
)

// Event is a single interaction: sender and receiver as dense node indices
// in [0, n), plus a unix timestamp in seconds. The event sequence passed to
// Run must be sorted ascending by timestamp.
type Event struct {
	Sender   int
	Receiver int
	Time     int64
}

// Run folds the chronologically sorted events into a sequence of network
// snapshots. realIDs maps dense node indices back to external node IDs and
// fixes the node count. The returned snapshots are ordered by time; the last
// one always captures the state after the final event.
func Run(params Params, events []Event, realIDs []int64) ([]Snapshot, error) {
	p := params
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, &ValidationError{Param: "events", Msg: "no events to process"}
	}
	n := len(realIDs)
	for i, e := range events {
		if e.Sender < 0 || e.Sender >= n || e.Receiver < 0 || e.Receiver >= n {
			return nil, &ValidationError{
				Param: "events",
				Msg:   fmt.Sprintf("event %d references node index outside [0, %d)", i, n),
			}
		}
	}

	// Bound snapshot storage before allocating any of it: with a nonzero
	// interval the snapshot count must stay below the event count.
	span := events[len(events)-1].Time - events[0].Time
	capacity := len(events) + 1
	if p.scaledInterval != 0 {
		count := int(span/p.scaledInterval) + 1
		if count-1 >= len(events) {
			return nil, &SchedulingError{Snapshots: count, Events: len(events)}
		}
		capacity = count
	}

	state := newNetworkState(n)
	snapshots := make([]Snapshot, 0, capacity)

	// The first snapshot is scheduled relative to the first event.
	snapTime := events[0].Time + p.scaledInterval

	for i := range events {
		e := events[i]

		// Weight 0 means the pair never interacted, or decayed below theta;
		// either way the interaction restarts the edge at the mu baseline.
		var weight float64
		if prev := state.weight(e.Sender, e.Receiver); prev == 0 {
			weight = p.Mu
		} else {
			var err error
			weight, err = computeWeight(&p, e.Time, state.lastEvent(e.Sender, e.Receiver), prev, true)
			if err != nil {
				var cerr *ChronologyError
				if errors.As(err, &cerr) {
					cerr.Event = i
				}
				return nil, err
			}
		}
		state.applyEvent(e.Sender, e.Receiver, e.Time, weight)

		// Emit every snapshot that falls strictly before the next event. A
		// snapshot time colliding with an event time is taken on the next
		// iteration, after that event has been folded in. With interval 0
		// the schedule advances to each distinct subsequent event time.
		for i+1 < len(events) && snapTime < events[i+1].Time {
			snap, err := takeSnapshot(&p, snapTime, state, realIDs)
			if err != nil {
				return nil, err
			}
			snapshots = append(snapshots, snap)
			if p.scaledInterval != 0 {
				snapTime += p.scaledInterval
			} else {
				snapTime = events[i+1].Time
			}
		}
	}

	// Final snapshot, so the state after all events is always captured.
	final, err := takeSnapshot(&p, snapTime, state, realIDs)
	if err != nil {
		return nil, err
	}
	snapshots = append(snapshots, final)
	return snapshots, nil
}
