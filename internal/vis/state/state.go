// Package state holds what the viewer shows: an instance, an optional
// schedule and the playback position.
package state

import (
	"math"

	"github.com/elektrokombinacija/coop-astar/internal/core"
	"github.com/elektrokombinacija/coop-astar/internal/sim"
)

// Point is a position in grid coordinates; cell centers are at x+0.5.
type Point struct {
	X, Y float32
}

// Center returns the center of a cell.
func Center(l core.Location) Point {
	return Point{X: float32(l.X) + 0.5, Y: float32(l.Y) + 0.5}
}

// State holds all visualization state.
type State struct {
	Instance *core.Instance
	Schedule *core.Schedule // nil shows a static start/goal snapshot
	Playback *PlaybackState
	replay   *sim.Simulator
	metrics  sim.Metrics
}

// NewState creates the view state. sched may be nil.
func NewState(inst *core.Instance, sched *core.Schedule) *State {
	s := &State{Instance: inst, Schedule: sched}
	if sched == nil {
		s.Playback = NewPlaybackState(0)
		return s
	}
	s.replay = sim.NewSimulator(sched)
	s.metrics = s.replay.Run()
	s.Playback = NewPlaybackState(sched.Makespan())
	return s
}

// Metrics returns replay metrics of the schedule.
func (s *State) Metrics() sim.Metrics {
	return s.metrics
}

// Positions returns every agent's position at the playhead, interpolated
// between whole steps. Without a schedule agents sit on their starts.
func (s *State) Positions() map[string]Point {
	out := make(map[string]Point, len(s.Instance.Agents))
	if s.replay == nil {
		for _, a := range s.Instance.Agents {
			out[a.Name] = Center(a.Start)
		}
		return out
	}

	t := s.Playback.CurrentTime
	step := int(math.Floor(t))
	alpha := float32(t - float64(step))
	from := s.replay.PositionsAt(step)
	to := s.replay.PositionsAt(step + 1)
	for name, a := range from {
		pa, pb := Center(a), Center(to[name])
		out[name] = Point{
			X: pa.X + alpha*(pb.X-pa.X),
			Y: pa.Y + alpha*(pb.Y-pa.Y),
		}
	}
	return out
}

// Trail returns the cells an agent visited up to the playhead, followed by
// its current position.
func (s *State) Trail(name string) []Point {
	if s.Schedule == nil {
		return nil
	}
	path := s.Schedule.Paths[name]
	var trail []Point
	for _, st := range path {
		if float64(st.T) > s.Playback.CurrentTime {
			break
		}
		trail = append(trail, Center(st.Loc))
	}
	if len(trail) > 0 {
		trail = append(trail, s.Positions()[name])
	}
	return trail
}

// Remaining returns the cells an agent has yet to visit.
func (s *State) Remaining(name string) []Point {
	if s.Schedule == nil {
		return nil
	}
	var rest []Point
	for _, st := range s.Schedule.Paths[name] {
		if float64(st.T) >= s.Playback.CurrentTime {
			rest = append(rest, Center(st.Loc))
		}
	}
	return rest
}
