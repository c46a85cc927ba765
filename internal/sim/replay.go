// Package sim replays schedules step by step.
//
// Replay is independent of the planner: it moves agents along their
// recorded paths, keeps finished agents parked on their last cell and
// counts moves, waits and collisions as it goes.
package sim

import (
	"sort"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

// Metrics collects replay results.
type Metrics struct {
	Steps      int            // Time steps replayed (makespan + 1)
	Makespan   int            // Latest arrival
	Cost       int            // Sum of path lengths
	Moves      map[string]int // Location changes per agent
	TotalMoves int
	Waits      int // Steps spent in place before arrival
	Collisions int // Vertex and swap collisions observed
}

// Simulator steps through a schedule.
type Simulator struct {
	schedule *core.Schedule
	current  int
	makespan int
}

// NewSimulator creates a simulator positioned at t=0.
func NewSimulator(s *core.Schedule) *Simulator {
	return &Simulator{
		schedule: s,
		makespan: s.Makespan(),
	}
}

// Time returns the current step.
func (s *Simulator) Time() int {
	return s.current
}

// Done reports whether every agent has arrived.
func (s *Simulator) Done() bool {
	return s.current >= s.makespan
}

// Step advances one time step. It returns false once every agent is parked.
func (s *Simulator) Step() bool {
	if s.Done() {
		return false
	}
	s.current++
	return true
}

// Reset rewinds to t=0.
func (s *Simulator) Reset() {
	s.current = 0
}

// Positions returns every agent's cell at the current step.
func (s *Simulator) Positions() map[string]core.Location {
	return s.PositionsAt(s.current)
}

// PositionsAt returns every agent's cell at step t.
func (s *Simulator) PositionsAt(t int) map[string]core.Location {
	out := make(map[string]core.Location, len(s.schedule.Paths))
	for name, path := range s.schedule.Paths {
		if len(path) > 0 {
			out[name] = path.At(t)
		}
	}
	return out
}

// Run replays the whole schedule from t=0 and returns the metrics.
func (s *Simulator) Run() Metrics {
	s.Reset()
	m := Metrics{
		Makespan: s.makespan,
		Cost:     s.schedule.Cost,
		Moves:    make(map[string]int, len(s.schedule.Paths)),
	}

	names := s.schedule.Order
	prev := s.Positions()
	m.Collisions += vertexCollisions(names, prev)
	m.Steps = 1

	for s.Step() {
		cur := s.Positions()
		for _, name := range names {
			path := s.schedule.Paths[name]
			if len(path) == 0 || s.current >= len(path) {
				continue
			}
			if cur[name] != prev[name] {
				m.Moves[name]++
				m.TotalMoves++
			} else {
				m.Waits++
			}
		}
		m.Collisions += vertexCollisions(names, cur)
		m.Collisions += swapCollisions(names, prev, cur)
		prev = cur
		m.Steps++
	}
	return m
}

func vertexCollisions(names []string, pos map[string]core.Location) int {
	n := 0
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, okA := pos[names[i]]
			b, okB := pos[names[j]]
			if okA && okB && a == b {
				n++
			}
		}
	}
	return n
}

func swapCollisions(names []string, prev, cur map[string]core.Location) int {
	n := 0
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a0, a1 := prev[names[i]], cur[names[i]]
			b0, b1 := prev[names[j]], cur[names[j]]
			if a0 != a1 && a0 == b1 && a1 == b0 {
				n++
			}
		}
	}
	return n
}

// MovementCounts counts, per agent, the records whose cell differs from the
// previous record, and the sum over agents. It works on persisted schedules
// and does not assume records are contiguous in time.
func MovementCounts(schedule map[string][]core.Record) (map[string]int, int) {
	counts := make(map[string]int, len(schedule))
	total := 0
	for name, recs := range schedule {
		count := 0
		for i := 1; i < len(recs); i++ {
			if recs[i].X != recs[i-1].X || recs[i].Y != recs[i-1].Y {
				count++
			}
		}
		counts[name] = count
		total += count
	}
	return counts, total
}

// SortedNames returns map keys in lexical order.
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
