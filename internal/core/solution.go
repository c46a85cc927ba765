package core

// Path is a time-ordered sequence of states starting at t=0.
type Path []State

// Cost is the number of states, start included.
func (p Path) Cost() int {
	return len(p)
}

// Final returns the last state. It panics on an empty path.
func (p Path) Final() State {
	return p[len(p)-1]
}

// Moves counts steps that change location; waits are not counted.
func (p Path) Moves() int {
	n := 0
	for i := 1; i < len(p); i++ {
		if p[i].Loc != p[i-1].Loc {
			n++
		}
	}
	return n
}

// Valid checks that time advances by one per step and every step is a
// wait or a unit move.
func (p Path) Valid() bool {
	for i := 1; i < len(p); i++ {
		if p[i].T != p[i-1].T+1 {
			return false
		}
		if Manhattan(p[i].Loc, p[i-1].Loc) > 1 {
			return false
		}
	}
	return true
}

// At returns the agent's location at time t. Before the path starts the
// agent is at its start; after it ends the agent stays parked at its goal.
func (p Path) At(t int) Location {
	if len(p) == 0 {
		return Location{}
	}
	if t <= p[0].T {
		return p[0].Loc
	}
	i := t - p[0].T
	if i >= len(p) {
		return p[len(p)-1].Loc
	}
	return p[i].Loc
}

// Record is one externally visible schedule entry.
type Record struct {
	T int `json:"t" yaml:"t"`
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Schedule is a complete multi-agent plan.
type Schedule struct {
	Order []string // Agent names in planning order
	Paths map[string]Path
	Cost  int // Sum of path lengths
}

// Aggregate assembles a schedule from per-agent paths. Agents in order
// without a path are skipped.
func Aggregate(order []string, paths map[string]Path) *Schedule {
	s := &Schedule{
		Order: make([]string, 0, len(order)),
		Paths: make(map[string]Path, len(paths)),
	}
	for _, name := range order {
		path, ok := paths[name]
		if !ok {
			continue
		}
		s.Order = append(s.Order, name)
		s.Paths[name] = path
		s.Cost += path.Cost()
	}
	return s
}

// Records converts an agent's path into (t, x, y) records.
func (s *Schedule) Records(name string) []Record {
	path := s.Paths[name]
	out := make([]Record, len(path))
	for i, st := range path {
		out[i] = Record{T: st.T, X: st.Loc.X, Y: st.Loc.Y}
	}
	return out
}

// Makespan returns the latest arrival time over all agents.
func (s *Schedule) Makespan() int {
	maxT := 0
	for _, p := range s.Paths {
		if len(p) > 0 && p.Final().T > maxT {
			maxT = p.Final().T
		}
	}
	return maxT
}

// Moves returns the total number of location changes across agents.
func (s *Schedule) Moves() int {
	n := 0
	for _, p := range s.Paths {
		n += p.Moves()
	}
	return n
}
