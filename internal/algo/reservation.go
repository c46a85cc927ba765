package algo

import (
	"fmt"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

// ReservationTable records the space-time cells and moves claimed by agents
// that have already been planned. It grows monotonically during one run.
type ReservationTable struct {
	grid        *core.GridMap
	states      map[core.State]struct{}
	transitions map[core.Transition]struct{}
	parked      []core.State
	parkedAt    map[core.Location]int // Earliest arrival per parked location
	horizon     int
}

// NewReservationTable creates an empty table over a static grid.
func NewReservationTable(grid *core.GridMap) *ReservationTable {
	return &ReservationTable{
		grid:        grid,
		states:      make(map[core.State]struct{}),
		transitions: make(map[core.Transition]struct{}),
		parkedAt:    make(map[core.Location]int),
	}
}

// Horizon is the latest arrival time of any committed path.
func (rt *ReservationTable) Horizon() int {
	return rt.horizon
}

// Parked returns the final states of committed paths in commit order.
func (rt *ReservationTable) Parked() []core.State {
	out := make([]core.State, len(rt.parked))
	copy(out, rt.parked)
	return out
}

// Reserved reports whether s is claimed by a committed path.
func (rt *ReservationTable) Reserved(s core.State) bool {
	_, ok := rt.states[s]
	return ok
}

// IsCellFree checks static obstacles, vertex reservations and parked agents.
func (rt *ReservationTable) IsCellFree(s core.State) bool {
	if !rt.grid.Passable(s.Loc) {
		return false
	}
	if rt.Reserved(s) {
		return false
	}
	if arrival, ok := rt.parkedAt[s.Loc]; ok && arrival <= s.T {
		return false
	}
	return true
}

// IsTransitionFree rejects a move whose reverse is already used (a head-on swap).
func (rt *ReservationTable) IsTransitionFree(from, to core.State) bool {
	tr, err := core.NewTransition(from, to)
	if err != nil {
		return false
	}
	_, used := rt.transitions[tr.Reverse()]
	return !used
}

// GoalClear reports whether an agent arriving at s may stay there: no
// committed path uses s.Loc at any time in [s.T, Horizon()].
func (rt *ReservationTable) GoalClear(s core.State) bool {
	for t := s.T; t <= rt.horizon; t++ {
		if rt.Reserved(core.State{T: t, Loc: s.Loc}) {
			return false
		}
	}
	return true
}

// CellValid implements Constraints.
func (rt *ReservationTable) CellValid(s core.State) bool { return rt.IsCellFree(s) }

// TransitionValid implements Constraints.
func (rt *ReservationTable) TransitionValid(from, to core.State) bool {
	return rt.IsTransitionFree(from, to)
}

// GoalValid implements Constraints.
func (rt *ReservationTable) GoalValid(s core.State) bool { return rt.GoalClear(s) }

// Commit reserves every state and transition of path and parks the agent at
// its final state. The table is left untouched if path is malformed.
func (rt *ReservationTable) Commit(path core.Path) error {
	if len(path) == 0 {
		return fmt.Errorf("commit: empty path")
	}

	trs := make([]core.Transition, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		tr, err := core.NewTransition(path[i-1], path[i])
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		trs = append(trs, tr)
	}

	for _, s := range path {
		rt.states[s] = struct{}{}
	}
	for _, tr := range trs {
		rt.transitions[tr] = struct{}{}
	}

	final := path.Final()
	rt.parked = append(rt.parked, final)
	if arrival, ok := rt.parkedAt[final.Loc]; !ok || final.T < arrival {
		rt.parkedAt[final.Loc] = final.T
	}
	if final.T > rt.horizon {
		rt.horizon = final.T
	}
	return nil
}

// Len returns the number of reserved states and transitions.
func (rt *ReservationTable) Len() (states, transitions int) {
	return len(rt.states), len(rt.transitions)
}
