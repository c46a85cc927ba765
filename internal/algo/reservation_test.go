package algo

import (
	"errors"
	"testing"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

func TestReservationTableCommit(t *testing.T) {
	grid := core.NewGridMap(4, 4, []core.Location{{X: 3, Y: 3}})
	rt := NewReservationTable(grid)

	path := core.Path{core.At(0, 0, 0), core.At(1, 1, 0), core.At(2, 1, 1)}
	if err := rt.Commit(path); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if rt.Horizon() != 2 {
		t.Errorf("Horizon() = %d, want 2", rt.Horizon())
	}
	states, transitions := rt.Len()
	if states != 3 || transitions != 2 {
		t.Errorf("Len() = (%d, %d), want (3, 2)", states, transitions)
	}

	tests := []struct {
		state core.State
		want  bool
	}{
		{core.At(1, 1, 0), false}, // vertex reserved
		{core.At(2, 1, 0), true},
		{core.At(2, 1, 1), false}, // parked arrival
		{core.At(9, 1, 1), false}, // parked forever
		{core.At(1, 1, 1), true},  // before arrival
		{core.At(0, 3, 3), false}, // static obstacle
		{core.At(0, 4, 0), false}, // out of bounds
		{core.At(0, 0, -1), false},
	}
	for _, tt := range tests {
		if got := rt.IsCellFree(tt.state); got != tt.want {
			t.Errorf("IsCellFree(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}

	parked := rt.Parked()
	if len(parked) != 1 || parked[0] != core.At(2, 1, 1) {
		t.Errorf("Parked() = %v, want [(2, 1, 1)]", parked)
	}
}

func TestReservationTableSwap(t *testing.T) {
	rt := NewReservationTable(core.NewGridMap(3, 1, nil))
	if err := rt.Commit(core.Path{core.At(0, 0, 0), core.At(1, 1, 0)}); err != nil {
		t.Fatal(err)
	}

	// Reverse of the committed move at the same time pair is a swap.
	if rt.IsTransitionFree(core.At(0, 1, 0), core.At(1, 0, 0)) {
		t.Error("head-on swap should be rejected")
	}
	// Same direction is left to the vertex check.
	if !rt.IsTransitionFree(core.At(0, 0, 0), core.At(1, 1, 0)) {
		t.Error("same-direction move should not be rejected by the edge check")
	}
	// Different time pair.
	if !rt.IsTransitionFree(core.At(1, 1, 0), core.At(2, 0, 0)) {
		t.Error("reverse move one step later should be allowed")
	}
	// Malformed transitions are never free.
	if rt.IsTransitionFree(core.At(0, 1, 0), core.At(2, 0, 0)) {
		t.Error("transition skipping a step should be rejected")
	}
}

func TestReservationTableGoalClear(t *testing.T) {
	rt := NewReservationTable(core.NewGridMap(5, 1, nil))
	path := core.Path{core.At(0, 0, 0), core.At(1, 1, 0), core.At(2, 2, 0), core.At(3, 3, 0), core.At(4, 4, 0)}
	if err := rt.Commit(path); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		state core.State
		want  bool
	}{
		{core.At(0, 2, 0), false}, // (2, 2, 0) is reserved later
		{core.At(2, 2, 0), false},
		{core.At(3, 2, 0), true},
		{core.At(1, 4, 0), false}, // horizon itself is checked
		{core.At(5, 4, 0), true},  // past the horizon
	}
	for _, tt := range tests {
		if got := rt.GoalClear(tt.state); got != tt.want {
			t.Errorf("GoalClear(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestReservationTableCommitInvalid(t *testing.T) {
	rt := NewReservationTable(core.NewGridMap(3, 3, nil))

	err := rt.Commit(core.Path{core.At(0, 0, 0), core.At(2, 0, 1)})
	if !errors.Is(err, core.ErrInvalidTransition) {
		t.Fatalf("Commit() error = %v, want ErrInvalidTransition", err)
	}
	if states, transitions := rt.Len(); states != 0 || transitions != 0 {
		t.Errorf("table mutated by a rejected commit: (%d, %d)", states, transitions)
	}
	if rt.Horizon() != 0 || len(rt.Parked()) != 0 {
		t.Error("horizon or parked markers mutated by a rejected commit")
	}

	if err := rt.Commit(nil); err == nil {
		t.Error("Commit(nil) should fail")
	}
}

func TestReservationTableHorizonOnlyGrows(t *testing.T) {
	rt := NewReservationTable(core.NewGridMap(5, 5, nil))
	long := core.Path{core.At(0, 0, 0), core.At(1, 0, 1), core.At(2, 0, 2), core.At(3, 0, 3)}
	short := core.Path{core.At(0, 4, 4)}

	if err := rt.Commit(long); err != nil {
		t.Fatal(err)
	}
	if err := rt.Commit(short); err != nil {
		t.Fatal(err)
	}
	if rt.Horizon() != 3 {
		t.Errorf("Horizon() = %d, want 3", rt.Horizon())
	}
}
