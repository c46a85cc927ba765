package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

// Constraints decides which space-time states and moves a search may use.
type Constraints interface {
	// CellValid reports whether the agent may occupy s.
	CellValid(s core.State) bool
	// TransitionValid reports whether the agent may move from one state to the next.
	TransitionValid(from, to core.State) bool
	// GoalValid reports whether the agent may stop for good at s.
	GoalValid(s core.State) bool
}

// Heuristic estimates the remaining steps from a cell to the goal.
type Heuristic func(from, goal core.Location) int

// Manhattan is the admissible grid heuristic used by A*.
func Manhattan(from, goal core.Location) int {
	return core.Manhattan(from, goal)
}

// Zero turns A* into uniform-cost search.
func Zero(_, _ core.Location) int {
	return 0
}

// SearchLimits bounds a single search. Zero values mean no limit.
type SearchLimits struct {
	MaxTime       int // States at or after this step are not expanded
	MaxExpansions int
}

// SearchStats counts work done by one search.
type SearchStats struct {
	Expanded  int
	Generated int
}

// astarNode for priority queue.
type astarNode struct {
	state  core.State
	g      int // Cost so far
	f      int // g + h
	seq    int // Insertion order, breaks ties
	parent *astarNode
	index  int // heap index
}

// astarHeap implements heap.Interface.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// SpaceTimeAStar finds a lowest-cost path from start at t=0 to goal through
// the time-expanded grid. The goal test ignores time. It returns nil when the
// reachable space is exhausted or a limit is hit.
func SpaceTimeAStar(
	start, goal core.Location,
	cons Constraints,
	h Heuristic,
	limits SearchLimits,
) (core.Path, SearchStats) {
	if h == nil {
		h = Manhattan
	}

	var stats SearchStats
	open := &astarHeap{}
	heap.Init(open)
	generated := make(map[core.State]bool)
	seq := 0

	push := func(s core.State, g int, parent *astarNode) {
		generated[s] = true
		heap.Push(open, &astarNode{
			state:  s,
			g:      g,
			f:      g + h(s.Loc, goal),
			seq:    seq,
			parent: parent,
		})
		seq++
		stats.Generated++
	}

	push(core.State{T: 0, Loc: start}, 0, nil)

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		stats.Expanded++

		if current.state.Loc == goal && cons.GoalValid(current.state) {
			return reconstructPath(current), stats
		}

		if limits.MaxExpansions > 0 && stats.Expanded >= limits.MaxExpansions {
			break
		}
		if limits.MaxTime > 0 && current.state.T >= limits.MaxTime {
			continue
		}

		for _, next := range successors(current.state, goal, cons) {
			if generated[next] {
				continue
			}
			push(next, current.g+1, current)
		}
	}

	return nil, stats
}

// successors returns wait, up, down, left, right, filtered by cons.
func successors(s core.State, goal core.Location, cons Constraints) []core.State {
	out := make([]core.State, 0, 5)

	accept := func(n core.State) bool {
		if !cons.CellValid(n) {
			return false
		}
		return n.Loc != goal || cons.GoalValid(n)
	}

	wait := core.State{T: s.T + 1, Loc: s.Loc}
	if accept(wait) {
		out = append(out, wait)
	}
	for _, d := range core.Moves {
		n := core.State{T: s.T + 1, Loc: core.Location{X: s.Loc.X + d.X, Y: s.Loc.Y + d.Y}}
		if accept(n) && cons.TransitionValid(s, n) {
			out = append(out, n)
		}
	}
	return out
}

func reconstructPath(node *astarNode) core.Path {
	path := make(core.Path, node.state.T+1)
	for n := node; n != nil; n = n.parent {
		path[n.state.T] = n.state
	}
	return path
}
