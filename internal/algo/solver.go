// Package algo implements cooperative space-time path planning.
package algo

import (
	"context"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

// Solver is the interface for multi-agent planners.
type Solver interface {
	// Solve plans every agent of the instance. It returns an error wrapping
	// core.ErrNoSolution when some agent cannot be planned.
	Solve(ctx context.Context, inst *core.Instance) (*core.Schedule, error)

	// Name returns the algorithm name.
	Name() string
}

// Conflict represents a collision between two agents.
type Conflict struct {
	Agent1, Agent2 string
	Loc            core.Location
	T              int  // Time of the vertex conflict, or departure time of the swap
	IsEdge         bool // Swap conflict vs vertex conflict
	// For edge conflicts: Agent1 moves EdgeFrom -> EdgeTo, Agent2 the reverse
	EdgeFrom, EdgeTo core.Location
}

// FindFirstConflict returns the earliest conflict in a schedule, or nil.
// Agents stay parked at their last cell after their path ends.
func FindFirstConflict(s *core.Schedule) *Conflict {
	var first *Conflict
	scanConflicts(s, func(c *Conflict) bool {
		first = c
		return false
	})
	return first
}

// FindAllConflicts returns every conflict in a schedule in time order.
func FindAllConflicts(s *core.Schedule) []*Conflict {
	var all []*Conflict
	scanConflicts(s, func(c *Conflict) bool {
		all = append(all, c)
		return true
	})
	return all
}

// scanConflicts visits vertex conflicts at t, then swaps between t and t+1,
// for increasing t. It stops when visit returns false.
func scanConflicts(s *core.Schedule, visit func(*Conflict) bool) {
	names := s.Order
	makespan := s.Makespan()

	for t := 0; t <= makespan; t++ {
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				p1, p2 := s.Paths[names[i]], s.Paths[names[j]]
				if len(p1) == 0 || len(p2) == 0 {
					continue
				}
				if loc := p1.At(t); loc == p2.At(t) {
					c := &Conflict{Agent1: names[i], Agent2: names[j], Loc: loc, T: t}
					if !visit(c) {
						return
					}
				}
			}
		}

		if t == makespan {
			break
		}
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				p1, p2 := s.Paths[names[i]], s.Paths[names[j]]
				if len(p1) == 0 || len(p2) == 0 {
					continue
				}
				a0, a1 := p1.At(t), p1.At(t+1)
				b0, b1 := p2.At(t), p2.At(t+1)
				if a0 != a1 && a0 == b1 && a1 == b0 {
					c := &Conflict{
						Agent1:   names[i],
						Agent2:   names[j],
						Loc:      a0,
						T:        t,
						IsEdge:   true,
						EdgeFrom: a0,
						EdgeTo:   a1,
					}
					if !visit(c) {
						return
					}
				}
			}
		}
	}
}
