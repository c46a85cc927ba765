// Package warehouse generates benchmark instances shaped like a warehouse
// floor: 2x3 shelf blocks separated by 1-wide aisles, with a free ring
// around the outside where agents start.
package warehouse

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

var (
	ErrInvalidParams = errors.New("invalid warehouse parameters")
	ErrTooManyAgents = errors.New("too many agents")
)

// Placement selects how starts are picked from the border ring.
type Placement string

const (
	Adjacent Placement = "adjacent" // consecutive border cells
	Spaced   Placement = "spaced"   // evenly spread around the ring
	Random   Placement = "random"
)

// Placements lists every supported strategy.
var Placements = []Placement{Adjacent, Spaced, Random}

// ParsePlacement converts a flag value.
func ParsePlacement(s string) (Placement, error) {
	for _, p := range Placements {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown placement %q", ErrInvalidParams, s)
}

// Params describes one warehouse instance.
type Params struct {
	Width     int // shelf columns
	Height    int // shelf rows
	Agents    int
	Placement Placement
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if p.Width < 2 || p.Height < 2 {
		return fmt.Errorf("%w: width and height must be at least 2, got %dx%d",
			ErrInvalidParams, p.Width, p.Height)
	}
	if p.Agents < 1 {
		return fmt.Errorf("%w: need at least 1 agent, got %d", ErrInvalidParams, p.Agents)
	}
	if _, err := ParsePlacement(string(p.Placement)); err != nil {
		return err
	}
	return nil
}

// Dimensions returns the map size.
func (p Params) Dimensions() (width, height int) {
	return 4*p.Width + 3, 3*p.Height + 3
}

// MaxStarts is the number of border cells available as starts.
func (p Params) MaxStarts() int {
	return 6*p.Height + 8*p.Width + 4
}

// MaxGoals is the number of aisle cells next to shelves inside the floor.
func (p Params) MaxGoals() int {
	return 3*p.Width*(p.Height-1) + 2*p.Height*(p.Width-1)
}

// FileName is the conventional name for an instance file.
func (p Params) FileName() string {
	return fmt.Sprintf("map_%dby%d_agents%d_%s.yaml", p.Height, p.Width, p.Agents, p.Placement)
}

// NewMap builds the shelf layout. The four corners are blocked so starts
// sit on straight border segments.
func NewMap(p Params) *core.GridMap {
	w, h := p.Dimensions()
	obstacles := []core.Location{
		core.Loc(0, 0), core.Loc(w-1, 0), core.Loc(0, h-1), core.Loc(w-1, h-1),
	}
	for i := 1; i <= 4*p.Width; i++ {
		for j := 1; j <= 3*p.Height; j++ {
			if i%4 != 1 && j%3 != 1 {
				obstacles = append(obstacles, core.Loc(i, j))
			}
		}
	}
	return core.NewGridMap(w, h, obstacles)
}

// BorderStarts lists the ring cells clockwise from the top-left.
func BorderStarts(p Params) []core.Location {
	n := p.MaxStarts()
	w, h := 4*p.Width, 3*p.Height
	starts := make([]core.Location, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i < w+1:
			starts = append(starts, core.Loc(i+1, 0))
		case i < h+w+2:
			starts = append(starts, core.Loc(w+2, i-w))
		case i < h+2*w+3:
			starts = append(starts, core.Loc(h+2*w+3-i, h+2))
		default:
			starts = append(starts, core.Loc(0, n-i))
		}
	}
	return starts
}

// GoalCells lists aisle cells along inner rows, then along inner columns.
func GoalCells(p Params) []core.Location {
	goals := make([]core.Location, 0, p.MaxGoals())
	for j := 0; j < p.Height-1; j++ {
		for i := 2; i <= 4*p.Width; i++ {
			if i%4 != 1 {
				goals = append(goals, core.Loc(i, 4+3*j))
			}
		}
	}
	for i := 0; i < p.Width-1; i++ {
		for j := 2; j <= 3*p.Height; j++ {
			if j%3 != 1 {
				goals = append(goals, core.Loc(5+4*i, j))
			}
		}
	}
	return goals
}

// Generate builds an instance with agents named agent0, agent1, ... Random
// choices come from rng only, so a seeded rng reproduces the instance.
func Generate(p Params, rng *rand.Rand) (*core.Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Agents > p.MaxStarts() {
		return nil, fmt.Errorf("%w: %d agents, %d border cells", ErrTooManyAgents, p.Agents, p.MaxStarts())
	}
	if p.Agents > p.MaxGoals() {
		return nil, fmt.Errorf("%w: %d agents, %d goal cells", ErrTooManyAgents, p.Agents, p.MaxGoals())
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	border := BorderStarts(p)
	var starts []core.Location
	switch p.Placement {
	case Adjacent:
		starts = border[:p.Agents]
	case Spaced:
		starts = make([]core.Location, p.Agents)
		for i := range starts {
			starts[i] = border[i*len(border)/p.Agents]
		}
	case Random:
		starts = sample(rng, border, p.Agents)
	}
	goals := sample(rng, GoalCells(p), p.Agents)

	inst := &core.Instance{Map: NewMap(p)}
	for i := 0; i < p.Agents; i++ {
		inst.AddAgent(fmt.Sprintf("agent%d", i), starts[i], goals[i])
	}
	return inst, nil
}

func sample(rng *rand.Rand, from []core.Location, k int) []core.Location {
	out := make([]core.Location, k)
	for i, idx := range rng.Perm(len(from))[:k] {
		out[i] = from[idx]
	}
	return out
}
