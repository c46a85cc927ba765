package core

import "sort"

// Location is a grid cell.
type Location struct {
	X, Y int
}

// Loc is shorthand for Location{X: x, Y: y}.
func Loc(x, y int) Location {
	return Location{X: x, Y: y}
}

// Manhattan returns the L1 distance between two cells.
func Manhattan(a, b Location) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GridMap is a static 4-connected grid with permanently blocked cells.
type GridMap struct {
	Width, Height int
	obstacles     map[Location]struct{}
}

// NewGridMap creates a grid. Obstacles outside the grid are kept as given;
// Instance.Validate reports them.
func NewGridMap(width, height int, obstacles []Location) *GridMap {
	g := &GridMap{
		Width:     width,
		Height:    height,
		obstacles: make(map[Location]struct{}, len(obstacles)),
	}
	for _, o := range obstacles {
		g.obstacles[o] = struct{}{}
	}
	return g
}

// AddObstacle blocks a cell.
func (g *GridMap) AddObstacle(l Location) {
	g.obstacles[l] = struct{}{}
}

// InBounds checks if l lies inside the grid.
func (g *GridMap) InBounds(l Location) bool {
	return l.X >= 0 && l.X < g.Width && l.Y >= 0 && l.Y < g.Height
}

// IsObstacle checks if l is a static obstacle.
func (g *GridMap) IsObstacle(l Location) bool {
	_, ok := g.obstacles[l]
	return ok
}

// Passable checks if an agent may ever stand on l.
func (g *GridMap) Passable(l Location) bool {
	return g.InBounds(l) && !g.IsObstacle(l)
}

// Obstacles returns the blocked cells sorted by (Y, X).
func (g *GridMap) Obstacles() []Location {
	out := make([]Location, 0, len(g.obstacles))
	for o := range g.obstacles {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// FreeCells counts passable cells.
func (g *GridMap) FreeCells() int {
	n := g.Width * g.Height
	for o := range g.obstacles {
		if g.InBounds(o) {
			n--
		}
	}
	return n
}

// Neighbors returns the passable 4-neighbors of l in up, down, left, right order.
func (g *GridMap) Neighbors(l Location) []Location {
	var out []Location
	for _, d := range Moves {
		n := Location{X: l.X + d.X, Y: l.Y + d.Y}
		if g.Passable(n) {
			out = append(out, n)
		}
	}
	return out
}

// Moves are the unit moves in expansion order: up, down, left, right.
var Moves = [4]Location{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
