// Package widgets provides Gio UI widgets for the viewer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/coop-astar/internal/core"
	"github.com/elektrokombinacija/coop-astar/internal/vis/draw"
	"github.com/elektrokombinacija/coop-astar/internal/vis/interact"
	"github.com/elektrokombinacija/coop-astar/internal/vis/state"
)

// Workspace draws the map, start and goal markers, trails and agents.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{state: st, camera: camera}
}

// Layout renders the workspace.
func (w *Workspace) Layout(gtx layout.Context) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	inst := w.state.Instance
	w.camera.FitOnce(inst.Map.Width, inst.Map.Height, float32(bounds.X), float32(bounds.Y), 20)
	w.handlePointerEvents(gtx)

	draw.DrawMap(gtx, inst.Map, w.camera)

	// Goals first so starts stay visible when they coincide.
	for i, a := range inst.Agents {
		draw.DrawMarker(gtx, a.Goal, w.camera, draw.AgentColor(i))
	}
	for i, a := range inst.Agents {
		col := draw.AgentColor(i)
		col.R, col.G, col.B = col.R/2, col.G/2, col.B/2
		draw.DrawMarker(gtx, a.Start, w.camera, col)
	}

	for i, a := range inst.Agents {
		col := draw.AgentColor(i)
		draw.DrawPlanned(gtx, w.state.Remaining(a.Name), w.camera, col)
		draw.DrawTrail(gtx, w.state.Trail(a.Name), w.camera, col)
	}

	positions := w.state.Positions()
	for i, a := range inst.Agents {
		if p, ok := positions[a.Name]; ok {
			draw.DrawAgent(gtx, p, w.camera, draw.AgentColor(i))
		}
	}
	for _, l := range w.collisions(positions) {
		draw.DrawMarker(gtx, l, w.camera, draw.ColorCollision)
	}

	return layout.Dimensions{Size: bounds}
}

// collisions returns cells holding more than one agent at a whole step.
func (w *Workspace) collisions(positions map[string]state.Point) []core.Location {
	pb := w.state.Playback
	if w.state.Schedule == nil || pb.CurrentTime != float64(pb.Step()) {
		return nil
	}
	seen := make(map[core.Location]int, len(positions))
	var out []core.Location
	for _, p := range positions {
		l := core.Loc(int(p.X), int(p.Y))
		seen[l]++
		if seen[l] == 2 {
			out = append(out, l)
		}
	}
	return out
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.camera.HandleEvent(pe)
		}
	}
}
