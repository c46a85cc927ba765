// Package vis implements a Gio viewer for instances and schedules.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/coop-astar/internal/core"
	"github.com/elektrokombinacija/coop-astar/internal/vis/interact"
	"github.com/elektrokombinacija/coop-astar/internal/vis/state"
	"github.com/elektrokombinacija/coop-astar/internal/vis/widgets"
)

// App is the viewer application.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
	camera    *interact.Camera
}

// NewApp creates a viewer for inst. sched may be nil for a static view.
func NewApp(inst *core.Instance, sched *core.Schedule) *App {
	st := state.NewState(inst, sched)
	camera := interact.NewCamera()
	return &App{
		state:     st,
		theme:     material.NewTheme(),
		workspace: widgets.NewWorkspace(st, camera),
		timeline:  widgets.NewTimeline(st),
		camera:    camera,
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	pb := a.state.Playback
	switch e.Name {
	case key.NameSpace:
		pb.TogglePlay()
	case key.NameLeftArrow:
		pb.StepBack()
	case key.NameRightArrow:
		pb.StepForward()
	case key.NameHome:
		pb.Reset()
	case key.NameUpArrow:
		pb.SetSpeed(pb.Speed * 2)
	case key.NameDownArrow:
		pb.SetSpeed(pb.Speed / 2)
	case "R":
		a.camera.Reset()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, a.workspace.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if a.state.Schedule == nil {
				return layout.Dimensions{}
			}
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
