package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/coop-astar/internal/vis/state"
)

const (
	timelineHeight = 60
	timelineMargin = 20
)

// Timeline is a step scrubber with a tick per whole step.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a new timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Constraints.Max.X
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255},
		clip.Rect(image.Rect(0, 0, width, timelineHeight)).Op())

	t.handlePointerEvents(gtx)

	pb := t.state.Playback
	trackY := timelineHeight / 2
	trackW := width - 2*timelineMargin
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255},
		clip.Rect(image.Rect(timelineMargin, trackY-3, timelineMargin+trackW, trackY+3)).Op())

	steps := int(pb.MaxTime)
	if steps > 0 && trackW/steps >= 4 {
		for s := 0; s <= steps; s++ {
			x := timelineMargin + s*trackW/steps
			paint.FillShape(gtx.Ops, color.NRGBA{R: 90, G: 95, B: 100, A: 255},
				clip.Rect(image.Rect(x, trackY+4, x+1, trackY+9)).Op())
		}
	}

	fill := int(float64(trackW) * pb.Progress())
	if fill > 0 {
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255},
			clip.Rect(image.Rect(timelineMargin, trackY-3, timelineMargin+fill, trackY+3)).Op())
	}
	head := timelineMargin + fill
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		clip.Rect(image.Rect(head-6, trackY-6, head+6, trackY+6)).Op())

	t.drawLabels(gtx, th)
	return layout.Dimensions{Size: image.Point{X: width, Y: timelineHeight}}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	pb := t.state.Playback
	m := t.state.Metrics()

	current := material.Label(th, 12, fmt.Sprintf("t = %d", pb.Step()))
	current.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	info := material.Label(th, 12, fmt.Sprintf("cost %d  makespan %d  %.2g steps/s", m.Cost, m.Makespan, pb.Speed))
	info.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	end := material.Label(th, 12, fmt.Sprintf("%d", int(pb.MaxTime)))
	end.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(timelineMargin), Right: unit.Dp(timelineMargin)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(current.Layout),
				layout.Rigid(info.Layout),
				layout.Rigid(end.Layout),
			)
		})
}

func (t *Timeline) handlePointerEvents(gtx layout.Context) {
	trackW := gtx.Constraints.Max.X - 2*timelineMargin

	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, timelineHeight)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.dragging = true
			t.seek(pe.Position.X, trackW)
		case pointer.Drag:
			if t.dragging {
				t.seek(pe.Position.X, trackW)
			}
		case pointer.Release:
			t.dragging = false
		}
	}
}

// seek snaps the playhead to the nearest whole step under x.
func (t *Timeline) seek(x float32, trackW int) {
	if trackW <= 0 {
		return
	}
	pb := t.state.Playback
	progress := float64(x-timelineMargin) / float64(trackW)
	pb.Pause()
	pb.SetTime(float64(int(progress*pb.MaxTime + 0.5)))
}
