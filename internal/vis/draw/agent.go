package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/coop-astar/internal/vis/interact"
	"github.com/elektrokombinacija/coop-astar/internal/vis/state"
)

var palette = []color.NRGBA{
	{R: 255, G: 165, B: 0, A: 255},
	{R: 80, G: 140, B: 255, A: 255},
	{R: 90, G: 200, B: 110, A: 255},
	{R: 200, G: 100, B: 255, A: 255},
	{R: 100, G: 220, B: 230, A: 255},
	{R: 240, G: 220, B: 90, A: 255},
}

var ColorCollision = color.NRGBA{R: 255, G: 60, B: 60, A: 255}

// AgentColor returns the color of the i-th agent in priority order.
func AgentColor(i int) color.NRGBA {
	return palette[i%len(palette)]
}

// DrawAgent draws an agent as a disc centered on p.
func DrawAgent(gtx layout.Context, p state.Point, camera *interact.Camera, col color.NRGBA) {
	cx, cy := camera.WorldToScreen(p.X, p.Y)
	drawDisc(gtx, cx, cy, 0.35*camera.CellPx, col)
}

func drawDisc(gtx layout.Context, cx, cy, r float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+r, cy))
	const segments = 20
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / segments
		path.LineTo(f32.Pt(cx+r*float32(math.Cos(angle)), cy+r*float32(math.Sin(angle))))
	}
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawTrail draws the visited part of a path, fading towards the start.
func DrawTrail(gtx layout.Context, trail []state.Point, camera *interact.Camera, col color.NRGBA) {
	n := len(trail)
	for i := 0; i < n-1; i++ {
		c := col
		c.A = uint8(50 + float64(i)/float64(n)*150)
		width := 0.15 * camera.CellPx * (0.4 + 0.6*float32(i)/float32(n))
		drawSegment(gtx, camera, trail[i], trail[i+1], width, c)
	}
}

// DrawPlanned draws the part of a path still ahead in a dim color.
func DrawPlanned(gtx layout.Context, rest []state.Point, camera *interact.Camera, col color.NRGBA) {
	col.A = 70
	for i := 0; i < len(rest)-1; i++ {
		drawSegment(gtx, camera, rest[i], rest[i+1], 0.06*camera.CellPx, col)
	}
}

func drawSegment(gtx layout.Context, camera *interact.Camera, a, b state.Point, width float32, col color.NRGBA) {
	x1, y1 := camera.WorldToScreen(a.X, a.Y)
	x2, y2 := camera.WorldToScreen(b.X, b.Y)
	dx, dy := x2-x1, y2-y1
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < 0.1 {
		return
	}
	px := -dy / length * width / 2
	py := dx / length * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}
