// Package draw renders the grid, markers and agents.
package draw

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/coop-astar/internal/core"
	"github.com/elektrokombinacija/coop-astar/internal/vis/interact"
)

var (
	ColorFree     = color.NRGBA{R: 45, G: 50, B: 56, A: 255}
	ColorObstacle = color.NRGBA{R: 170, G: 60, B: 60, A: 255}
	ColorBorder   = color.NRGBA{R: 200, G: 70, B: 70, A: 255}
)

// cellRect returns the screen rectangle of a cell, inset by a fraction of
// the cell size on each side.
func cellRect(camera *interact.Camera, l core.Location, inset float32) image.Rectangle {
	x0, y0 := camera.WorldToScreen(float32(l.X)+inset, float32(l.Y)+inset)
	x1, y1 := camera.WorldToScreen(float32(l.X+1)-inset, float32(l.Y+1)-inset)
	return image.Rect(int(x0), int(y0), int(x1), int(y1))
}

// DrawMap fills free cells and obstacles and outlines the map border.
func DrawMap(gtx layout.Context, m *core.GridMap, camera *interact.Camera) {
	gap := float32(0)
	if camera.CellPx >= 8 {
		gap = 1 / camera.CellPx
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			l := core.Loc(x, y)
			col := ColorFree
			if m.IsObstacle(l) {
				col = ColorObstacle
			}
			paint.FillShape(gtx.Ops, col, clip.Rect(cellRect(camera, l, gap)).Op())
		}
	}

	x0, y0 := camera.WorldToScreen(0, 0)
	x1, y1 := camera.WorldToScreen(float32(m.Width), float32(m.Height))
	outer := image.Rect(int(x0)-2, int(y0)-2, int(x1)+2, int(y1)+2)
	paint.FillShape(gtx.Ops, ColorBorder, clip.Stroke{
		Path:  clip.Rect(outer).Path(),
		Width: 2,
	}.Op())
}

// DrawMarker draws a translucent square in the middle of a cell, as used for
// starts and goals.
func DrawMarker(gtx layout.Context, l core.Location, camera *interact.Camera, col color.NRGBA) {
	col.A = 130
	paint.FillShape(gtx.Ops, col, clip.Rect(cellRect(camera, l, 0.25)).Op())
}
