// Package interact handles pan and zoom of the grid view.
package interact

import (
	"math"

	"gioui.org/io/pointer"
)

const (
	minCellPx     = 4
	maxCellPx     = 200
	defaultCellPx = 32
	zoomStep      = 1.1
)

// Camera maps grid coordinates (one unit per cell) to screen pixels.
type Camera struct {
	OffsetX float32 // screen position of cell (0, 0)'s corner
	OffsetY float32
	CellPx  float32 // pixels per cell

	dragging bool
	lastX    float32
	lastY    float32
	fitted   bool
}

// NewCamera creates a camera with the default cell size.
func NewCamera() *Camera {
	return &Camera{OffsetX: 20, OffsetY: 20, CellPx: defaultCellPx}
}

// Reset forgets pan and zoom; the next FitOnce refits the grid.
func (c *Camera) Reset() {
	*c = *NewCamera()
}

// WorldToScreen converts grid coordinates to screen pixels. Cell (x, y)
// covers [x, x+1) x [y, y+1) in grid coordinates.
func (c *Camera) WorldToScreen(x, y float32) (float32, float32) {
	return x*c.CellPx + c.OffsetX, y*c.CellPx + c.OffsetY
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float32) (float32, float32) {
	return (sx - c.OffsetX) / c.CellPx, (sy - c.OffsetY) / c.CellPx
}

// CellAt returns the grid cell under a screen point.
func (c *Camera) CellAt(sx, sy float32) (x, y int) {
	wx, wy := c.ScreenToWorld(sx, sy)
	return int(math.Floor(float64(wx))), int(math.Floor(float64(wy)))
}

// HandleEvent pans with the secondary or middle button and zooms on scroll.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		switch {
		case ev.Scroll.Y > 0:
			c.ZoomBy(1/zoomStep, ev.Position.X, ev.Position.Y)
		case ev.Scroll.Y < 0:
			c.ZoomBy(zoomStep, ev.Position.X, ev.Position.Y)
		}
	}
}

// Pan moves the view by a screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
	c.fitted = true
}

// ZoomBy scales the view keeping the grid point under (cx, cy) fixed.
func (c *Camera) ZoomBy(factor, cx, cy float32) {
	wx, wy := c.ScreenToWorld(cx, cy)
	c.CellPx = clamp(c.CellPx*factor, minCellPx, maxCellPx)
	sx, sy := c.WorldToScreen(wx, wy)
	c.OffsetX += cx - sx
	c.OffsetY += cy - sy
	c.fitted = true
}

// Fit centers a width x height grid in the screen area with a margin.
func (c *Camera) Fit(width, height int, screenW, screenH, margin float32) {
	if width <= 0 || height <= 0 {
		return
	}
	zx := (screenW - 2*margin) / float32(width)
	zy := (screenH - 2*margin) / float32(height)
	c.CellPx = clamp(min(zx, zy), minCellPx, maxCellPx)
	c.OffsetX = (screenW - float32(width)*c.CellPx) / 2
	c.OffsetY = (screenH - float32(height)*c.CellPx) / 2
	c.fitted = true
}

// FitOnce fits the grid unless the view was already fitted or moved.
func (c *Camera) FitOnce(width, height int, screenW, screenH, margin float32) {
	if !c.fitted {
		c.Fit(width, height, screenW, screenH, margin)
	}
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
