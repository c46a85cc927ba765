package interact

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
)

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera()
	sx, sy := c.WorldToScreen(3, 2)
	assert.Equal(t, float32(20+3*32), sx)
	assert.Equal(t, float32(20+2*32), sy)

	wx, wy := c.ScreenToWorld(sx, sy)
	assert.InDelta(t, 3, wx, 1e-4)
	assert.InDelta(t, 2, wy, 1e-4)

	x, y := c.CellAt(sx+10, sy+31)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)
}

func TestCameraFit(t *testing.T) {
	c := NewCamera()
	c.Fit(10, 5, 1000, 600, 0)

	assert.Equal(t, float32(100), c.CellPx)
	assert.Equal(t, float32(0), c.OffsetX)
	assert.Equal(t, float32(50), c.OffsetY)

	c.FitOnce(1, 1, 1000, 600, 0)
	assert.Equal(t, float32(100), c.CellPx, "already fitted")

	c.Reset()
	c.FitOnce(1, 1, 100, 100, 0)
	assert.Equal(t, float32(100), c.CellPx)
}

func TestCameraZoomKeepsAnchor(t *testing.T) {
	c := NewCamera()
	wx, wy := c.ScreenToWorld(300, 200)

	c.ZoomBy(2, 300, 200)
	assert.Equal(t, float32(64), c.CellPx)
	sx, sy := c.WorldToScreen(wx, wy)
	assert.InDelta(t, 300, sx, 1e-3)
	assert.InDelta(t, 200, sy, 1e-3)

	c.ZoomBy(1000, 0, 0)
	assert.Equal(t, float32(maxCellPx), c.CellPx)
}

func TestCameraDragPans(t *testing.T) {
	c := NewCamera()
	c.HandleEvent(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonSecondary, Position: f32.Pt(10, 10)})
	c.HandleEvent(pointer.Event{Kind: pointer.Drag, Position: f32.Pt(15, 30)})
	c.HandleEvent(pointer.Event{Kind: pointer.Release})

	assert.Equal(t, float32(25), c.OffsetX)
	assert.Equal(t, float32(40), c.OffsetY)

	c.HandleEvent(pointer.Event{Kind: pointer.Drag, Position: f32.Pt(100, 100)})
	assert.Equal(t, float32(25), c.OffsetX, "no pan after release")
}
