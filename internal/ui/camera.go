package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/foodmatch/core/layout"
)

// Camera maps CSS-pixel layout coordinates onto the device-pixel screen.
// The canvas is centered in the window, so it may start at an offset.
type Camera struct {
	Scale      float64 // device pixels per CSS pixel
	OffX, OffY float64 // canvas origin on screen, device pixels
}

func NewCamera() *Camera { return &Camera{Scale: 1} }

// ScreenPos converts a CSS position to device pixels.
func (c *Camera) ScreenPos(x, y float64) (sx, sy float64) {
	return x*c.Scale + c.OffX, y*c.Scale + c.OffY
}

// CanvasPos converts a screen position to device pixels relative to the
// canvas origin, the space hit-testing works in.
func (c *Camera) CanvasPos(x, y float64) (float64, float64) {
	return x - c.OffX, y - c.OffY
}

// ScreenRect returns r in device pixels, ready for the vector package.
func (c *Camera) ScreenRect(r layout.Rect) (x, y, w, h float32) {
	x0, y0 := c.ScreenPos(r.X, r.Y)
	return float32(x0), float32(y0), float32(r.W * c.Scale), float32(r.H * c.Scale)
}

// Len scales a CSS length.
func (c *Camera) Len(v float64) float32 { return float32(v * c.Scale) }

// GeoM places an image of srcW x srcH pixels over r.
func (c *Camera) GeoM(r layout.Rect, srcW, srcH int) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(r.W/float64(srcW), r.H/float64(srcH))
	m.Translate(r.X, r.Y)
	m.Scale(c.Scale, c.Scale)
	m.Translate(c.OffX, c.OffY)
	return m
}
