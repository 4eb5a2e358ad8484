package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ingyamilmolinar/foodmatch/core/engine"
	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/internal/assets"
)

const ellipseSegments = 48

var debugPrint = ebitenutil.DebugPrintAt

func (g *Game) drawRound(screen *ebiten.Image) {
	s := g.session
	l := s.Layout()
	sf := l.Metrics.ScaleFactor

	if s.State() == engine.StateStartMenu {
		cx, cy := g.cam.ScreenPos(l.Smile.X+l.Smile.W/2, l.Smile.Y+l.Smile.H/2)
		drawLabel(screen, "Food Match", cx, cy, g.textScale()*1.5, colText)
		g.drawControl(screen, l.Restart, "Start")
		return
	}

	for _, p := range l.Plates {
		g.drawPlate(screen, layout.Rect{X: p.X, Y: p.Y, W: l.PlateSize, H: l.PlateSize})
	}
	for _, t := range s.Tiles() {
		g.drawTile(screen, t, l.ImageSize, sf)
	}
	for _, b := range s.Buttons() {
		g.drawAudioButton(screen, b, sf)
	}
	if s.Completed() {
		g.drawSmile(screen, l.Smile, sf)
		g.drawControl(screen, l.Restart, "Play again")
	}
}

func (g *Game) drawPlate(screen *ebiten.Image, r layout.Rect) {
	if img, ok := g.images[assets.PlateKey]; ok && img != nil {
		b := img.Bounds()
		drawSprite(screen, img, g.cam.GeoM(r, b.Dx(), b.Dy()), 1)
		return
	}
	sf := g.session.Metrics().ScaleFactor
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	border := 3 * sf
	drawPolygon(screen, colPlateBorder, g.ellipse(cx, cy, r.W*0.45+border/2, r.H*0.35+border/2)...)
	drawPolygon(screen, colPlate, g.ellipse(cx, cy, r.W*0.45-border/2, r.H*0.35-border/2)...)
}

// ellipse returns device-pixel vertices around (cx,cy) given in CSS pixels.
func (g *Game) ellipse(cx, cy, rx, ry float64) []float32 {
	pts := make([]float32, 0, ellipseSegments*2)
	for i := 0; i < ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		x, y := g.cam.ScreenPos(cx+rx*math.Cos(a), cy+ry*math.Sin(a))
		pts = append(pts, float32(x), float32(y))
	}
	return pts
}

func (g *Game) drawTile(screen *ebiten.Image, t engine.TileView, size, sf float64) {
	r := layout.Rect{X: t.Pos.X, Y: t.Pos.Y, W: size, H: size}
	alpha := float32(1)
	if t.Dragging {
		alpha = dragAlpha
	}
	if img, ok := g.images[t.Item.ImageKey()]; ok && img != nil {
		b := img.Bounds()
		drawSprite(screen, img, g.cam.GeoM(r, b.Dx(), b.Dy()), alpha)
	} else {
		x, y, w, h := g.cam.ScreenRect(r)
		c := assets.PlaceholderColor(t.Item.ID)
		drawRect(screen, x, y, w, h, color.NRGBA{c.R, c.G, c.B, uint8(255 * alpha)}, true, 0)
	}

	border, width := color.Color(colTileBorder), 2*sf
	if t.Matched {
		border, width = colMatchBorder, 4*sf
	}
	pad := 2.0
	x, y, w, h := g.cam.ScreenRect(layout.Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad})
	drawRect(screen, x, y, w, h, border, false, g.cam.Len(width))
}

func (g *Game) drawAudioButton(screen *ebiten.Image, b engine.ButtonView, sf float64) {
	c := b.Circle.Center()
	cx, cy := g.cam.ScreenPos(c.X, c.Y)
	r := g.cam.Len(b.Circle.Radius())

	fill := colButton
	if b.Dimmed {
		fill = colDimmed
	}
	drawCircle(screen, float32(cx), float32(cy), r, fill, true, 0)
	drawCircle(screen, float32(cx), float32(cy), r, colButtonBorder, false, g.cam.Len(2*sf))

	// Play icon.
	size := b.Circle.Size
	x0, y0 := g.cam.ScreenPos(b.Circle.X+size*0.35, b.Circle.Y+size*0.3)
	x1, y1 := g.cam.ScreenPos(b.Circle.X+size*0.35, b.Circle.Y+size*0.7)
	x2, y2 := g.cam.ScreenPos(b.Circle.X+size*0.7, b.Circle.Y+size/2)
	drawPolygon(screen, colButtonIcon, float32(x0), float32(y0), float32(x1), float32(y1), float32(x2), float32(y2))

	if b.Highlighted {
		drawCircle(screen, float32(cx), float32(cy), r+g.cam.Len(2*sf), colHighlight, false, g.cam.Len(3*sf))
	}
}

func (g *Game) drawSmile(screen *ebiten.Image, r layout.Rect, sf float64) {
	cx, cy := g.cam.ScreenPos(r.X+r.W/2, r.Y+r.H/2)
	rad := g.cam.Len(r.W / 2)
	drawCircle(screen, float32(cx), float32(cy), rad+g.cam.Len(5*sf), colSmileHalo, true, 0)

	if img, ok := g.images[assets.SmileKey]; ok && img != nil {
		b := img.Bounds()
		drawSprite(screen, img, g.cam.GeoM(r, b.Dx(), b.Dy()), 1)
		return
	}
	drawCircle(screen, float32(cx), float32(cy), rad, colSmile, true, 0)
	eye := rad / 8
	drawCircle(screen, float32(cx)-rad/3, float32(cy)-rad/4, eye, colText, true, 0)
	drawCircle(screen, float32(cx)+rad/3, float32(cy)-rad/4, eye, colText, true, 0)
	// Mouth: lower half of an ellipse.
	mouth := make([]float32, 0, 34)
	for i := 0; i <= 16; i++ {
		a := math.Pi * float64(i) / 16
		mouth = append(mouth,
			float32(cx)+rad/2*float32(math.Cos(a)),
			float32(cy)+rad/8+rad/3*float32(math.Sin(a)))
	}
	drawPolygon(screen, colText, mouth...)
}

// drawControl renders the start/restart button.
func (g *Game) drawControl(screen *ebiten.Image, r layout.Rect, label string) {
	sf := g.session.Metrics().ScaleFactor
	x, y, w, h := g.cam.ScreenRect(r)
	drawRect(screen, x, y, w, h, colButton, true, 0)
	drawRect(screen, x, y, w, h, colButtonBorder, false, g.cam.Len(2*sf))
	cx, cy := g.cam.ScreenPos(r.X+r.W/2, r.Y+r.H/2)
	drawLabel(screen, label, cx, cy, g.textScale(), colButtonIcon)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	m := g.session.Metrics()
	debugPrint(screen, fmt.Sprintf("TPS %.0f  %s  %dx%d@%.2f  timers %d", ebiten.ActualTPS(), g.session.State(),
		m.CanvasWidthDevice, m.CanvasHeightDevice, m.DPR, g.timers.Pending()), 4, 4)
}
