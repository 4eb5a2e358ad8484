package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Draw primitives are variables so tests can capture draw calls without a
// graphics context.

var drawRect = func(dst *ebiten.Image, x, y, w, h float32, c color.Color, filled bool, stroke float32) {
	if filled {
		vector.DrawFilledRect(dst, x, y, w, h, c, true)
	} else {
		vector.StrokeRect(dst, x, y, w, h, stroke, c, true)
	}
}

var drawCircle = func(dst *ebiten.Image, cx, cy, r float32, c color.Color, filled bool, stroke float32) {
	if filled {
		vector.DrawFilledCircle(dst, cx, cy, r, c, true)
	} else {
		vector.StrokeCircle(dst, cx, cy, r, stroke, c, true)
	}
}

// drawPolygon fills the closed polygon through pts (x0,y0,x1,y1,...).
var drawPolygon = func(dst *ebiten.Image, c color.Color, pts ...float32) {
	var p vector.Path
	p.MoveTo(pts[0], pts[1])
	for i := 2; i+1 < len(pts); i += 2 {
		p.LineTo(pts[i], pts[i+1])
	}
	p.Close()
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

var drawSprite = func(dst, img *ebiten.Image, geo ebiten.GeoM, alpha float32) {
	op := &ebiten.DrawImageOptions{GeoM: geo}
	op.Filter = ebiten.FilterLinear
	op.ColorScale.ScaleAlpha(alpha)
	dst.DrawImage(img, op)
}

// drawLabel centers s on (cx,cy) at scale times the 7x13 bitmap font.
var drawLabel = func(dst *ebiten.Image, s string, cx, cy, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	w, h := text.Measure(s, labelFace, 0)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, labelFace, op)
}

var labelFace = text.NewGoXFace(basicfont.Face7x13)

var white *ebiten.Image

func whitePixel() *ebiten.Image {
	if white == nil {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	}
	return white
}
