package assets

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ingyamilmolinar/foodmatch/core/model"
)

const (
	placeholderSize   = 300
	placeholderInset  = 10
	placeholderStroke = 5
	// Glyphs are rendered at basicfont's native size and blown up.
	glyphScale = 8
)

var placeholderColors = []color.RGBA{
	{0xFF, 0x6B, 0x6B, 0xFF},
	{0x4E, 0xCD, 0xC4, 0xFF},
	{0xFF, 0xD1, 0x66, 0xFF},
	{0x06, 0xD6, 0xA0, 0xFF},
	{0x11, 0x8A, 0xB2, 0xFF},
}

// PlaceholderColor is the fill used for item id's placeholder tile.
func PlaceholderColor(id model.ItemID) color.RGBA {
	i := (int(id) - 1) % len(placeholderColors)
	if i < 0 {
		i += len(placeholderColors)
	}
	return placeholderColors[i]
}

// Placeholder draws a colored square with a black inset frame and the item
// number in white.
func Placeholder(id model.ItemID) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor(id)), image.Point{}, draw.Src)

	black := image.NewUniform(color.Black)
	lo, hi := placeholderInset, placeholderSize-placeholderInset
	for _, r := range []image.Rectangle{
		image.Rect(lo, lo, hi, lo+placeholderStroke),
		image.Rect(lo, hi-placeholderStroke, hi, hi),
		image.Rect(lo, lo, lo+placeholderStroke, hi),
		image.Rect(hi-placeholderStroke, lo, hi, hi),
	} {
		draw.Draw(img, r, black, image.Point{}, draw.Src)
	}

	label := numeral(strconv.Itoa(int(id)))
	w, h := label.Bounds().Dx()*glyphScale, label.Bounds().Dy()*glyphScale
	x, y := (placeholderSize-w)/2, (placeholderSize-h)/2
	draw.NearestNeighbor.Scale(img, image.Rect(x, y, x+w, y+h), label, label.Bounds(), draw.Over, nil)
	return img
}

// numeral renders s in white on a transparent image sized to the text.
func numeral(s string) *image.RGBA {
	face := basicfont.Face7x13
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(s)
	return img
}
