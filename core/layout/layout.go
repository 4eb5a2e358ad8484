package layout

// Sizes are base-resolution lengths; Compute multiplies them by the scale
// factor.
type Sizes struct {
	Image        float64
	Plate        float64
	Button       float64
	TopMargin    float64
	PlateOffset  float64 // gap between the image row and the plate row
	ButtonOffset float64 // gap between a plate and its audio button
	MinSpacing   float64
	Smile        float64
	SmileTop     float64
	// SnapOverlap lowers a matched tile into its plate. Revisions of the
	// game used 0 and 15.
	SnapOverlap float64
}

func DefaultSizes() Sizes {
	return Sizes{
		Image:        150,
		Plate:        150,
		Button:       40,
		TopMargin:    60,
		PlateOffset:  200,
		ButtonOffset: 25,
		MinSpacing:   20,
		Smile:        120,
		SmileTop:     20,
	}
}

// maxRowFraction bounds the image row to 95% of the canvas width.
const maxRowFraction = 0.95

// minGapFraction is the share of MinSpacing a refit row may shrink its gaps
// to before the tiles themselves shrink.
const minGapFraction = 0.5

type Point struct{ X, Y float64 }

// Rect is an axis-aligned box in CSS pixels.
type Rect struct{ X, Y, W, H float64 }

// Circle is a round audio button: top-left corner plus diameter.
type Circle struct{ X, Y, Size float64 }

func (c Circle) Center() Point   { return Point{c.X + c.Size/2, c.Y + c.Size/2} }
func (c Circle) Radius() float64 { return c.Size / 2 }

// Layout holds every resting position for one round at one canvas size.
type Layout struct {
	Metrics Metrics

	ImageSize  float64
	PlateSize  float64
	ButtonSize float64
	Spacing    float64

	Tiles   []Point // rest position per image slot
	Plates  []Point // per plate index
	Buttons []Circle
	Smile   Rect
	Restart Rect

	snapOverlap float64
}

// Compute positions n = len(columns) tiles, plates and buttons. Image slot i
// rests in display column columns[i]; plate j always occupies column j.
func Compute(m Metrics, columns []int, s Sizes) Layout {
	n := len(columns)
	sf := m.ScaleFactor
	l := Layout{
		Metrics:     m,
		ImageSize:   s.Image * sf,
		PlateSize:   s.Plate * sf,
		ButtonSize:  s.Button * sf,
		snapOverlap: s.SnapOverlap * sf,
	}
	w := m.CanvasWidthCSS
	smile := s.Smile * sf
	l.Smile = Rect{(w - smile) / 2, s.SmileTop * sf, smile, smile}
	rw, rh := 200*sf, 50*sf
	l.Restart = Rect{(w - rw) / 2, l.Smile.Y + smile + 20*sf, rw, rh}
	if n == 0 {
		return l
	}
	fn := float64(n)

	spacing := (w - fn*l.ImageSize) / (fn + 1)
	if floor := s.MinSpacing * sf; spacing < floor {
		spacing = floor
	}
	left := spacing
	if span := fn*l.ImageSize + (fn-1)*spacing; span > w*maxRowFraction {
		avail := w * maxRowFraction
		spacing = 0
		if n > 1 {
			spacing = (avail - fn*l.ImageSize) / (fn - 1)
		}
		// Too many tiles for their size: keep a minimum gap and shrink
		// tiles, plates and buttons together.
		if gap := s.MinSpacing * sf * minGapFraction; spacing < gap {
			spacing = gap
			if n == 1 {
				spacing = 0
			}
			k := (avail - (fn-1)*spacing) / (fn * l.ImageSize)
			l.ImageSize *= k
			l.PlateSize *= k
			l.ButtonSize *= k
		}
		left = (w - (fn*l.ImageSize + (fn-1)*spacing)) / 2
	}
	l.Spacing = spacing

	colX := make([]float64, n)
	for c := range colX {
		colX[c] = left + float64(c)*(l.ImageSize+spacing)
	}

	top := s.TopMargin * sf
	plateY := top + l.ImageSize + s.PlateOffset*sf
	l.Tiles = make([]Point, n)
	l.Plates = make([]Point, n)
	l.Buttons = make([]Circle, n)
	for i, c := range columns {
		l.Tiles[i] = Point{colX[c], top}
	}
	for j := 0; j < n; j++ {
		px := colX[j] + (l.ImageSize-l.PlateSize)/2
		l.Plates[j] = Point{px, plateY}
		l.Buttons[j] = Circle{
			X:    px + (l.PlateSize-l.ButtonSize)/2,
			Y:    plateY + l.PlateSize + s.ButtonOffset*sf,
			Size: l.ButtonSize,
		}
	}
	return l
}

// SnapPosition is where a correctly matched tile rests: centered over the
// plate with its bottom edge on the plate's top edge.
func (l Layout) SnapPosition(plate int) Point {
	p := l.Plates[plate]
	return Point{
		X: p.X + (l.PlateSize-l.ImageSize)/2,
		Y: p.Y - l.ImageSize + l.snapOverlap,
	}
}
