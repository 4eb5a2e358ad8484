package layout

import "math"

// Logical base resolution every size in the game is designed against.
const (
	BaseWidth  = 1200
	BaseHeight = 800
)

// Viewport is what the host reports: the available area in CSS pixels and
// the device pixel ratio.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

// ScaleConfig caps upscaling and bounds the canvas to a fraction of the
// viewport. Zero values fall back to the defaults.
type ScaleConfig struct {
	MaxScale          float64
	MaxWidthFraction  float64
	MaxHeightFraction float64
}

func DefaultScaleConfig() ScaleConfig {
	return ScaleConfig{MaxScale: 1.2, MaxWidthFraction: 1, MaxHeightFraction: 1}
}

func (c ScaleConfig) withDefaults() ScaleConfig {
	d := DefaultScaleConfig()
	if c.MaxScale <= 0 {
		c.MaxScale = d.MaxScale
	}
	if c.MaxWidthFraction <= 0 || c.MaxWidthFraction > 1 {
		c.MaxWidthFraction = d.MaxWidthFraction
	}
	if c.MaxHeightFraction <= 0 || c.MaxHeightFraction > 1 {
		c.MaxHeightFraction = d.MaxHeightFraction
	}
	return c
}

// Metrics is the resolved canvas geometry. Game state lives in CSS pixels;
// drawing and hit-testing happen in device pixels (CSS * DPR).
type Metrics struct {
	CanvasWidthCSS, CanvasHeightCSS       float64
	CanvasWidthDevice, CanvasHeightDevice int
	ScaleFactor                           float64
	DPR                                   float64
}

// ToDevice converts a CSS-space length or coordinate to device pixels.
func (m Metrics) ToDevice(v float64) float64 { return v * m.DPR }

// ToCSS converts a device-pixel length or coordinate to CSS pixels.
func (m Metrics) ToCSS(v float64) float64 { return v / m.DPR }

// ComputeScale resolves the canvas size for a viewport.
func ComputeScale(vp Viewport, cfg ScaleConfig) Metrics {
	cfg = cfg.withDefaults()
	dpr := vp.DPR
	if dpr <= 0 {
		dpr = 1
	}
	scale := math.Min(math.Min(vp.Width/BaseWidth, vp.Height/BaseHeight), cfg.MaxScale)
	if scale <= 0 || math.IsNaN(scale) {
		scale = 0
	}
	w := math.Round(BaseWidth * scale)
	h := math.Round(BaseHeight * scale)

	maxW := vp.Width * cfg.MaxWidthFraction
	maxH := vp.Height * cfg.MaxHeightFraction
	if w > maxW || h > maxH {
		scale = math.Min(maxW/BaseWidth, maxH/BaseHeight)
		w = math.Round(BaseWidth * scale)
		h = math.Round(BaseHeight * scale)
	}

	return Metrics{
		CanvasWidthCSS:     w,
		CanvasHeightCSS:    h,
		CanvasWidthDevice:  int(math.Round(w * dpr)),
		CanvasHeightDevice: int(math.Round(h * dpr)),
		ScaleFactor:        scale,
		DPR:                dpr,
	}
}
