package utils

import "math"

// Overlaps reports whether two axis-aligned rectangles intersect. Touching
// edges do not count as an overlap.
func Overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw &&
		ax+aw > bx &&
		ay < by+bh &&
		ay+ah > by
}

// InBox reports whether (px,py) lies inside the box, edges included.
func InBox(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// InCircle reports whether (px,py) lies inside or on the circle.
func InCircle(px, py, cx, cy, r float64) bool {
	dx, dy := px-cx, py-cy
	return math.Sqrt(dx*dx+dy*dy) <= r
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
