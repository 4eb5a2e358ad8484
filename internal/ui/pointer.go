package ui

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/foodmatch/core/engine"
)

type pointerSource int

const (
	srcNone pointerSource = iota
	srcMouse
	srcTouch
)

// pointerTracker turns polled mouse and touch state into pointer events.
// One pointer is followed at a time; the first touch wins over the mouse.
type pointerTracker struct {
	src   pointerSource
	touch ebiten.TouchID
	x, y  int
}

func event(k engine.PointerKind, x, y int) engine.PointerEvent {
	return engine.PointerEvent{Kind: k, X: float64(x), Y: float64(y)}
}

// poll returns the events that happened since the previous frame.
func (p *pointerTracker) poll() []engine.PointerEvent {
	var out []engine.PointerEvent
	if p.src != srcNone && !isFocused() {
		p.src = srcNone
		return append(out, engine.PointerEvent{Kind: engine.PointerCancel})
	}
	switch p.src {
	case srcNone:
		if ids := touchIDs(); len(ids) > 0 {
			p.src, p.touch = srcTouch, ids[0]
			p.x, p.y = touchPosition(ids[0])
			out = append(out, event(engine.PointerDown, p.x, p.y))
		} else if isMouseButtonPressed(ebiten.MouseButtonLeft) {
			p.src = srcMouse
			p.x, p.y = cursorPosition()
			out = append(out, event(engine.PointerDown, p.x, p.y))
		}
	case srcMouse:
		out = p.move(out, cursorPosition)
		if !isMouseButtonPressed(ebiten.MouseButtonLeft) {
			p.src = srcNone
			out = append(out, event(engine.PointerUp, p.x, p.y))
		}
	case srcTouch:
		if !slices.Contains(touchIDs(), p.touch) {
			p.src = srcNone
			return append(out, event(engine.PointerUp, p.x, p.y))
		}
		out = p.move(out, func() (int, int) { return touchPosition(p.touch) })
	}
	return out
}

func (p *pointerTracker) move(out []engine.PointerEvent, pos func() (int, int)) []engine.PointerEvent {
	x, y := pos()
	if x == p.x && y == p.y {
		return out
	}
	p.x, p.y = x, y
	return append(out, event(engine.PointerMove, x, y))
}
