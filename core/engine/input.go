package engine

import "fmt"

// PointerKind is the phase of a normalized pointer event. Mouse buttons and
// the first touch point both map onto these.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	// PointerCancel aborts a drag without resolving it (touch cancel, focus
	// loss).
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// PointerEvent carries canvas coordinates in device pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}
