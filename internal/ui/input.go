package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyJustPressed     = inpututil.IsKeyJustPressed
	touchIDs             = func() []ebiten.TouchID { return ebiten.AppendTouchIDs(nil) }
	touchPosition        = ebiten.TouchPosition
	deviceScaleFactor    = func() float64 { return ebiten.Monitor().DeviceScaleFactor() }
	isFocused            = ebiten.IsFocused
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	touches func() []ebiten.TouchID,
	touchPos func(ebiten.TouchID) (int, int),
	dpr func() float64,
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyJustPressed
	oldTouches := touchIDs
	oldTouchPos := touchPosition
	oldDPR := deviceScaleFactor
	oldFocused := isFocused
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyJustPressed = key
	touchIDs = touches
	touchPosition = touchPos
	deviceScaleFactor = dpr
	isFocused = func() bool { return true }
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyJustPressed = oldKey
		touchIDs = oldTouches
		touchPosition = oldTouchPos
		deviceScaleFactor = oldDPR
		isFocused = oldFocused
	}
}
