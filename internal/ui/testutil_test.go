package ui

import (
	"context"
	"image"
	"image/color"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/foodmatch/core/cue"
	"github.com/ingyamilmolinar/foodmatch/core/engine"
	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/core/model"
	"github.com/ingyamilmolinar/foodmatch/core/timer"
	"github.com/ingyamilmolinar/foodmatch/internal/assets"
	"github.com/ingyamilmolinar/foodmatch/internal/audio"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

var testLogger = game_log.New(os.Stdout, game_log.LevelError)

// fakeInput is the polled input state seen by the game.
type fakeInput struct {
	x, y    int
	left    bool
	keys    map[ebiten.Key]bool
	touches map[ebiten.TouchID][2]int
	dpr     float64
}

func installInput(t *testing.T, in *fakeInput) {
	t.Helper()
	restore := SetInputForTest(
		func() (int, int) { return in.x, in.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && in.left },
		func(k ebiten.Key) bool { return in.keys[k] },
		func() []ebiten.TouchID {
			var ids []ebiten.TouchID
			for id := range in.touches {
				ids = append(ids, id)
			}
			return ids
		},
		func(id ebiten.TouchID) (int, int) { p := in.touches[id]; return p[0], p[1] },
		func() float64 { return in.dpr },
	)
	t.Cleanup(restore)
}

type countingPlayer struct{ next cue.Handle }

func (p *countingPlayer) Has(string) bool { return true }

func (p *countingPlayer) Play(string) (cue.Handle, error) {
	p.next++
	return p.next, nil
}

type queuedCompletions struct {
	mu sync.Mutex
	q  []audio.Completion
}

func (c *queuedCompletions) push(h cue.Handle) {
	c.mu.Lock()
	c.q = append(c.q, audio.Completion{Handle: h})
	c.mu.Unlock()
}

func (c *queuedCompletions) Finished() []audio.Completion {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.q
	c.q = nil
	return out
}

type testGame struct {
	*Game
	in    *fakeInput
	cues  *cue.Controller
	done  *queuedCompletions
	state *engine.Session
}

func newTestGame(t *testing.T, dpr float64, load LoadFunc) *testGame {
	t.Helper()
	oldNewImage := newImage
	newImage = func(image.Image) *ebiten.Image { return nil }
	t.Cleanup(func() { newImage = oldNewImage })

	in := &fakeInput{keys: map[ebiten.Key]bool{}, touches: map[ebiten.TouchID][2]int{}, dpr: dpr}
	installInput(t, in)

	sel, err := model.NewSelector(model.SelectorConfig{Policy: model.PolicyFixed}, testLogger)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	timers := timer.NewScheduler()
	cues := cue.NewController(&countingPlayer{}, timers, testLogger)
	m := layout.ComputeScale(layout.Viewport{Width: layout.BaseWidth, Height: layout.BaseHeight, DPR: 1}, layout.DefaultScaleConfig())
	s, err := engine.NewSession(sel, cues, m, engine.Config{Sizes: layout.DefaultSizes()}, testLogger)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	done := &queuedCompletions{}
	if load == nil {
		load = func(context.Context, func(int)) (*assets.Bundle, error) {
			return &assets.Bundle{Images: map[string]image.Image{}}, nil
		}
	}
	g := New(Options{
		Session: s,
		Cues:    cues,
		Timers:  timers,
		Audio:   done,
		Scale:   layout.DefaultScaleConfig(),
		Load:    load,
		Logger:  testLogger,
	})
	t.Cleanup(g.Close)
	return &testGame{Game: g, in: in, cues: cues, done: done, state: s}
}

// waitPhase runs frames until the game reaches p.
func (tg *testGame) waitPhase(t *testing.T, p phase) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for tg.phase != p {
		if time.Now().After(deadline) {
			t.Fatalf("phase=%d, want %d", tg.phase, p)
		}
		tg.Update()
		time.Sleep(time.Millisecond)
	}
}

// frame runs one Update.
func (tg *testGame) frame(t *testing.T) {
	t.Helper()
	if err := tg.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

// centerOf returns the on-screen device-pixel center of slot i's tile.
func (tg *testGame) centerOf(i int) (int, int) {
	l := tg.state.Layout()
	p := tg.state.Position(i)
	x, y := tg.cam.ScreenPos(p.X+l.ImageSize/2, p.Y+l.ImageSize/2)
	return int(x), int(y)
}

// plateCenter returns the on-screen device-pixel center of plate j.
func (tg *testGame) plateCenter(j int) (int, int) {
	l := tg.state.Layout()
	p := l.Plates[j]
	x, y := tg.cam.ScreenPos(p.X+l.PlateSize/2, p.Y+l.PlateSize/2)
	return int(x), int(y)
}

// mouseDrag presses at from, moves to to and releases, one frame each.
func (tg *testGame) mouseDrag(t *testing.T, fx, fy, tx, ty int) {
	t.Helper()
	tg.in.x, tg.in.y, tg.in.left = fx, fy, true
	tg.frame(t)
	tg.in.x, tg.in.y = tx, ty
	tg.frame(t)
	tg.in.left = false
	tg.frame(t)
}

type drawCall struct {
	kind   string
	c      color.Color
	filled bool
	label  string
}

// captureDraws swaps every draw primitive for a recorder.
func captureDraws(t *testing.T) *[]drawCall {
	t.Helper()
	var calls []drawCall
	oldRect, oldCircle, oldPoly, oldSprite, oldLabel := drawRect, drawCircle, drawPolygon, drawSprite, drawLabel
	drawRect = func(_ *ebiten.Image, _, _, _, _ float32, c color.Color, filled bool, _ float32) {
		calls = append(calls, drawCall{kind: "rect", c: c, filled: filled})
	}
	drawCircle = func(_ *ebiten.Image, _, _, _ float32, c color.Color, filled bool, _ float32) {
		calls = append(calls, drawCall{kind: "circle", c: c, filled: filled})
	}
	drawPolygon = func(_ *ebiten.Image, c color.Color, _ ...float32) {
		calls = append(calls, drawCall{kind: "poly", c: c, filled: true})
	}
	drawSprite = func(_, _ *ebiten.Image, _ ebiten.GeoM, _ float32) {
		calls = append(calls, drawCall{kind: "sprite"})
	}
	drawLabel = func(_ *ebiten.Image, s string, _, _, _ float64, c color.Color) {
		calls = append(calls, drawCall{kind: "label", c: c, label: s})
	}
	t.Cleanup(func() {
		drawRect, drawCircle, drawPolygon, drawSprite, drawLabel = oldRect, oldCircle, oldPoly, oldSprite, oldLabel
	})
	return &calls
}
