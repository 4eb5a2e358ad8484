package ui

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/foodmatch/core/cue"
	"github.com/ingyamilmolinar/foodmatch/core/engine"
	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/core/timer"
	"github.com/ingyamilmolinar/foodmatch/internal/assets"
	"github.com/ingyamilmolinar/foodmatch/internal/audio"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

type phase int

const (
	phaseLoading phase = iota
	phaseReady
	phaseFailed
)

// CompletionSource reports finished audio instances. *audio.Engine
// implements it.
type CompletionSource interface {
	Finished() []audio.Completion
}

// LoadFunc loads every resource and reports progress in percent.
type LoadFunc func(ctx context.Context, progress func(pct int)) (*assets.Bundle, error)

type Options struct {
	Session *engine.Session
	Cues    *cue.Controller
	Timers  *timer.Scheduler
	Audio   CompletionSource
	Scale   layout.ScaleConfig
	Load    LoadFunc
	Logger  *game_log.Logger
	// ShowTPS prints the tick rate in the corner.
	ShowTPS bool
	// Err opens the game on its failure screen; nothing is loaded.
	Err error
}

type loadResult struct {
	bundle *assets.Bundle
	err    error
}

// newImage converts decoded pictures to GPU images. Tests replace it.
var newImage = func(img image.Image) *ebiten.Image { return ebiten.NewImageFromImage(img) }

// Game is the ebiten host around an engine.Session.
type Game struct {
	session *engine.Session
	cues    *cue.Controller
	timers  *timer.Scheduler
	audio   CompletionSource
	scale   layout.ScaleConfig
	load    LoadFunc
	logger  *game_log.Logger
	showTPS bool

	phase    phase
	progress atomic.Int32
	loaded   chan loadResult
	cancel   context.CancelFunc
	loadErr  error
	images   map[string]*ebiten.Image

	cam              *Camera
	screenW, screenH int
	pointer          pointerTracker
	frame            int64
}

func New(o Options) *Game {
	g := &Game{
		session: o.Session,
		cues:    o.Cues,
		timers:  o.Timers,
		audio:   o.Audio,
		scale:   o.Scale,
		load:    o.Load,
		logger:  o.Logger.Tagged("GAME"),
		showTPS: o.ShowTPS,
		images:  map[string]*ebiten.Image{},
		cam:     NewCamera(),
	}
	if o.Err != nil {
		g.phase = phaseFailed
		g.loadErr = o.Err
	}
	return g
}

// Layout resolves the canvas for the window. The screen is the whole window
// in device pixels, so ebiten never stretches it; the canvas is centered in
// it and keeps its capped size.
func (g *Game) Layout(w, h int) (int, int) {
	vp := layout.Viewport{Width: float64(w), Height: float64(h), DPR: deviceScaleFactor()}
	m := layout.ComputeScale(vp, g.scale)
	g.session.Resize(m)
	g.screenW = max(int(math.Round(float64(w)*m.DPR)), m.CanvasWidthDevice, 1)
	g.screenH = max(int(math.Round(float64(h)*m.DPR)), m.CanvasHeightDevice, 1)
	g.cam.Scale = m.DPR
	g.cam.OffX = float64((g.screenW - m.CanvasWidthDevice) / 2)
	g.cam.OffY = float64((g.screenH - m.CanvasHeightDevice) / 2)
	return g.screenW, g.screenH
}

// Close stops a load still in flight.
func (g *Game) Close() {
	if g.cancel != nil {
		g.cancel()
	}
}

func (g *Game) startLoading() {
	g.loaded = make(chan loadResult, 1)
	if g.load == nil {
		g.loaded <- loadResult{bundle: &assets.Bundle{}}
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.logger.Infof("loading resources")
	go func() {
		b, err := g.load(ctx, func(pct int) { g.progress.Store(int32(pct)) })
		g.loaded <- loadResult{bundle: b, err: err}
	}()
}

func (g *Game) pollLoading() {
	if g.loaded == nil {
		g.startLoading()
	}
	select {
	case r := <-g.loaded:
		if r.err != nil {
			g.loadErr = r.err
			g.phase = phaseFailed
			g.logger.Errorf("loading failed: %v", r.err)
			return
		}
		for k, img := range r.bundle.Images {
			g.images[k] = newImage(img)
		}
		g.progress.Store(100)
		g.phase = phaseReady
		g.logger.Infof("ready with %d images, %d resources missing", len(g.images), len(r.bundle.Failures))
	default:
	}
}

// Err is the error shown on the failure screen, if any.
func (g *Game) Err() error { return g.loadErr }

// Progress is the last reported load percentage.
func (g *Game) Progress() int { return int(g.progress.Load()) }

func (g *Game) Update() error {
	g.frame++
	switch g.phase {
	case phaseLoading:
		g.pollLoading()
		return nil
	case phaseFailed:
		return nil
	}

	if g.audio != nil {
		for _, c := range g.audio.Finished() {
			g.cues.Finished(c.Handle, c.Err)
		}
	}
	g.timers.Tick()

	for _, ev := range g.pointer.poll() {
		ev.X, ev.Y = g.cam.CanvasPos(ev.X, ev.Y)
		g.session.Handle(ev)
	}
	if isKeyJustPressed(ebiten.KeySpace) || isKeyJustPressed(ebiten.KeyEnter) {
		if err := g.session.KeyStart(); err != nil {
			g.logger.Errorf("start round: %v", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawRect(screen, 0, 0, float32(g.screenW), float32(g.screenH), colBackground, true, 0)
	switch g.phase {
	case phaseLoading:
		g.drawLoading(screen)
	case phaseFailed:
		g.drawFailure(screen)
	default:
		g.drawRound(screen)
	}
	if g.showTPS {
		g.drawDebug(screen)
	}
}

func (g *Game) drawLoading(screen *ebiten.Image) {
	m := g.session.Metrics()
	w, h := m.CanvasWidthCSS, m.CanvasHeightCSS
	bar := layout.Rect{X: w * 0.2, Y: h/2 - 12*m.ScaleFactor, W: w * 0.6, H: 24 * m.ScaleFactor}
	x, y, bw, bh := g.cam.ScreenRect(bar)
	drawRect(screen, x, y, bw, bh, colProgressTrack, true, 0)
	drawRect(screen, x, y, bw*float32(g.Progress())/100, bh, colProgressFill, true, 0)
	drawRect(screen, x, y, bw, bh, colButtonBorder, false, g.cam.Len(2*m.ScaleFactor))
	cx, cy := g.cam.ScreenPos(w/2, bar.Y-30*m.ScaleFactor)
	drawLabel(screen, fmt.Sprintf("Loading %d%%", g.Progress()), cx, cy, g.textScale(), colText)
}

func (g *Game) drawFailure(screen *ebiten.Image) {
	m := g.session.Metrics()
	cx, cy := g.cam.ScreenPos(m.CanvasWidthCSS/2, m.CanvasHeightCSS/2)
	drawLabel(screen, "Could not load the game", cx, cy-g.textScale()*20, g.textScale(), colError)
	drawLabel(screen, g.loadErr.Error(), cx, cy+g.textScale()*10, g.textScale()/2, colText)
}

// textScale sizes the bitmap font to the canvas.
func (g *Game) textScale() float64 {
	s := 3 * g.session.Metrics().ScaleFactor * g.cam.Scale
	return max(s, 1)
}
