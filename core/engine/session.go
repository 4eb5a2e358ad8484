package engine

import (
	"github.com/ingyamilmolinar/foodmatch/core/cue"
	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/core/model"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
	"github.com/ingyamilmolinar/foodmatch/internal/utils"
)

// State is the coarse game phase.
type State int

const (
	StateStartMenu State = iota
	StateGaming
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateStartMenu:
		return "start_menu"
	case StateGaming:
		return "gaming"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// RoundSource builds a new round on every start.
type RoundSource interface {
	NewRound() (*model.Round, error)
}

type Config struct {
	Sizes layout.Sizes
	// StartInMenu shows the start menu instead of dealing a round at once.
	StartInMenu bool
}

// Drag is the single in-progress drag. Grab offsets are in CSS pixels.
type Drag struct {
	Active       bool
	Slot         int
	GrabX, GrabY float64
}

// Session owns every piece of mutable round state. All methods must be
// called from the game loop.
type Session struct {
	// OnComplete runs once per round when the last slot is matched.
	OnComplete func(roundID string)

	source RoundSource
	cues   *cue.Controller
	logger *game_log.Logger
	sizes  layout.Sizes

	state     State
	round     *model.Round
	metrics   layout.Metrics
	layout    layout.Layout
	positions []layout.Point
	matched   []bool
	drag      Drag
}

// NewSession creates a session and, unless cfg.StartInMenu is set, deals the
// first round.
func NewSession(src RoundSource, cues *cue.Controller, m layout.Metrics, cfg Config, logger *game_log.Logger) (*Session, error) {
	s := &Session{
		source:  src,
		cues:    cues,
		logger:  logger.Tagged("GAME"),
		sizes:   cfg.Sizes,
		state:   StateStartMenu,
		metrics: m,
	}
	// The start control shares the restart button's rectangle.
	s.layout = layout.Compute(m, nil, s.sizes)
	if !cfg.StartInMenu {
		if err := s.Start(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start replaces the current round with a new one. Positions, matches and
// drag state are reset together.
func (s *Session) Start() error {
	r, err := s.source.NewRound()
	if err != nil {
		return err
	}
	s.round = r
	s.matched = make([]bool, r.Size())
	s.drag = Drag{}
	keys := make([]string, r.Size())
	for j, it := range r.Audios {
		keys[j] = it.AudioKey()
	}
	s.cues.SetCues(keys)
	s.relayout()
	s.state = StateGaming
	s.logger.Infof("round %s started with %d slots", r.ID, r.Size())
	return nil
}

// KeyStart handles the start/restart key; it only acts outside gaming.
func (s *Session) KeyStart() error {
	if s.state == StateGaming {
		return nil
	}
	return s.Start()
}

// Resize adopts new canvas metrics and re-lays the round out. Matches are
// kept; an in-progress drag is dropped back to its rest position.
func (s *Session) Resize(m layout.Metrics) {
	if m == s.metrics {
		return
	}
	s.logger.Debugf("resize: %.0fx%.0f css, scale=%.3f dpr=%.2f",
		m.CanvasWidthCSS, m.CanvasHeightCSS, m.ScaleFactor, m.DPR)
	s.metrics = m
	s.drag = Drag{}
	s.relayout()
}

func (s *Session) relayout() {
	var cols []int
	if s.round != nil {
		cols = s.round.Columns
	}
	s.layout = layout.Compute(s.metrics, cols, s.sizes)
	if s.round == nil {
		return
	}
	s.positions = make([]layout.Point, s.round.Size())
	for i := range s.positions {
		if s.matched[i] {
			s.positions[i] = s.layout.SnapPosition(s.round.CorrectPlate(i))
		} else {
			s.positions[i] = s.layout.Tiles[i]
		}
	}
}

// Handle dispatches one pointer event.
func (s *Session) Handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		s.pointerDown(ev.X, ev.Y)
	case PointerMove:
		s.pointerMove(ev.X, ev.Y)
	case PointerUp:
		s.pointerUp()
	case PointerCancel:
		s.cancelDrag()
	}
}

func (s *Session) dev(v float64) float64 { return s.metrics.ToDevice(v) }

func (s *Session) pointerDown(x, y float64) {
	if s.drag.Active {
		return
	}
	// Audio buttons answer in every state, including after completion.
	if s.round != nil {
		for j, b := range s.layout.Buttons {
			c := b.Center()
			if utils.InCircle(x, y, s.dev(c.X), s.dev(c.Y), s.dev(b.Radius())) {
				s.logger.Debugf("audio button %d pressed", j)
				s.cues.Press(j)
				return
			}
		}
	}

	switch s.state {
	case StateStartMenu, StateCompleted:
		r := s.layout.Restart
		if utils.InBox(x, y, s.dev(r.X), s.dev(r.Y), s.dev(r.W), s.dev(r.H)) {
			if err := s.Start(); err != nil {
				s.logger.Errorf("start round: %v", err)
			}
		}
	case StateGaming:
		size := s.dev(s.layout.ImageSize)
		for i := len(s.positions) - 1; i >= 0; i-- {
			if s.matched[i] {
				continue
			}
			p := s.positions[i]
			if utils.InBox(x, y, s.dev(p.X), s.dev(p.Y), size, size) {
				s.drag = Drag{
					Active: true,
					Slot:   i,
					GrabX:  s.metrics.ToCSS(x - s.dev(p.X)),
					GrabY:  s.metrics.ToCSS(y - s.dev(p.Y)),
				}
				s.logger.Debugf("drag slot %d (%s) from %.1f,%.1f", i, s.round.Images[i].Name, p.X, p.Y)
				return
			}
		}
	}
}

func (s *Session) pointerMove(x, y float64) {
	if !s.drag.Active {
		return
	}
	s.positions[s.drag.Slot] = layout.Point{
		X: s.metrics.ToCSS(x) - s.drag.GrabX,
		Y: s.metrics.ToCSS(y) - s.drag.GrabY,
	}
}

func (s *Session) pointerUp() {
	if !s.drag.Active {
		return
	}
	slot := s.drag.Slot
	s.drag = Drag{}

	p := s.positions[slot]
	img, plate := s.layout.ImageSize, s.layout.PlateSize
	for j, pl := range s.layout.Plates {
		if !utils.Overlaps(p.X, p.Y, img, img, pl.X, pl.Y, plate, plate) {
			continue
		}
		if j == s.round.CorrectPlate(slot) {
			s.match(slot, j)
		} else {
			s.logger.Debugf("slot %d dropped on wrong plate %d", slot, j)
			s.positions[slot] = s.layout.Tiles[slot]
			s.cues.PlayFeedback(cue.Wrong)
		}
		return
	}
	s.logger.Debugf("slot %d dropped on empty space", slot)
	s.positions[slot] = s.layout.Tiles[slot]
}

func (s *Session) match(slot, plate int) {
	s.matched[slot] = true
	s.positions[slot] = s.layout.SnapPosition(plate)
	s.logger.Infof("slot %d (%s) matched plate %d", slot, s.round.Images[slot].Name, plate)
	s.cues.PlayFeedback(cue.Correct)
	for _, m := range s.matched {
		if !m {
			return
		}
	}
	s.complete()
}

func (s *Session) complete() {
	if s.state != StateGaming {
		return
	}
	s.state = StateCompleted
	s.logger.Infof("round %s completed", s.round.ID)
	s.cues.PlayFeedback(cue.Complete)
	if s.OnComplete != nil {
		s.OnComplete(s.round.ID)
	}
}

func (s *Session) cancelDrag() {
	if !s.drag.Active {
		return
	}
	s.positions[s.drag.Slot] = s.layout.Tiles[s.drag.Slot]
	s.drag = Drag{}
}
