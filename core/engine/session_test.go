package engine

import (
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/ingyamilmolinar/foodmatch/core/cue"
	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/core/model"
	"github.com/ingyamilmolinar/foodmatch/core/timer"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

var testLogger = game_log.New(os.Stdout, game_log.LevelError)

// scriptedSource deals the same hand-built round every time.
type scriptedSource struct {
	dealt int
	build func() *model.Round
}

func (s *scriptedSource) NewRound() (*model.Round, error) {
	s.dealt++
	r := s.build()
	r.ID = fmt.Sprintf("round-%d", s.dealt)
	return r, r.Validate()
}

// Slot 0 belongs on plate 2, slots 1 and 2 shift left onto plates 0 and 1.
func plateTwoRound() *model.Round {
	c := model.DefaultCatalog()
	return &model.Round{
		Images:       []model.Item{c[0], c[1], c[2], c[3], c[4]},
		Audios:       []model.Item{c[1], c[2], c[0], c[3], c[4]},
		ImageToAudio: []int{2, 0, 1, 3, 4},
		Columns:      []int{0, 1, 2, 3, 4},
	}
}

type recordingPlayer struct {
	started []string
	next    cue.Handle
}

func (p *recordingPlayer) Has(string) bool { return true }

func (p *recordingPlayer) Play(id string) (cue.Handle, error) {
	p.next++
	p.started = append(p.started, id)
	return p.next, nil
}

func (p *recordingPlayer) count(id string) int {
	n := 0
	for _, s := range p.started {
		if s == id {
			n++
		}
	}
	return n
}

type fixture struct {
	s      *Session
	player *recordingPlayer
	cues   *cue.Controller
	src    *scriptedSource
	done   []string
}

func newFixture(t *testing.T, dpr float64, cfg Config) *fixture {
	t.Helper()
	if cfg.Sizes == (layout.Sizes{}) {
		cfg.Sizes = layout.DefaultSizes()
	}
	f := &fixture{player: &recordingPlayer{}, src: &scriptedSource{build: plateTwoRound}}
	ts := timer.NewScheduler()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.SetNowFunc(func() time.Time { return now })
	f.cues = cue.NewController(f.player, ts, testLogger)
	m := layout.ComputeScale(layout.Viewport{Width: 1200, Height: 800, DPR: dpr}, layout.DefaultScaleConfig())
	s, err := NewSession(f.src, f.cues, m, cfg, testLogger)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.OnComplete = func(id string) { f.done = append(f.done, id) }
	f.s = s
	return f
}

// device converts a CSS coordinate into the event space.
func (f *fixture) device(x, y float64) (float64, float64) {
	m := f.s.Metrics()
	return m.ToDevice(x), m.ToDevice(y)
}

// grab presses the middle of slot i's tile.
func (f *fixture) grab(i int) {
	l := f.s.Layout()
	p := f.s.Position(i)
	x, y := f.device(p.X+l.ImageSize/2, p.Y+l.ImageSize/2)
	f.s.Handle(PointerEvent{Kind: PointerDown, X: x, Y: y})
}

// dropAt moves the grabbed tile so its origin lands on (cx,cy) and releases.
func (f *fixture) dropAt(cx, cy float64) {
	l := f.s.Layout()
	x, y := f.device(cx+l.ImageSize/2, cy+l.ImageSize/2)
	f.s.Handle(PointerEvent{Kind: PointerMove, X: x, Y: y})
	f.s.Handle(PointerEvent{Kind: PointerUp, X: x, Y: y})
}

func (f *fixture) dropOnPlate(slot, plate int) {
	f.grab(slot)
	p := f.s.Layout().Plates[plate]
	f.dropAt(p.X, p.Y)
}

func TestDropOnCorrectPlateMatches(t *testing.T) {
	f := newFixture(t, 1, Config{})
	f.dropOnPlate(0, 2)

	if got := f.s.Matches(); !reflect.DeepEqual(got, []bool{true, false, false, false, false}) {
		t.Fatalf("matches=%v", got)
	}
	want := f.s.Layout().SnapPosition(2)
	if f.s.Position(0) != want {
		t.Fatalf("slot 0 at %v want snapped %v", f.s.Position(0), want)
	}
	if f.player.count("correct") != 1 {
		t.Fatalf("correct cue count=%d", f.player.count("correct"))
	}
	if f.s.Drag().Active {
		t.Fatalf("drag still active after release")
	}
}

func TestMatchedSlotCannotBeDraggedAgain(t *testing.T) {
	f := newFixture(t, 1, Config{})
	f.dropOnPlate(0, 2)
	snapped := f.s.Position(0)

	f.grab(0)
	if f.s.Drag().Active {
		t.Fatalf("matched slot picked up again")
	}
	f.dropAt(0, 0)
	if f.s.Position(0) != snapped || !f.s.Matches()[0] {
		t.Fatalf("matched slot moved or reverted")
	}
}

func TestDropOnWrongPlateSnapsBack(t *testing.T) {
	f := newFixture(t, 1, Config{})
	rest := f.s.Layout().Tiles[0]

	for attempt := 1; attempt <= 2; attempt++ {
		f.dropOnPlate(0, 3)
		if f.s.Position(0) != rest {
			t.Fatalf("attempt %d: slot 0 at %v want %v", attempt, f.s.Position(0), rest)
		}
		if f.s.Matches()[0] {
			t.Fatalf("attempt %d: wrong plate matched", attempt)
		}
		if f.player.count("wrong") != attempt {
			t.Fatalf("attempt %d: wrong cue count=%d", attempt, f.player.count("wrong"))
		}
	}
}

func TestDropOnEmptySpaceIsSilent(t *testing.T) {
	f := newFixture(t, 1, Config{})
	rest := f.s.Layout().Tiles[1]
	f.grab(1)
	f.dropAt(600, 250) // between the rows, clear of every plate
	if f.s.Position(1) != rest {
		t.Fatalf("slot 1 at %v want %v", f.s.Position(1), rest)
	}
	if len(f.player.started) != 0 {
		t.Fatalf("cues played for an empty drop: %v", f.player.started)
	}
}

func TestMoveKeepsGrabOffset(t *testing.T) {
	f := newFixture(t, 1, Config{})
	p := f.s.Position(2)
	f.s.Handle(PointerEvent{Kind: PointerDown, X: p.X + 10, Y: p.Y + 20})
	f.s.Handle(PointerEvent{Kind: PointerMove, X: p.X + 110, Y: p.Y + 70})
	got := f.s.Position(2)
	if got.X != p.X+100 || got.Y != p.Y+50 {
		t.Fatalf("tile jumped: %v from %v", got, p)
	}
}

func TestCompletionFiresOnceOnLastMatch(t *testing.T) {
	f := newFixture(t, 1, Config{})
	r := f.s.Round()
	for i := 0; i < r.Size(); i++ {
		if len(f.done) != 0 {
			t.Fatalf("completed after %d matches", i)
		}
		f.dropOnPlate(i, r.CorrectPlate(i))
	}
	if len(f.done) != 1 || f.done[0] != r.ID {
		t.Fatalf("completion signals=%v", f.done)
	}
	if f.s.State() != StateCompleted {
		t.Fatalf("state=%v", f.s.State())
	}
	if f.player.count("complete") != 1 {
		t.Fatalf("complete cue count=%d", f.player.count("complete"))
	}

	// Nothing can be dragged any more, so nothing can fire again.
	f.dropOnPlate(0, 2)
	if len(f.done) != 1 || f.player.count("complete") != 1 {
		t.Fatalf("completion fired again")
	}
}

func TestAudioButtonsClickableAfterCompletion(t *testing.T) {
	f := newFixture(t, 1, Config{})
	r := f.s.Round()
	for i := 0; i < r.Size(); i++ {
		f.dropOnPlate(i, r.CorrectPlate(i))
	}
	c := f.s.Layout().Buttons[4].Center()
	f.s.Handle(PointerEvent{Kind: PointerDown, X: c.X, Y: c.Y})
	if f.player.count(r.Audios[4].AudioKey()) != 1 {
		t.Fatalf("audio button ignored after completion: %v", f.player.started)
	}
}

func TestAudioButtonBeatsTileAndStartsNoDrag(t *testing.T) {
	f := newFixture(t, 1, Config{})
	b := f.s.Layout().Buttons[1]
	c := b.Center()
	f.s.Handle(PointerEvent{Kind: PointerDown, X: c.X + b.Radius() - 0.5, Y: c.Y})
	if f.s.Drag().Active {
		t.Fatalf("button press started a drag")
	}
	if f.player.count(f.s.Round().Audios[1].AudioKey()) != 1 {
		t.Fatalf("button cue not played: %v", f.player.started)
	}
	// Just outside the circle but inside its bounding box.
	f.s.Handle(PointerEvent{Kind: PointerDown, X: b.X + 1, Y: b.Y + 1})
	if len(f.player.started) != 1 {
		t.Fatalf("corner of bounding box counted as a hit")
	}
}

func TestHighDPRHitTesting(t *testing.T) {
	f := newFixture(t, 2, Config{})
	m := f.s.Metrics()
	if m.CanvasWidthDevice != 2400 {
		t.Fatalf("device width=%d", m.CanvasWidthDevice)
	}
	// A press at the CSS coordinate (not scaled) of tile 4 lands on empty
	// canvas in device space.
	p := f.s.Position(4)
	f.s.Handle(PointerEvent{Kind: PointerDown, X: p.X + 5, Y: p.Y + 5})
	if f.s.Drag().Active {
		t.Fatalf("unscaled coordinates hit a tile at dpr=2")
	}
	f.dropOnPlate(0, 2)
	if !f.s.Matches()[0] {
		t.Fatalf("device-space drop did not match")
	}
	if f.s.Position(0) != f.s.Layout().SnapPosition(2) {
		t.Fatalf("position stored in device units: %v", f.s.Position(0))
	}
}

func TestResizeKeepsMatches(t *testing.T) {
	f := newFixture(t, 1, Config{})
	f.dropOnPlate(0, 2)
	f.grab(1)

	m := layout.ComputeScale(layout.Viewport{Width: 600, Height: 400, DPR: 2}, layout.DefaultScaleConfig())
	f.s.Resize(m)

	if !f.s.Matches()[0] {
		t.Fatalf("resize dropped a match")
	}
	if f.s.Drag().Active {
		t.Fatalf("resize left a drag active")
	}
	l := f.s.Layout()
	if l.ImageSize != 75 {
		t.Fatalf("image size after resize=%f", l.ImageSize)
	}
	if f.s.Position(0) != l.SnapPosition(2) || f.s.Position(1) != l.Tiles[1] {
		t.Fatalf("positions not re-laid out: %v %v", f.s.Position(0), f.s.Position(1))
	}
}

func TestRestartResetsEverything(t *testing.T) {
	f := newFixture(t, 1, Config{})
	r := f.s.Round()
	for i := 0; i < r.Size(); i++ {
		f.dropOnPlate(i, r.CorrectPlate(i))
	}
	first := r.ID

	rr := f.s.Layout().Restart
	f.s.Handle(PointerEvent{Kind: PointerDown, X: rr.X + rr.W/2, Y: rr.Y + rr.H/2})
	if f.s.State() != StateGaming || f.s.Round().ID == first {
		t.Fatalf("restart control did not deal a new round: state=%v", f.s.State())
	}
	for i, m := range f.s.Matches() {
		if m || f.s.Position(i) != f.s.Layout().Tiles[i] {
			t.Fatalf("slot %d not reset", i)
		}
	}
	// A second completion signals again for the new round.
	r = f.s.Round()
	for i := 0; i < r.Size(); i++ {
		f.dropOnPlate(i, r.CorrectPlate(i))
	}
	if len(f.done) != 2 {
		t.Fatalf("completion signals=%v", f.done)
	}
}

func TestStartMenuAndKeyStart(t *testing.T) {
	f := newFixture(t, 1, Config{StartInMenu: true})
	if f.s.State() != StateStartMenu || f.s.Round() != nil {
		t.Fatalf("expected start menu without a round")
	}
	if f.s.Tiles() != nil || f.s.Buttons() != nil {
		t.Fatalf("views should be empty before the first round")
	}
	if err := f.s.KeyStart(); err != nil {
		t.Fatalf("KeyStart: %v", err)
	}
	if f.s.State() != StateGaming || f.src.dealt != 1 {
		t.Fatalf("state=%v dealt=%d", f.s.State(), f.src.dealt)
	}
	if err := f.s.KeyStart(); err != nil || f.src.dealt != 1 {
		t.Fatalf("KeyStart during play should be ignored (dealt=%d)", f.src.dealt)
	}
}

func TestCancelReturnsTileSilently(t *testing.T) {
	f := newFixture(t, 1, Config{})
	f.grab(3)
	f.s.Handle(PointerEvent{Kind: PointerMove, X: 10, Y: 10})
	f.s.Handle(PointerEvent{Kind: PointerCancel})
	if f.s.Position(3) != f.s.Layout().Tiles[3] || f.s.Drag().Active {
		t.Fatalf("cancel left tile at %v", f.s.Position(3))
	}
	if len(f.player.started) != 0 {
		t.Fatalf("cancel played %v", f.player.started)
	}
}

func TestTilesDrawOrderPutsDraggedLast(t *testing.T) {
	f := newFixture(t, 1, Config{})
	f.dropOnPlate(0, 2)
	f.grab(1)
	tiles := f.s.Tiles()
	if len(tiles) != 5 {
		t.Fatalf("tiles=%d", len(tiles))
	}
	last := tiles[len(tiles)-1]
	if last.Slot != 1 || !last.Dragging {
		t.Fatalf("dragged tile not on top: %+v", last)
	}
	if tiles[len(tiles)-2].Slot != 0 || !tiles[len(tiles)-2].Matched {
		t.Fatalf("matched tile should draw above resting tiles: %+v", tiles)
	}
}

func TestButtonViewsReflectMutex(t *testing.T) {
	f := newFixture(t, 1, Config{})
	c := f.s.Layout().Buttons[2].Center()
	f.s.Handle(PointerEvent{Kind: PointerDown, X: c.X, Y: c.Y})
	bs := f.s.Buttons()
	if !bs[2].Highlighted || bs[2].Dimmed {
		t.Fatalf("playing button view=%+v", bs[2])
	}
	if !bs[0].Dimmed || bs[0].Highlighted {
		t.Fatalf("other button view=%+v", bs[0])
	}
	f.cues.Finished(1, nil)
	if f.s.Buttons()[0].Dimmed {
		t.Fatalf("buttons still dimmed after the cue ended")
	}
}
