package cue

import (
	"time"

	"github.com/ingyamilmolinar/foodmatch/core/model"
	"github.com/ingyamilmolinar/foodmatch/core/timer"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
)

// Handle identifies one started clip instance.
type Handle uint64

// Player starts clips by asset key. The end of every started clip must later
// be reported back through Controller.Finished on the game loop.
type Player interface {
	Has(id string) bool
	Play(id string) (Handle, error)
}

// Feedback is a non-exclusive effect sound.
type Feedback int

const (
	Correct Feedback = iota
	Wrong
	Complete
)

// Key is the asset key of the effect.
func (f Feedback) Key() string {
	switch f {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// HighlightDuration is how long a pressed button stays highlighted even if
// its clip is shorter or missing.
const HighlightDuration = time.Second

// Controller enforces that at most one identifying cue plays at a time.
// Feedback sounds bypass it.
type Controller struct {
	Enabled bool

	player Player
	timers *timer.Scheduler
	logger *game_log.Logger

	cues []string // audio button -> clip key

	playing    bool
	playingBtn int
	handle     Handle

	highlight    int
	highlightGen uint64
}

func NewController(p Player, timers *timer.Scheduler, logger *game_log.Logger) *Controller {
	return &Controller{
		Enabled:    true,
		player:     p,
		timers:     timers,
		logger:     logger.Tagged("CUE"),
		playingBtn: -1,
		highlight:  -1,
	}
}

// SetCues installs the clip keys for a new round's audio buttons and drops
// pending highlight timers. A cue still playing from the previous round
// keeps the mutex until it ends.
func (c *Controller) SetCues(keys []string) {
	c.timers.Reset()
	c.cues = append(c.cues[:0], keys...)
	c.playingBtn = -1
	c.highlight = -1
	c.highlightGen++
}

// Press handles a click on audio button i and reports whether a clip
// started. Presses while another cue plays are ignored.
func (c *Controller) Press(i int) bool {
	if !c.Enabled || i < 0 || i >= len(c.cues) {
		return false
	}
	if c.playing {
		c.logger.Debugf("button %d ignored, button %d still playing", i, c.playingBtn)
		return false
	}

	c.highlight = i
	c.highlightGen++
	gen := c.highlightGen
	c.timers.After(HighlightDuration, func() {
		if c.highlightGen == gen {
			c.highlight = -1
		}
	})

	key := c.cues[i]
	if !c.player.Has(key) {
		c.logger.Debugf("button %d: %s not loaded, staying silent", i, key)
		return false
	}
	h, err := c.player.Play(key)
	if err != nil {
		c.logger.Warnf("%v", &model.PlaybackError{ID: key, Err: err})
		return false
	}
	c.playing = true
	c.playingBtn = i
	c.handle = h
	c.logger.Debugf("button %d: playing %s (handle %d)", i, key, h)
	return true
}

// Finished releases the mutex when h is the cue holding it. Notifications
// for feedback sounds or superseded clips are ignored.
func (c *Controller) Finished(h Handle, err error) {
	if !c.playing || h != c.handle {
		return
	}
	if err != nil {
		c.logger.Warnf("%v", &model.PlaybackError{ID: c.currentKey(), Err: err})
	}
	c.logger.Debugf("handle %d finished", h)
	c.playing = false
	c.playingBtn = -1
}

func (c *Controller) currentKey() string {
	if c.playingBtn >= 0 && c.playingBtn < len(c.cues) {
		return c.cues[c.playingBtn]
	}
	return "cue"
}

// PlayFeedback starts an independent instance of an effect sound.
func (c *Controller) PlayFeedback(f Feedback) {
	if !c.Enabled {
		return
	}
	key := f.Key()
	if !c.player.Has(key) {
		return
	}
	if _, err := c.player.Play(key); err != nil {
		c.logger.Warnf("%v", &model.PlaybackError{ID: key, Err: err})
	}
}

// Playing reports whether an identifying cue holds the mutex.
func (c *Controller) Playing() bool { return c.playing }

// Highlighted reports whether button i is the pressed or playing one.
func (c *Controller) Highlighted(i int) bool {
	return i == c.highlight || (c.playing && i == c.playingBtn)
}

// Dimmed reports whether button i is greyed out because another cue plays.
func (c *Controller) Dimmed(i int) bool {
	return c.playing && i != c.playingBtn
}
