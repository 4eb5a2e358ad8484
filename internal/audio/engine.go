package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/ingyamilmolinar/foodmatch/core/cue"
	game_log "github.com/ingyamilmolinar/foodmatch/internal/log"
	"github.com/ingyamilmolinar/foodmatch/internal/utils"
)

const (
	sampleRate = beep.SampleRate(44100)
	// resampleQuality is passed to beep.Resample; 4 is the library's
	// recommended default.
	resampleQuality = 4
)

// OutputFormat is the format every registered clip is stored in.
var OutputFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// ErrNotInitialized is returned by Play before Init succeeded.
var ErrNotInitialized = errors.New("audio: output device not initialized")

var (
	// speaker hooks, replaced in tests so no device is opened.
	speakerInit   = speaker.Init
	speakerPlay   = speaker.Play
	speakerLock   = speaker.Lock
	speakerUnlock = speaker.Unlock
	speakerClose  = speaker.Close
)

// Completion reports that the instance started under Handle stopped.
type Completion struct {
	Handle cue.Handle
	Err    error
}

// Engine keeps decoded clips in memory and mixes any number of concurrent
// instances into one output stream. It satisfies cue.Player.
type Engine struct {
	logger *game_log.Logger

	mu          sync.Mutex
	clips       map[string]*beep.Buffer
	next        cue.Handle
	initialized bool

	mixer  *beep.Mixer
	volume *effects.Volume

	doneMu sync.Mutex
	done   []Completion
}

// NewEngine creates an engine with master volume v in [0,1].
func NewEngine(v float64, logger *game_log.Logger) *Engine {
	e := &Engine{
		logger: logger.Tagged("AUDIO"),
		clips:  map[string]*beep.Buffer{},
		mixer:  &beep.Mixer{},
	}
	e.volume = &effects.Volume{Streamer: e.mixer, Base: 2}
	setGain(e.volume, v)
	return e
}

// Init opens the output device. Calling it again is a no-op.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		return nil
	}
	if err := speakerInit(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speakerPlay(e.volume)
	e.initialized = true
	e.logger.Infof("output ready at %d Hz", sampleRate)
	return nil
}

// Close silences every instance and releases the device.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	speakerLock()
	e.mixer.Clear()
	speakerUnlock()
	speakerClose()
	e.initialized = false
}

// SetVolume changes the master volume for everything already playing and
// everything started later.
func (e *Engine) SetVolume(v float64) {
	e.lock()
	setGain(e.volume, v)
	e.unlock()
}

func setGain(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		vol.Volume = 0
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(utils.Clamp(v, 0, 1))
}

// Register buffers s under id, resampling to the output rate.
func (e *Engine) Register(id string, s beep.Streamer, f beep.Format) error {
	if f.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, f.SampleRate, sampleRate, s)
	}
	buf := beep.NewBuffer(OutputFormat)
	buf.Append(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("audio: decode %s: %w", id, err)
	}
	e.mu.Lock()
	e.clips[id] = buf
	e.mu.Unlock()
	e.logger.Debugf("registered %s (%d samples)", id, buf.Len())
	return nil
}

// Decode reads an mp3 or wav stream, chosen by the extension of name, and
// registers it under id. r is closed.
func (e *Engine) Decode(id, name string, r io.ReadCloser) error {
	var (
		s   beep.StreamSeekCloser
		f   beep.Format
		err error
	)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".mp3":
		s, f, err = mp3.Decode(r)
	case ".wav":
		s, f, err = wav.Decode(r)
	default:
		r.Close()
		return fmt.Errorf("audio: %s: unsupported format %q", name, ext)
	}
	if err != nil {
		r.Close()
		return fmt.Errorf("audio: decode %s: %w", name, err)
	}
	defer s.Close()
	return e.Register(id, s, f)
}

// Has reports whether a clip is registered under id.
func (e *Engine) Has(id string) bool {
	e.mu.Lock()
	_, ok := e.clips[id]
	e.mu.Unlock()
	return ok
}

// Play starts a fresh instance of clip id. Each call gets its own playback
// position, so overlapping calls never cut each other off.
func (e *Engine) Play(id string) (cue.Handle, error) {
	e.mu.Lock()
	buf, ok := e.clips[id]
	ready := e.initialized
	if ok && ready {
		e.next++
	}
	h := e.next
	e.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("audio: no clip %q", id)
	}
	if !ready {
		return 0, ErrNotInitialized
	}

	inst := beep.Seq(buf.Streamer(0, buf.Len()), beep.Callback(func() {
		e.finish(Completion{Handle: h})
	}))
	e.lock()
	e.mixer.Add(inst)
	e.unlock()
	return h, nil
}

// finish runs on the output goroutine while the speaker lock is held, so it
// only takes doneMu and never e.mu.
func (e *Engine) finish(c Completion) {
	e.doneMu.Lock()
	e.done = append(e.done, c)
	e.doneMu.Unlock()
}

// Finished drains every completion reported since the last call. The game
// loop forwards these to the cue controller.
func (e *Engine) Finished() []Completion {
	e.doneMu.Lock()
	defer e.doneMu.Unlock()
	out := e.done
	e.done = nil
	return out
}

// lock guards the mixer against the output goroutine once it runs.
func (e *Engine) lock() {
	e.mu.Lock()
	if e.initialized {
		speakerLock()
	}
}

func (e *Engine) unlock() {
	if e.initialized {
		speakerUnlock()
	}
	e.mu.Unlock()
}
