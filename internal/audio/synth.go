package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// note is one tone of a synthesized jingle.
type note struct {
	freq float64
	dur  time.Duration
}

// jingles stand in for missing feedback files.
var jingles = map[string][]note{
	"correct":  {{660, 90 * time.Millisecond}, {880, 140 * time.Millisecond}},
	"wrong":    {{220, 120 * time.Millisecond}, {165, 200 * time.Millisecond}},
	"complete": {{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 120 * time.Millisecond}, {1047, 260 * time.Millisecond}},
}

// Jingle builds the synthesized stand-in for a feedback key.
func Jingle(key string) (beep.Streamer, error) {
	notes, ok := jingles[key]
	if !ok {
		return nil, fmt.Errorf("audio: no jingle for %q", key)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("audio: tone %.0f Hz: %w", n.freq, err)
		}
		// Sine tones run at full scale; -2 halves the level twice.
		quiet := &effects.Volume{Streamer: tone, Base: 2, Volume: -2}
		parts = append(parts, beep.Take(sampleRate.N(n.dur), quiet))
	}
	return beep.Seq(parts...), nil
}

// RegisterJingles registers a synthesized clip for every feedback key that
// has no clip yet.
func (e *Engine) RegisterJingles() error {
	for key := range jingles {
		if e.Has(key) {
			continue
		}
		s, err := Jingle(key)
		if err != nil {
			return err
		}
		if err := e.Register(key, s, OutputFormat); err != nil {
			return err
		}
		e.logger.Debugf("feedback %s synthesized", key)
	}
	return nil
}
