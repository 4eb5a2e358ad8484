package model

import "fmt"

// Round is one playthrough: n image slots, n plates and n audio buttons.
// Plate j and audio button j both belong to Audios[j].
type Round struct {
	ID string

	Images       []Item // image slot order
	Audios       []Item // plate and audio-button order
	ImageToAudio []int  // image slot -> plate/audio index
	Columns      []int  // image slot -> display column on the top row
}

func (r *Round) Size() int { return len(r.Images) }

// CorrectPlate returns the plate index image slot i must be dropped on.
func (r *Round) CorrectPlate(i int) int { return r.ImageToAudio[i] }

// Validate checks that ImageToAudio is a bijection that pairs equal items
// and that Columns is a permutation.
func (r *Round) Validate() error {
	n := len(r.Images)
	if len(r.Audios) != n || len(r.ImageToAudio) != n || len(r.Columns) != n {
		return fmt.Errorf("round %s: inconsistent sizes images=%d audios=%d map=%d columns=%d",
			r.ID, n, len(r.Audios), len(r.ImageToAudio), len(r.Columns))
	}
	if err := checkPermutation("map", r.ImageToAudio); err != nil {
		return fmt.Errorf("round %s: %w", r.ID, err)
	}
	if err := checkPermutation("columns", r.Columns); err != nil {
		return fmt.Errorf("round %s: %w", r.ID, err)
	}
	for i, j := range r.ImageToAudio {
		if r.Audios[j].ID != r.Images[i].ID {
			return fmt.Errorf("round %s: slot %d (%s) mapped to cue %s",
				r.ID, i, r.Images[i].Name, r.Audios[j].Name)
		}
	}
	return nil
}

func checkPermutation(what string, p []int) error {
	seen := make([]bool, len(p))
	for i, v := range p {
		if v < 0 || v >= len(p) {
			return fmt.Errorf("%s[%d]=%d out of range", what, i, v)
		}
		if seen[v] {
			return fmt.Errorf("%s: %d used twice", what, v)
		}
		seen[v] = true
	}
	return nil
}
