package engine

import (
	"github.com/ingyamilmolinar/foodmatch/core/layout"
	"github.com/ingyamilmolinar/foodmatch/core/model"
)

// TileView is the render data for one image slot.
type TileView struct {
	Slot     int
	Item     model.Item
	Pos      layout.Point
	Matched  bool
	Dragging bool
}

// ButtonView is the render data for one audio button.
type ButtonView struct {
	Circle      layout.Circle
	Highlighted bool
	Dimmed      bool
}

func (s *Session) State() State                { return s.state }
func (s *Session) Round() *model.Round         { return s.round }
func (s *Session) Layout() layout.Layout       { return s.layout }
func (s *Session) Metrics() layout.Metrics     { return s.metrics }
func (s *Session) Drag() Drag                  { return s.drag }
func (s *Session) Completed() bool             { return s.state == StateCompleted }
func (s *Session) Position(i int) layout.Point { return s.positions[i] }

// Matches returns a copy of the per-slot match vector.
func (s *Session) Matches() []bool {
	return append([]bool(nil), s.matched...)
}

// Tiles lists slots in draw order: resting tiles, then matched ones, then
// the dragged tile on top.
func (s *Session) Tiles() []TileView {
	if s.round == nil {
		return nil
	}
	out := make([]TileView, 0, len(s.positions))
	add := func(i int) {
		out = append(out, TileView{
			Slot:     i,
			Item:     s.round.Images[i],
			Pos:      s.positions[i],
			Matched:  s.matched[i],
			Dragging: s.drag.Active && s.drag.Slot == i,
		})
	}
	for i := range s.positions {
		if !s.matched[i] && !(s.drag.Active && s.drag.Slot == i) {
			add(i)
		}
	}
	for i := range s.positions {
		if s.matched[i] {
			add(i)
		}
	}
	if s.drag.Active {
		add(s.drag.Slot)
	}
	return out
}

// Buttons lists the audio buttons in plate order.
func (s *Session) Buttons() []ButtonView {
	if s.round == nil {
		return nil
	}
	out := make([]ButtonView, len(s.layout.Buttons))
	for j, b := range s.layout.Buttons {
		out[j] = ButtonView{
			Circle:      b,
			Highlighted: s.cues.Highlighted(j),
			Dimmed:      s.cues.Dimmed(j),
		}
	}
	return out
}
