package scrollbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quarterTrack = Track{Geometry: ComputeGeometry(1000, 4000, 0), Viewport: 1000}

func TestHandleHover(t *testing.T) {
	var s Interaction

	s, effects := s.Handle(Input{Kind: InputEnter}, quarterTrack, false)
	assert.True(t, s.Hover)
	assert.Equal(t, []Effect{{Kind: EffectCursor, Value: CursorGrab}}, effects)
	assert.True(t, s.Visible())

	s, effects = s.Handle(Input{Kind: InputLeave}, quarterTrack, false)
	assert.False(t, s.Hover)
	assert.Equal(t, []Effect{{Kind: EffectCursor, Value: CursorAuto}}, effects)
	assert.False(t, s.Visible())
}

func TestHandlePressIssuesScroll(t *testing.T) {
	s, effects := Interaction{Hover: true}.Handle(Input{Kind: InputDown, Pos: 300}, quarterTrack, false)
	require.True(t, s.Dragging)
	require.Len(t, effects, 4)
	assert.Equal(t, Effect{Kind: EffectUserSelect, Value: "none"}, effects[0])
	assert.Equal(t, Effect{Kind: EffectCursor, Value: CursorGrabbing}, effects[1])
	assert.Equal(t, EffectScroll, effects[2].Kind)
	assert.InDelta(t, 700.0, effects[2].Offset, 1e-9)
	assert.Equal(t, Effect{Kind: EffectAttachMove}, effects[3])
}

func TestHandleMove(t *testing.T) {
	_, effects := Interaction{}.Handle(Input{Kind: InputMove, Pos: 500}, quarterTrack, false)
	assert.Empty(t, effects, "moves outside a drag are ignored")

	_, effects = Interaction{Dragging: true}.Handle(Input{Kind: InputMove, Pos: 500}, quarterTrack, false)
	require.Len(t, effects, 1)
	assert.Equal(t, EffectScroll, effects[0].Kind)
	assert.InDelta(t, 1500.0, effects[0].Offset, 1e-9)
}

func TestHandleLeaveWhileDragging(t *testing.T) {
	s, effects := Interaction{Hover: true, Dragging: true}.Handle(Input{Kind: InputLeave}, quarterTrack, false)
	assert.False(t, s.Hover, "the hover flag clears even during a drag")
	assert.True(t, s.Dragging)
	assert.Empty(t, effects, "the grabbing cursor is kept")
}

func TestHandleRelease(t *testing.T) {
	tests := []struct {
		name    string
		state   Interaction
		touch   bool
		want    Interaction
		effects []Effect
	}{
		{
			name:  "over container",
			state: Interaction{Hover: true, Dragging: true},
			want:  Interaction{Hover: true},
			effects: []Effect{
				{Kind: EffectDetachMove},
				{Kind: EffectUserSelect, Value: "auto"},
				{Kind: EffectCursor, Value: CursorGrab},
			},
		},
		{
			name:  "outside container",
			state: Interaction{Dragging: true},
			want:  Interaction{},
			effects: []Effect{
				{Kind: EffectDetachMove},
				{Kind: EffectUserSelect, Value: "auto"},
				{Kind: EffectCursor, Value: CursorAuto},
			},
		},
		{
			name:    "touch host skips cursor reset",
			state:   Interaction{Hover: true, Dragging: true},
			touch:   true,
			want:    Interaction{Hover: true},
			effects: []Effect{{Kind: EffectDetachMove}},
		},
		{
			name:    "stray release",
			state:   Interaction{Hover: true},
			want:    Interaction{Hover: true},
			effects: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := tt.state.Handle(Input{Kind: InputUp}, quarterTrack, tt.touch)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.effects, effects)
		})
	}
}

func TestObserve(t *testing.T) {
	var s Interaction

	s, moved := s.Observe(375)
	assert.False(t, moved, "a zero previous offset never counts as motion")
	assert.Equal(t, 375.0, s.PrevTranslate)

	s, moved = s.Observe(375)
	assert.False(t, moved)
	assert.False(t, s.Moving)

	s, moved = s.Observe(380)
	assert.True(t, moved)
	assert.True(t, s.Moving)
	assert.True(t, s.Visible())

	s = s.Settle()
	assert.False(t, s.Moving)
	assert.False(t, s.Visible())
	assert.Equal(t, 380.0, s.PrevTranslate)
}

func TestVisibleTruthTable(t *testing.T) {
	for _, hover := range []bool{false, true} {
		for _, dragging := range []bool{false, true} {
			for _, moving := range []bool{false, true} {
				s := Interaction{Hover: hover, Dragging: dragging, Moving: moving}
				assert.Equal(t, hover || dragging || moving, s.Visible())
			}
		}
	}
}
