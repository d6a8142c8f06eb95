package scrollbar

// Cursor values written to the host body while the pointer interacts with
// the scrollbar.
const (
	CursorAuto     = "auto"
	CursorGrab     = "grab"
	CursorGrabbing = "grabbing"
)

// InputKind enumerates the pointer transitions the state machine reacts
// to.
type InputKind int

const (
	InputEnter InputKind = iota
	InputLeave
	InputDown
	InputMove
	InputUp
)

func (k InputKind) String() string {
	switch k {
	case InputEnter:
		return "enter"
	case InputLeave:
		return "leave"
	case InputDown:
		return "down"
	case InputMove:
		return "move"
	case InputUp:
		return "up"
	}
	return "unknown"
}

// Input is a pointer transition. Pos is the pointer coordinate on the
// scroll axis and only matters for InputDown and InputMove.
type Input struct {
	Kind InputKind
	Pos  float64
}

// EffectKind enumerates the host side effects a transition can request.
type EffectKind int

const (
	// EffectCursor sets the body cursor to Effect.Value.
	EffectCursor EffectKind = iota
	// EffectUserSelect sets the body user-select to Effect.Value.
	EffectUserSelect
	// EffectScroll scrolls to Effect.Offset.
	EffectScroll
	// EffectAttachMove subscribes to window-wide pointer moves.
	EffectAttachMove
	// EffectDetachMove drops the window-wide move subscription.
	EffectDetachMove
)

// Effect is one host side effect, applied in order.
type Effect struct {
	Kind   EffectKind
	Value  string
	Offset float64
}

// Interaction is the pointer and motion state of a scrollbar. Hover and
// Dragging are independent: releasing the button while still over the
// container leaves Hover set.
type Interaction struct {
	Hover    bool
	Dragging bool
	Moving   bool

	// PrevTranslate is the thumb offset applied on the previous frame.
	PrevTranslate float64
}

// Visible reports whether the scrollbar should be shown.
func (s Interaction) Visible() bool {
	return s.Hover || s.Dragging || s.Moving
}

// Handle applies a pointer transition and returns the next state together
// with the effects the host must perform. touch reports a touch-capable
// host, where the cursor and selection reset on release is skipped.
func (s Interaction) Handle(in Input, track Track, touch bool) (Interaction, []Effect) {
	switch in.Kind {
	case InputEnter:
		s.Hover = true
		return s, []Effect{{Kind: EffectCursor, Value: CursorGrab}}

	case InputLeave:
		s.Hover = false
		if s.Dragging {
			return s, nil
		}
		return s, []Effect{{Kind: EffectCursor, Value: CursorAuto}}

	case InputDown:
		s.Dragging = true
		return s, []Effect{
			{Kind: EffectUserSelect, Value: "none"},
			{Kind: EffectCursor, Value: CursorGrabbing},
			{Kind: EffectScroll, Offset: track.ScrollTarget(in.Pos)},
			{Kind: EffectAttachMove},
		}

	case InputMove:
		if !s.Dragging {
			return s, nil
		}
		return s, []Effect{{Kind: EffectScroll, Offset: track.ScrollTarget(in.Pos)}}

	case InputUp:
		if !s.Dragging {
			return s, nil
		}
		s.Dragging = false
		effects := []Effect{{Kind: EffectDetachMove}}
		if touch {
			return s, effects
		}
		cursor := CursorAuto
		if s.Hover {
			cursor = CursorGrab
		}
		return s, append(effects,
			Effect{Kind: EffectUserSelect, Value: "auto"},
			Effect{Kind: EffectCursor, Value: cursor},
		)
	}
	return s, nil
}

// Observe records the thumb offset of a new frame. It reports whether the
// thumb moved, in which case Moving is set and the caller must (re)arm the
// fade-out. A previous offset of exactly zero never counts as motion, so
// the first frame after construction does not flash the scrollbar.
func (s Interaction) Observe(translate float64) (Interaction, bool) {
	moved := translate != s.PrevTranslate && s.PrevTranslate != 0
	if moved {
		s.Moving = true
	}
	s.PrevTranslate = translate
	return s, moved
}

// Settle clears the motion flag once the fade-out delay has elapsed.
func (s Interaction) Settle() Interaction {
	s.Moving = false
	return s
}
