// Package smooth eases a viewport towards a scroll target over successive
// frames.
package smooth

import (
	"math"
	"sync"

	"github.com/chrisuehlinger/vibescroll/scrollbar"
)

// DefaultLerp is the fraction of the remaining distance covered per frame.
const DefaultLerp = 0.1

// settleDistance is the distance below which the scroller snaps to its
// target.
const settleDistance = 0.5

// Viewport is the surface being scrolled.
type Viewport interface {
	ScrollX() float64
	ScrollY() float64
	ScrollTo(x, y float64)
}

// Scroller is a scrollbar.ScrollDelegate that animates towards the last
// requested offset. Call Step once per frame.
type Scroller struct {
	mu        sync.Mutex
	viewport  Viewport
	dir       scrollbar.Direction
	lerp      float64
	target    float64
	animating bool
}

var _ scrollbar.ScrollDelegate = (*Scroller)(nil)

// New creates a scroller along dir. A lerp outside (0, 1] uses DefaultLerp.
func New(v Viewport, dir scrollbar.Direction, lerp float64) *Scroller {
	if lerp <= 0 || lerp > 1 {
		lerp = DefaultLerp
	}
	return &Scroller{viewport: v, dir: dir, lerp: lerp}
}

// ScrollTo sets the target offset. Motion happens in Step.
func (s *Scroller) ScrollTo(offset float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = offset
	s.animating = true
}

// Animating reports whether the scroller is still moving.
func (s *Scroller) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animating
}

// Target returns the last requested offset.
func (s *Scroller) Target() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Step moves the viewport one frame closer to the target and reports
// whether more frames are needed.
func (s *Scroller) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.animating {
		return false
	}

	current := s.current()
	next := current + (s.target-current)*s.lerp
	if math.Abs(s.target-next) < settleDistance {
		next = s.target
		s.animating = false
	}
	s.apply(next)

	// The viewport clamps; stop chasing a target it cannot reach.
	if s.animating && s.current() == current {
		s.animating = false
	}
	return s.animating
}

// Stop abandons the current animation where it is.
func (s *Scroller) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animating = false
	s.target = s.current()
}

func (s *Scroller) current() float64 {
	if s.dir == scrollbar.Horizontal {
		return s.viewport.ScrollX()
	}
	return s.viewport.ScrollY()
}

func (s *Scroller) apply(offset float64) {
	if s.dir == scrollbar.Horizontal {
		s.viewport.ScrollTo(offset, s.viewport.ScrollY())
		return
	}
	s.viewport.ScrollTo(s.viewport.ScrollX(), offset)
}
