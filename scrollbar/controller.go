package scrollbar

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/chrisuehlinger/vibescroll/clock"
)

// Controller synchronises a thumb element with a host viewport.
//
// All methods and all event callbacks are serialised on one mutex. Scroll
// commands are issued after the lock is released, so a delegate or host
// that scrolls synchronously may call back into the controller.
type Controller struct {
	mu sync.Mutex

	host      Host
	container Target
	thumb     Element
	dir       Direction
	delegate  ScrollDelegate
	fadeAfter time.Duration
	policy    Policy
	logger    *slog.Logger

	geometry Geometry
	viewport float64
	content  float64
	state    Interaction
	fade     *clock.Task

	listeners  []func()
	detachMove func()
	closed     bool
}

// New validates cfg, computes the initial geometry and attaches the
// pointer listeners. On a configuration error nothing is attached.
func New(host Host, cfg Config) (*Controller, error) {
	if host == nil {
		return nil, &ConfigError{Field: "host", Err: ErrMissing}
	}
	dir, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		host:      host,
		container: cfg.Container,
		thumb:     cfg.Thumb,
		dir:       dir,
		delegate:  cfg.ScrollDelegate,
		fadeAfter: cfg.FadeDuration,
		policy:    cfg.Policy,
		logger:    cfg.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "scrollbar", "direction", dir.String())

	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real()
	}
	c.fade = clock.NewTask(clk)

	c.mu.Lock()
	c.recomputeLocked()
	c.mu.Unlock()

	c.listeners = []func(){
		c.container.Listen(EventPointerEnter, c.inputHandler(InputEnter)),
		c.container.Listen(EventPointerLeave, c.inputHandler(InputLeave)),
		c.container.Listen(EventPointerDown, c.inputHandler(InputDown)),
		c.host.Window().Listen(EventPointerUp, c.inputHandler(InputUp)),
	}
	return c, nil
}

// OnFrame advances one synchronisation step. The host calls it on every
// display refresh.
func (c *Controller) OnFrame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.policy.RecomputeOnFrame {
		viewport, content := c.host.Extent(c.dir), c.host.ContentExtent(c.dir)
		if viewport != c.viewport || content != c.content {
			c.recomputeLocked()
		}
	}

	if !c.geometry.Exists {
		if c.container.Style("display") != "none" {
			c.container.SetStyle("display", "none")
		}
		return
	}
	if !c.policy.StickyHidden && c.container.Style("display") == "none" {
		c.container.SetStyle("display", "")
	}

	translate := c.track().Translate(c.host.ScrollOffset(c.dir))
	c.thumb.SetStyle("transform", c.dir.Translate(translate))

	if c.fadeAfter <= 0 {
		c.state.PrevTranslate = translate
		return
	}

	var moved bool
	c.state, moved = c.state.Observe(translate)
	if moved {
		c.fade.Schedule(c.fadeAfter, c.settle)
	}
	c.container.SetAttribute("data-visible", strconv.FormatBool(c.state.Visible()))
}

// OnResize recomputes the geometry. The host calls it whenever the
// viewport changes size.
func (c *Controller) OnResize() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.recomputeLocked()
}

// Close detaches every listener and cancels the pending fade-out. It is
// safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	for _, cancel := range c.listeners {
		cancel()
	}
	c.listeners = nil
	if c.detachMove != nil {
		c.detachMove()
		c.detachMove = nil
	}
	c.fade.Cancel()
	c.logger.Debug("scrollbar closed")
	return nil
}

// Geometry returns the current thumb layout.
func (c *Controller) Geometry() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geometry
}

// Interaction returns the current pointer and motion state.
func (c *Controller) Interaction() Interaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Visible reports whether the scrollbar is being hovered, dragged or has
// moved within the fade duration.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Visible()
}

// Direction returns the axis the controller follows.
func (c *Controller) Direction() Direction {
	return c.dir
}

func (c *Controller) track() Track {
	return Track{Geometry: c.geometry, Viewport: c.viewport}
}

// recomputeLocked refreshes the geometry from the live extents and writes
// the thumb length. c.mu must be held.
func (c *Controller) recomputeLocked() {
	c.viewport = c.host.Extent(c.dir)
	c.content = c.host.ContentExtent(c.dir)
	c.geometry = ComputeGeometry(c.viewport, c.content, c.policy.MinThumbLength)

	length := "100%"
	if c.viewport > 0 {
		length = strconv.FormatFloat(c.geometry.ThumbLength/c.viewport*100, 'f', -1, 64) + "%"
	}
	c.thumb.SetStyle(c.dir.LengthProperty(), length)

	if !c.policy.StickyHidden {
		if c.geometry.Exists {
			c.container.SetStyle("display", "")
		} else {
			c.container.SetStyle("display", "none")
		}
	}

	c.logger.Debug("geometry recomputed",
		"viewport", c.viewport,
		"content", c.content,
		"thumb_length", c.geometry.ThumbLength,
		"max_scroll", c.geometry.MaxScroll,
		"exists", c.geometry.Exists,
	)
}

// settle runs when the fade-out delay elapses.
func (c *Controller) settle(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.fade.Current(seq) {
		return
	}
	c.state = c.state.Settle()
}

func (c *Controller) inputHandler(kind InputKind) func(PointerEvent) {
	return func(ev PointerEvent) {
		c.handle(Input{Kind: kind, Pos: c.dir.Coordinate(ev)})
	}
}

// handle runs one state machine transition. Effects that only touch the
// controller's own subscriptions are applied under the lock; the rest are
// applied after it is released.
func (c *Controller) handle(in Input) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	wasDragging := c.state.Dragging
	next, effects := c.state.Handle(in, c.track(), c.host.TouchCapable())
	c.state = next

	deferred := effects[:0:0]
	for _, effect := range effects {
		switch effect.Kind {
		case EffectAttachMove:
			if c.detachMove == nil {
				c.detachMove = c.host.Window().Listen(EventPointerMove, c.inputHandler(InputMove))
			}
		case EffectDetachMove:
			if c.detachMove != nil {
				c.detachMove()
				c.detachMove = nil
			}
		default:
			deferred = append(deferred, effect)
		}
	}
	if wasDragging != next.Dragging {
		c.logger.Debug("drag state changed", "dragging", next.Dragging, "pos", in.Pos)
	}
	c.mu.Unlock()

	for _, effect := range deferred {
		c.apply(effect)
	}
}

func (c *Controller) apply(effect Effect) {
	switch effect.Kind {
	case EffectCursor:
		c.host.Body().SetStyle("cursor", effect.Value)
	case EffectUserSelect:
		c.host.Body().SetStyle("user-select", effect.Value)
	case EffectScroll:
		c.scrollTo(effect.Offset)
	}
}

// scrollTo issues a scroll command, leaving the other axis where it is.
func (c *Controller) scrollTo(offset float64) {
	if c.delegate != nil {
		c.delegate.ScrollTo(offset)
		return
	}
	if c.dir == Horizontal {
		c.host.ScrollTo(offset, c.host.ScrollOffset(Vertical))
		return
	}
	c.host.ScrollTo(c.host.ScrollOffset(Horizontal), offset)
}
