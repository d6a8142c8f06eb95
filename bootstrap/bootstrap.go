// Package bootstrap loads a page and attaches a scrollbar controller to
// it: element lookup, scroll delegate selection, resize wiring and the
// per-frame sequence.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/chrisuehlinger/vibescroll/clock"
	"github.com/chrisuehlinger/vibescroll/dom"
	"github.com/chrisuehlinger/vibescroll/js"
	"github.com/chrisuehlinger/vibescroll/scrollbar"
	"github.com/chrisuehlinger/vibescroll/smooth"
)

// Default selectors for the scrollbar elements.
const (
	DefaultContainerSelector = `[data-scrollbar="container"]`
	DefaultThumbSelector     = `[data-scrollbar="thumb"]`
)

// ErrElementNotFound is returned when a selector matches nothing.
var ErrElementNotFound = errors.New("element not found")

// DelegateKind selects who performs scroll commands.
type DelegateKind string

const (
	// DelegateNative scrolls the window directly.
	DelegateNative DelegateKind = "native"
	// DelegateSmooth eases the window with a smooth.Scroller.
	DelegateSmooth DelegateKind = "smooth"
	// DelegateScript forwards to a page script object's scrollTo.
	DelegateScript DelegateKind = "script"
)

// ParseDelegateKind parses a delegate name. The empty string is native.
func ParseDelegateKind(s string) (DelegateKind, error) {
	switch DelegateKind(s) {
	case "", DelegateNative:
		return DelegateNative, nil
	case DelegateSmooth, DelegateScript:
		return DelegateKind(s), nil
	}
	return "", fmt.Errorf("unknown scroll delegate %q (supported: native, smooth, script)", s)
}

// Page is a loaded document with its window and script runtime.
type Page struct {
	Window  *dom.Window
	Runtime *js.Runtime
	logger  *slog.Logger
}

// LoadPage parses an HTML document, opens it in a window of the given
// size and runs its inline scripts in order. A failing script is logged
// and the remaining scripts still run.
func LoadPage(src io.Reader, width, height float64, clk clock.Clock, logger *slog.Logger) (*Page, error) {
	if logger == nil {
		logger = slog.Default()
	}
	doc, err := dom.ParseHTMLReader(src)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	win := dom.NewWindow(doc, width, height)
	rt := js.NewRuntime(win, clk, logger)

	for i, script := range doc.Scripts() {
		name := "inline-" + strconv.Itoa(i)
		if err := rt.ExecuteScript(script, name); err != nil {
			logger.Warn("page script failed", "script", name, "error", err)
		}
	}
	logger.Info("page loaded", "title", doc.Title(), "width", width, "height", height)
	return &Page{Window: win, Runtime: rt, logger: logger}, nil
}

// Options configures Attach.
type Options struct {
	// Selectors for the container and thumb. Empty means the defaults.
	ContainerSelector string
	ThumbSelector     string

	// Scrollbar is the controller configuration. Container, Thumb and
	// ScrollDelegate are filled in by Attach.
	Scrollbar scrollbar.Config

	Delegate DelegateKind
	// DelegateGlobal names the script object used by DelegateScript.
	DelegateGlobal string
	// Lerp is the per-frame easing factor used by DelegateSmooth.
	Lerp float64
}

// Binding is a controller attached to a page.
type Binding struct {
	page       *Page
	container  *dom.Element
	thumb      *dom.Element
	controller *scrollbar.Controller
	smooth     *smooth.Scroller
	resizeID   dom.ListenerID
}

// Attach finds the scrollbar elements, builds the controller and
// subscribes it to window resizes.
func (p *Page) Attach(opts Options) (*Binding, error) {
	containerSel := opts.ContainerSelector
	if containerSel == "" {
		containerSel = DefaultContainerSelector
	}
	thumbSel := opts.ThumbSelector
	if thumbSel == "" {
		thumbSel = DefaultThumbSelector
	}

	doc := p.Window.Document()
	container, err := find(doc, containerSel, "container")
	if err != nil {
		return nil, err
	}
	thumb, err := find(doc, thumbSel, "thumb")
	if err != nil {
		return nil, err
	}

	cfg := opts.Scrollbar
	cfg.Container = NewTarget(container)
	cfg.Thumb = NewTarget(thumb)
	if cfg.Logger == nil {
		cfg.Logger = p.logger
	}

	b := &Binding{page: p, container: container, thumb: thumb}
	dir, err := scrollbar.ParseDirection(cfg.Direction)
	if err != nil {
		return nil, err
	}
	kind := opts.Delegate
	if kind == "" {
		kind = DelegateNative
	}
	switch kind {
	case DelegateNative:
	case DelegateSmooth:
		b.smooth = smooth.New(p.Window, dir, opts.Lerp)
		cfg.ScrollDelegate = b.smooth
	case DelegateScript:
		d, err := p.Runtime.GlobalDelegate(opts.DelegateGlobal)
		if err != nil {
			return nil, fmt.Errorf("script delegate: %w", err)
		}
		cfg.ScrollDelegate = d
	default:
		return nil, fmt.Errorf("unknown scroll delegate %q", kind)
	}

	b.controller, err = scrollbar.New(NewHost(p.Window), cfg)
	if err != nil {
		return nil, err
	}
	b.resizeID = p.Window.AddEventListener(dom.EventResize, func(*dom.Event) {
		b.controller.OnResize()
	})

	cfg.Logger.Info("scrollbar attached",
		"direction", dir.String(),
		"delegate", string(kind),
		"container", containerSel,
		"thumb", thumbSel,
	)
	return b, nil
}

func find(doc *dom.Document, selector, role string) (*dom.Element, error) {
	el, err := doc.QuerySelector(selector)
	if err != nil {
		return nil, fmt.Errorf("%s selector: %w", role, err)
	}
	if el == nil {
		return nil, fmt.Errorf("%s %q: %w", role, selector, ErrElementNotFound)
	}
	return el, nil
}

// Controller returns the attached controller.
func (b *Binding) Controller() *scrollbar.Controller {
	return b.controller
}

// Container returns the scrollbar container element.
func (b *Binding) Container() *dom.Element {
	return b.container
}

// Thumb returns the thumb element.
func (b *Binding) Thumb() *dom.Element {
	return b.thumb
}

// Frame runs one display refresh: due script timers and queued events,
// script animation frames, one smooth scrolling step, then the
// controller. timestamp is in milliseconds.
func (b *Binding) Frame(timestamp float64) {
	rt := b.page.Runtime
	rt.ProcessTimers()
	rt.RunAnimationFrames(timestamp)
	if b.smooth != nil {
		b.smooth.Step()
	}
	b.controller.OnFrame()
}

// Close detaches the controller from the page.
func (b *Binding) Close() error {
	b.page.Window.RemoveEventListener(dom.EventResize, b.resizeID)
	return b.controller.Close()
}
