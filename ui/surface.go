package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/vibescroll/dom"
	"github.com/chrisuehlinger/vibescroll/scrollbar"
)

// bandHeight is the spacing of the stripes drawn to show content motion.
const bandHeight float32 = 120

var (
	backgroundColor = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	bandColor       = color.NRGBA{R: 0xe8, G: 0xec, B: 0xf2, A: 0xff}
	textColor       = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	trackColor      = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x18}
	thumbIdle       = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0x60}
	thumbActive     = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xd0}
)

// pageSurface renders a window's scroll state and the scrollbar elements
// and feeds pointer and wheel input back into the window.
type pageSurface struct {
	widget.BaseWidget

	win       *dom.Window
	dir       scrollbar.Direction
	container *dom.Element
	thumb     *dom.Element

	lastPointer fyne.Position
	scriptErr   string
}

var (
	_ desktop.Hoverable = (*pageSurface)(nil)
	_ desktop.Mouseable = (*pageSurface)(nil)
	_ fyne.Scrollable   = (*pageSurface)(nil)
)

func newPageSurface(win *dom.Window, dir scrollbar.Direction, container, thumb *dom.Element) *pageSurface {
	s := &pageSurface{win: win, dir: dir, container: container, thumb: thumb}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *pageSurface) CreateRenderer() fyne.WidgetRenderer {
	r := &surfaceRenderer{
		surface:    s,
		background: canvas.NewRectangle(backgroundColor),
		status:     canvas.NewText("", textColor),
		track:      canvas.NewRectangle(trackColor),
		thumb:      canvas.NewRectangle(thumbIdle),
	}
	r.thumb.CornerRadius = trackThickness / 2
	r.status.TextSize = 12
	return r
}

// setScriptError records the latest page script error for the status
// line. Script callbacks run on the frame driver's goroutine, like Refresh.
func (s *pageSurface) setScriptError(err error) {
	s.scriptErr = err.Error()
}

// hit returns the element under p: the thumb, its container, or the body.
func (s *pageSurface) hit(p fyne.Position) *dom.Element {
	size := s.Size()
	if s.container.Style().GetPropertyValue("display") == "none" {
		return s.win.Document().Body()
	}
	thumbPos, thumbSize := thumbBounds(s.dir, size,
		s.thumb.Style().GetPropertyValue(s.dir.LengthProperty()),
		s.thumb.Style().GetPropertyValue("transform"))
	if contains(thumbPos, thumbSize, p) {
		return s.thumb
	}
	if trackPos, trackSize := trackBounds(s.dir, size); contains(trackPos, trackSize, p) {
		return s.container
	}
	return s.win.Document().Body()
}

// MouseIn implements desktop.Hoverable.
func (s *pageSurface) MouseIn(ev *desktop.MouseEvent) {
	s.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (s *pageSurface) MouseMoved(ev *desktop.MouseEvent) {
	s.lastPointer = ev.Position
	s.win.PointerMove(s.hit(ev.Position), float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseOut implements desktop.Hoverable.
func (s *pageSurface) MouseOut() {
	s.win.PointerExit(float64(s.lastPointer.X), float64(s.lastPointer.Y))
}

// MouseDown implements desktop.Mouseable.
func (s *pageSurface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.win.PointerDown(s.hit(ev.Position), float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseUp implements desktop.Mouseable.
func (s *pageSurface) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.win.PointerUp(s.hit(ev.Position), float64(ev.Position.X), float64(ev.Position.Y))
}

// Scrolled implements fyne.Scrollable.
func (s *pageSurface) Scrolled(ev *fyne.ScrollEvent) {
	s.win.ScrollBy(float64(-ev.Scrolled.DX), float64(-ev.Scrolled.DY))
}

type surfaceRenderer struct {
	surface    *pageSurface
	background *canvas.Rectangle
	bands      []fyne.CanvasObject
	status     *canvas.Text
	track      *canvas.Rectangle
	thumb      *canvas.Rectangle
}

func (r *surfaceRenderer) Destroy() {}

// Layout resizes the window to the widget, which dispatches "resize" when
// the size changed.
func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.surface.win.Resize(float64(size.Width), float64(size.Height))
	r.background.Resize(size)

	need := int(math.Ceil(float64(size.Height/bandHeight))) + 2
	for len(r.bands) < need {
		band := canvas.NewRectangle(bandColor)
		band.Resize(fyne.NewSize(size.Width, bandHeight/2))
		r.bands = append(r.bands, band)
	}
	r.Refresh()
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.background}
	objects = append(objects, r.bands...)
	return append(objects, r.status, r.track, r.thumb)
}

// Refresh repositions everything from the window's scroll offsets and
// the scrollbar elements' inline styles.
func (r *surfaceRenderer) Refresh() {
	s := r.surface
	size := s.Size()

	scrollX, scrollY := float32(s.win.ScrollX()), float32(s.win.ScrollY())
	offset := scrollY
	if s.dir == scrollbar.Horizontal {
		offset = scrollX
	}
	phase := float32(math.Mod(float64(offset), float64(bandHeight)))
	for i, band := range r.bands {
		band.Resize(fyne.NewSize(size.Width, bandHeight/2))
		band.Move(fyne.NewPos(0, float32(i)*bandHeight-phase))
	}

	r.status.Text = statusLine(s.win.Document().Title(), s.win.ScrollX(), s.win.ScrollY(),
		s.win.ScrollWidth(), s.win.ScrollHeight(), s.scriptErr)
	r.status.Move(fyne.NewPos(8, 8))

	hidden := s.container.Style().GetPropertyValue("display") == "none"
	trackPos, trackSize := trackBounds(s.dir, size)
	r.track.Move(trackPos)
	r.track.Resize(trackSize)

	thumbPos, thumbSize := thumbBounds(s.dir, size,
		s.thumb.Style().GetPropertyValue(s.dir.LengthProperty()),
		s.thumb.Style().GetPropertyValue("transform"))
	r.thumb.Move(thumbPos)
	r.thumb.Resize(thumbSize)

	// Without fading, data-visible is never written and the thumb stays
	// fully drawn.
	if s.container.GetAttribute("data-visible") == "false" {
		r.thumb.FillColor = thumbIdle
	} else {
		r.thumb.FillColor = thumbActive
	}

	if hidden {
		r.track.Hide()
		r.thumb.Hide()
	} else {
		r.track.Show()
		r.thumb.Show()
	}

	canvas.Refresh(r.background)
	for _, band := range r.bands {
		canvas.Refresh(band)
	}
	canvas.Refresh(r.status)
	canvas.Refresh(r.track)
	canvas.Refresh(r.thumb)
}
