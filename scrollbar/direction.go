// Package scrollbar implements a synthetic scrollbar: a styled thumb that
// mirrors the native scroll position of a host viewport, supports
// click-to-jump and drag-to-scroll, and fades out when idle.
//
// The package does not render anything itself. It reads extents and
// scroll offsets from a Host, writes inline styles and attributes to the
// container and thumb elements, and issues scroll commands either to the
// host or to an external ScrollDelegate. The host drives it by calling
// OnFrame on every display refresh and OnResize whenever the viewport
// changes size.
package scrollbar

import "strconv"

// Direction is the scroll axis a Controller follows.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// ParseDirection converts a configuration value into a Direction. The
// empty string selects Vertical. Matching is exact: case and surrounding
// whitespace are not normalised.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, &ConfigError{Field: "direction", Value: s, Err: ErrInvalidDirection}
}

// String returns the configuration spelling of d.
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// LengthProperty is the CSS property that holds the thumb length.
func (d Direction) LengthProperty() string {
	if d == Horizontal {
		return "width"
	}
	return "height"
}

// Coordinate picks the component of a pointer position that lies on the
// scroll axis.
func (d Direction) Coordinate(ev PointerEvent) float64 {
	if d == Horizontal {
		return ev.X
	}
	return ev.Y
}

// Translate formats a thumb offset as a translate3d transform along d.
func (d Direction) Translate(offset float64) string {
	px := strconv.FormatFloat(offset, 'f', -1, 64) + "px"
	if d == Horizontal {
		return "translate3d(" + px + ", 0, 0)"
	}
	return "translate3d(0, " + px + ", 0)"
}
