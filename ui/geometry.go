package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/chrisuehlinger/vibescroll/scrollbar"
)

// trackThickness is the cross-axis size of the drawn scrollbar.
const trackThickness float32 = 10

// trackBounds returns the rectangle the scrollbar container occupies in a
// viewport of the given size: the right edge for a vertical scrollbar,
// the bottom edge for a horizontal one.
func trackBounds(dir scrollbar.Direction, size fyne.Size) (fyne.Position, fyne.Size) {
	if dir == scrollbar.Horizontal {
		return fyne.NewPos(0, size.Height-trackThickness), fyne.NewSize(size.Width, trackThickness)
	}
	return fyne.NewPos(size.Width-trackThickness, 0), fyne.NewSize(trackThickness, size.Height)
}

// thumbBounds places the thumb inside the track from the length and
// transform styles the controller writes.
func thumbBounds(dir scrollbar.Direction, size fyne.Size, length, transform string) (fyne.Position, fyne.Size) {
	trackPos, trackSize := trackBounds(dir, size)
	tx, ty := parseTranslate(transform)

	if dir == scrollbar.Horizontal {
		w := trackSize.Width * parsePercent(length) / 100
		return fyne.NewPos(trackPos.X+tx, trackPos.Y), fyne.NewSize(w, trackSize.Height)
	}
	h := trackSize.Height * parsePercent(length) / 100
	return fyne.NewPos(trackPos.X, trackPos.Y+ty), fyne.NewSize(trackSize.Width, h)
}

// contains reports whether p lies within the rectangle at pos of size sz.
func contains(pos fyne.Position, sz fyne.Size, p fyne.Position) bool {
	return p.X >= pos.X && p.X < pos.X+sz.Width && p.Y >= pos.Y && p.Y < pos.Y+sz.Height
}

// parsePercent parses "25%" as 25. Anything else is 0.
func parsePercent(s string) float32 {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32)
	if err != nil {
		return 0
	}
	return float32(f)
}

// parseTranslate extracts the x and y offsets of a translate3d transform.
// Malformed input yields zeros.
func parseTranslate(s string) (x, y float32) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "translate3d(") || !strings.HasSuffix(s, ")") {
		return 0, 0
	}
	parts := strings.Split(s[len("translate3d("):len(s)-1], ",")
	if len(parts) != 3 {
		return 0, 0
	}
	return parseLength(parts[0]), parseLength(parts[1])
}

func parseLength(s string) float32 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}
