package scrollbar

// Remap maps value from the domain [domainStart, domainEnd] onto the range
// [rangeStart, rangeEnd]. The transform is affine and does not clamp:
// values outside the domain land outside the range. A degenerate domain
// (domainStart == domainEnd) yields a non-finite result.
func Remap(value, domainStart, domainEnd, rangeStart, rangeEnd float64) float64 {
	return rangeStart + (value-domainStart)/(domainEnd-domainStart)*(rangeEnd-rangeStart)
}

// Geometry is the thumb layout derived from the viewport and content
// extents along the scroll axis.
//
// Exists is true exactly when ThumbRatio < 1. ThumbLength never exceeds
// the viewport extent, and MaxScroll is positive whenever Exists holds.
type Geometry struct {
	ThumbRatio  float64
	ThumbLength float64
	MaxScroll   float64
	Exists      bool
}

// ComputeGeometry derives the thumb layout. minThumbLength clamps the
// thumb from below; zero disables the clamp. Non-positive extents produce
// a scrollbar that does not exist.
func ComputeGeometry(viewport, content, minThumbLength float64) Geometry {
	if viewport <= 0 || content <= 0 {
		return Geometry{
			ThumbRatio:  1,
			ThumbLength: max(viewport, 0),
			MaxScroll:   max(content-viewport, 0),
		}
	}

	ratio := viewport / content
	length := max(ratio*viewport, minThumbLength)
	length = min(length, viewport)

	return Geometry{
		ThumbRatio:  ratio,
		ThumbLength: length,
		MaxScroll:   content - viewport,
		Exists:      ratio < 1,
	}
}

// Track pairs a Geometry with the viewport extent it was computed for and
// maps between scroll offsets and thumb positions.
type Track struct {
	Geometry
	Viewport float64
}

// Travel is the distance the thumb can move: the viewport extent minus
// the thumb length.
func (t Track) Travel() float64 {
	return t.Viewport - t.ThumbLength
}

// Translate maps a scroll offset in [0, MaxScroll] to a thumb offset in
// [0, Travel()].
func (t Track) Translate(offset float64) float64 {
	if t.MaxScroll <= 0 {
		return 0
	}
	return Remap(offset, 0, t.MaxScroll, 0, t.Travel())
}

// ScrollTarget maps a pointer position on the scroll axis to the scroll
// offset that puts the thumb's midpoint under the pointer. It is the
// inverse of Translate shifted by half a thumb. A thumb that fills the
// whole track has nowhere to go, so the target is 0.
func (t Track) ScrollTarget(pos float64) float64 {
	if t.Travel() <= 0 {
		return 0
	}
	half := t.ThumbLength / 2
	return Remap(pos, half, t.Viewport-half, 0, t.MaxScroll)
}
