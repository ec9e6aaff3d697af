// Package viewport keeps the active tab visible inside a horizontally
// scrolling strip and tracks the indicator under it.
//
// Everything measurable comes from an injected Measurer so the arithmetic can
// be exercised without a rendering surface. All units are abstract (cells in
// the terminal UI).
package viewport

// DefaultPadding is the gap left between a tab scrolled into view and the
// strip edge.
const DefaultPadding = 20

// Bounds is a horizontal extent in the visible (unscrolled) coordinate space.
type Bounds struct {
	Left  int
	Width int
}

func (b Bounds) Right() int { return b.Left + b.Width }

// Geometry is the indicator position relative to the strip's scrollable
// content origin.
type Geometry struct {
	Offset int
	Size   int
}

type Affordance struct {
	CanScrollLeft  bool
	CanScrollRight bool
}

// ComputeGeometry maps an element's visible bounds into content space by
// adding the container's scroll offset.
func ComputeGeometry(element, container Bounds, scroll int) Geometry {
	return Geometry{
		Offset: element.Left - container.Left + scroll,
		Size:   element.Width,
	}
}

// ComputeAffordance reports whether there is hidden content on either side.
// The right edge tolerates one unit of rounding.
func ComputeAffordance(scroll, contentWidth, containerWidth int) Affordance {
	return Affordance{
		CanScrollLeft:  scroll > 0,
		CanScrollRight: scroll < contentWidth-containerWidth-1,
	}
}

// ScrollTarget returns the scroll offset that brings tab (in content space)
// into view, and whether it differs from the current offset.
func ScrollTarget(tab Geometry, scroll, containerWidth, padding int) (int, bool) {
	left := tab.Offset
	right := tab.Offset + tab.Size

	target := scroll
	switch {
	case right > scroll+containerWidth:
		target = right - containerWidth + padding
	case left < scroll:
		target = left - padding
	}
	return target, target != scroll
}

// ClampScroll limits an offset to [0, contentWidth-containerWidth].
func ClampScroll(x, contentWidth, containerWidth int) int {
	max := contentWidth - containerWidth
	if max < 0 {
		max = 0
	}
	if x > max {
		return max
	}
	if x < 0 {
		return 0
	}
	return x
}
