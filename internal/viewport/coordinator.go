package viewport

import (
	"log/slog"
	"time"
)

// Measurer exposes the live layout of the tab strip.
type Measurer interface {
	// Container reports the strip's visible bounds, its current scroll offset
	// and the width of its scrollable content. ok is false until the strip
	// has been laid out.
	Container() (bounds Bounds, scroll, contentWidth int, ok bool)
	// Element reports the visible bounds of the control for tab id.
	Element(id string) (Bounds, bool)
	// ScrollTo starts a smooth scroll of the strip toward x and returns
	// immediately.
	ScrollTo(x int)
}

type Options struct {
	// Padding is the gap kept beside a tab scrolled into view; nil uses
	// DefaultPadding.
	Padding        *int
	ResizeDebounce time.Duration
	Logger         *slog.Logger
}

// Coordinator recomputes indicator geometry and scroll affordance on every
// trigger: active tab change, resize (debounced), strip scroll and the
// startup sequence.
type Coordinator struct {
	m        Measurer
	padding  int
	debounce time.Duration
	log      *slog.Logger

	activeID   string
	geometry   Geometry
	affordance Affordance
	measured   bool

	resizeSeq uint64
}

func NewCoordinator(m Measurer, activeID string, opts Options) *Coordinator {
	if opts.ResizeDebounce <= 0 {
		opts.ResizeDebounce = 10 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	padding := DefaultPadding
	if opts.Padding != nil {
		padding = *opts.Padding
	}
	return &Coordinator{
		m:        m,
		padding:  padding,
		debounce: opts.ResizeDebounce,
		log:      opts.Logger,
		activeID: activeID,
	}
}

func (c *Coordinator) ActiveID() string { return c.activeID }

func (c *Coordinator) Geometry() Geometry { return c.geometry }

func (c *Coordinator) Affordance() Affordance { return c.affordance }

// Measured reports whether at least one measurement has succeeded.
func (c *Coordinator) Measured() bool { return c.measured }

// Recompute measures the strip and the active tab and refreshes geometry and
// affordance. Before layout exists it does nothing and returns false; the next
// trigger will try again.
func (c *Coordinator) Recompute() bool {
	cont, scroll, contentW, ok := c.m.Container()
	if !ok {
		return false
	}
	el, ok := c.m.Element(c.activeID)
	if !ok {
		return false
	}
	c.geometry = ComputeGeometry(el, cont, scroll)
	c.affordance = ComputeAffordance(scroll, contentW, cont.Width)
	c.measured = true
	return true
}

// ScrollIntoView scrolls the strip so tab id is fully visible, leaving the
// configured padding. It reports whether a scroll was started.
func (c *Coordinator) ScrollIntoView(id string) bool {
	cont, scroll, _, ok := c.m.Container()
	if !ok {
		return false
	}
	el, ok := c.m.Element(id)
	if !ok {
		return false
	}
	tab := ComputeGeometry(el, cont, scroll)
	target, move := ScrollTarget(tab, scroll, cont.Width, c.padding)
	if !move {
		return false
	}
	c.log.Debug("scroll tab into view", "tab", id, "from", scroll, "to", target)
	c.m.ScrollTo(target)
	return true
}

// ActiveChanged handles a tab selection: remeasure for the new tab and bring
// it into view.
func (c *Coordinator) ActiveChanged(id string) {
	c.activeID = id
	c.Recompute()
	c.ScrollIntoView(id)
}

// Resized records a container resize and returns the sequence number and
// quiet period after which ResizeSettled should be called. Bursts coalesce:
// only the latest sequence settles.
func (c *Coordinator) Resized() (seq uint64, wait time.Duration) {
	c.resizeSeq++
	return c.resizeSeq, c.debounce
}

// ResizeSettled runs the recompute for the latest resize. Stale sequence
// numbers are ignored.
func (c *Coordinator) ResizeSettled(seq uint64) bool {
	if seq != c.resizeSeq {
		return false
	}
	c.Recompute()
	c.ScrollIntoView(c.activeID)
	return true
}

// Scrolled handles a change of the strip's own scroll offset.
func (c *Coordinator) Scrolled() {
	c.Recompute()
}
