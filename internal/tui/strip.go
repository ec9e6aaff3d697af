package tui

import (
	"strings"
	"time"

	"folio-cli/internal/model"
	vscroll "folio-cli/internal/viewport"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	frameInterval = 16 * time.Millisecond

	// Columns reserved on each side of the strip for the scroll arrows.
	stripGutter = 2
	tabGap      = 1
)

type stripTab struct {
	id    string
	label string
	start int // content-space column
	width int
}

// tabStrip is the horizontally scrollable row of tab labels. It implements
// viewport.Measurer: positions are cell columns, and ScrollTo animates the
// offset one frame at a time.
type tabStrip struct {
	tabs         []stripTab
	contentWidth int

	// Visible region, in screen columns. width 0 means not laid out.
	left  int
	width int

	scroller     vscroll.Scroller
	pendingFrame bool
}

func newTabStrip(descs []model.TabDescriptor) *tabStrip {
	s := &tabStrip{left: stripGutter}
	x := 0
	for i, d := range descs {
		if i > 0 {
			x += tabGap
		}
		w := xansi.StringWidth(d.Label) + 2
		s.tabs = append(s.tabs, stripTab{id: d.ID, label: d.Label, start: x, width: w})
		x += w
	}
	s.contentWidth = x
	return s
}

// SetWidth lays the strip out for a terminal of the given width. The scroll
// offset is clamped to the new bounds without animating.
func (s *tabStrip) SetWidth(total int) (clamped bool) {
	w := total - 2*stripGutter
	if w < 1 {
		w = 0
	}
	s.width = w
	if w == 0 {
		return false
	}
	pos, target := s.scroller.Pos(), s.scroller.Target()
	cp := vscroll.ClampScroll(pos, s.contentWidth, s.width)
	ct := vscroll.ClampScroll(target, s.contentWidth, s.width)
	if cp == pos && ct == target {
		return false
	}
	s.scroller.Jump(cp)
	s.pendingFrame = false
	if ct != cp {
		s.ScrollTo(ct)
	}
	return true
}

func (s *tabStrip) Container() (vscroll.Bounds, int, int, bool) {
	if s.width <= 0 {
		return vscroll.Bounds{}, 0, 0, false
	}
	return vscroll.Bounds{Left: s.left, Width: s.width}, s.scroller.Pos(), s.contentWidth, true
}

func (s *tabStrip) Element(id string) (vscroll.Bounds, bool) {
	if s.width <= 0 {
		return vscroll.Bounds{}, false
	}
	for _, t := range s.tabs {
		if t.id == id {
			return vscroll.Bounds{Left: s.left + t.start - s.scroller.Pos(), Width: t.width}, true
		}
	}
	return vscroll.Bounds{}, false
}

func (s *tabStrip) ScrollTo(x int) {
	x = vscroll.ClampScroll(x, s.contentWidth, s.width)
	if s.scroller.SetTarget(x) {
		s.pendingFrame = true
	}
}

// ScrollBy nudges the strip (manual scrolling).
func (s *tabStrip) ScrollBy(dx int) {
	s.ScrollTo(s.scroller.Target() + dx)
}

// frameCmd schedules the first frame of a newly started animation.
func (s *tabStrip) frameCmd() tea.Cmd {
	if !s.pendingFrame {
		return nil
	}
	s.pendingFrame = false
	return stripFrame(s.scroller.Gen())
}

func stripFrame(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return stripFrameMsg{gen: gen} })
}

// TabAt maps a screen column on the label row to a tab id.
func (s *tabStrip) TabAt(col int) (string, bool) {
	if s.width <= 0 || col < s.left || col >= s.left+s.width {
		return "", false
	}
	x := col - s.left + s.scroller.Pos()
	for _, t := range s.tabs {
		if x >= t.start && x < t.start+t.width {
			return t.id, true
		}
	}
	return "", false
}

// View renders the label row and the indicator row.
func (s *tabStrip) View(activeID string, geo vscroll.Geometry, aff vscroll.Affordance, measured bool) string {
	if s.width <= 0 {
		return ""
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	inactive := lipgloss.NewStyle().Foreground(colorSurfaceFg)

	var row strings.Builder
	for i, t := range s.tabs {
		if i > 0 {
			row.WriteString(strings.Repeat(" ", tabGap))
		}
		st := inactive
		if t.id == activeID {
			st = active
		}
		row.WriteString(st.Render(" " + t.label + " "))
	}
	pos := s.scroller.Pos()
	labels := padOrCutANSI(xansi.Cut(row.String(), pos, pos+s.width), s.width)

	left, right := "  ", "  "
	arrow := styleMuted()
	if aff.CanScrollLeft {
		left = arrow.Render(glyphScrollLeft()) + " "
	}
	if aff.CanScrollRight {
		right = " " + arrow.Render(glyphScrollRight())
	}

	indicator := strings.Repeat(" ", s.width)
	if measured && geo.Size > 0 {
		indicator = s.indicatorLine(geo.Offset-pos, geo.Size)
	}
	return left + labels + right + "\n" + strings.Repeat(" ", stripGutter) + indicator + strings.Repeat(" ", stripGutter)
}

// indicatorLine draws a bar of size cells starting at column x of the
// visible region, clipped to it.
func (s *tabStrip) indicatorLine(x, size int) string {
	from, to := x, x+size
	if from < 0 {
		from = 0
	}
	if to > s.width {
		to = s.width
	}
	if to <= from {
		return strings.Repeat(" ", s.width)
	}
	bar := lipgloss.NewStyle().Foreground(colorAccent).Render(strings.Repeat(glyphIndicator(), to-from))
	return strings.Repeat(" ", from) + bar + strings.Repeat(" ", s.width-to)
}
