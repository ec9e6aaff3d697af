package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// contentPage is the vertically scrolling area below the tab strip. It is
// the page the project viewer locks while open.
type contentPage struct {
	vp     viewport.Model
	frozen bool

	// Horizontal slide of the content after a tab change; 0 when idle.
	slide    int
	slideGen int
}

const slideDistance = 6

func newContentPage() *contentPage {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &contentPage{vp: vp}
}

func (p *contentPage) ScrollOffset() int { return p.vp.YOffset }

func (p *contentPage) ScrollTo(y int) { p.vp.SetYOffset(y) }

func (p *contentPage) SetFrozen(frozen bool) { p.frozen = frozen }

func (p *contentPage) Frozen() bool { return p.frozen }

func (p *contentPage) SetSize(w, h int) {
	p.vp.Width = w
	p.vp.Height = h
}

// SetContent replaces the page body, keeping the offset where possible.
func (p *contentPage) SetContent(s string) {
	y := p.vp.YOffset
	p.vp.SetContent(s)
	p.vp.SetYOffset(y)
}

// Scroll moves the page by dy lines unless frozen.
func (p *contentPage) Scroll(dy int) {
	if p.frozen {
		return
	}
	switch {
	case dy < 0:
		p.vp.LineUp(-dy)
	case dy > 0:
		p.vp.LineDown(dy)
	}
}

// Reveal scrolls just enough to show lines [top, top+h).
func (p *contentPage) Reveal(top, h int) {
	if p.frozen {
		return
	}
	switch {
	case top < p.vp.YOffset:
		p.vp.SetYOffset(top)
	case top+h > p.vp.YOffset+p.vp.Height:
		p.vp.SetYOffset(top + h - p.vp.Height)
	}
}

// Update forwards mouse and viewport key messages unless frozen.
func (p *contentPage) Update(msg tea.Msg) tea.Cmd {
	if p.frozen {
		return nil
	}
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

// StartSlide begins a content slide in from the side given by sign (+1 enters
// from the right, -1 from the left). It returns the first frame command.
func (p *contentPage) StartSlide(sign int) tea.Cmd {
	p.slideGen++
	if sign == 0 {
		p.slide = 0
		return nil
	}
	p.slide = sign * slideDistance
	return slideFrame(p.slideGen)
}

// StepSlide advances the slide for gen and reports whether more frames are
// needed.
func (p *contentPage) StepSlide(gen int) bool {
	if gen != p.slideGen || p.slide == 0 {
		return false
	}
	step := p.slide / 2
	if step == 0 {
		step = p.slide
	}
	p.slide -= step
	return p.slide != 0
}

func slideFrame(gen int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return slideFrameMsg{gen: gen} })
}

func (p *contentPage) View() string {
	return shiftLines(p.vp.View(), p.slide, p.vp.Width)
}
