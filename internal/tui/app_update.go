package tui

import (
	"time"

	"folio-cli/internal/modal"
	vscroll "folio-cli/internal/viewport"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	stripNudge   = 8
	flashTimeout = 3 * time.Second
)

func (m appModel) Init() tea.Cmd {
	return m.startupStep(m.startup.Begin())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.layout() {
			m.coord.Scrolled()
		}
		if !m.seenWindowSize {
			// The first size report is the readiness signal for the initial
			// measurement, not a resize.
			m.seenWindowSize = true
			cmds = append(cmds, m.startupStep(m.startup.Signal()))
		} else {
			seq, wait := m.coord.Resized()
			cmds = append(cmds, tea.Tick(wait, func(time.Time) tea.Msg { return resizeDoneMsg{seq: seq} }))
		}

	case resizeDoneMsg:
		m.coord.ResizeSettled(msg.seq)

	case startupTimerMsg:
		cmds = append(cmds, m.startupStep(m.startup.Elapsed(msg.phase)))

	case startupFrameMsg:
		cmds = append(cmds, m.startupStep(m.startup.FrameDone(msg.phase)))

	case stripFrameMsg:
		moved, more := m.strip.scroller.Step(msg.gen)
		if moved {
			m.coord.Scrolled()
		}
		if more {
			cmds = append(cmds, stripFrame(msg.gen))
		}

	case slideFrameMsg:
		if m.page.StepSlide(msg.gen) {
			cmds = append(cmds, slideFrame(msg.gen))
		}

	case imageLoadedMsg:
		if m.modal.ImageLoaded(msg.token) {
			m.image = msg.info
			m.imageLoaded = true
		}

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.KeyMsg:
		if m.modal.IsOpen() {
			cmds = append(cmds, m.updateModal(msg))
		} else {
			cmds = append(cmds, m.updateMain(msg))
		}
	}

	cmds = append(cmds, m.settle()...)
	return m, tea.Batch(cmds...)
}

// startupStep turns a startup step into the command that waits for it, or
// performs the first measurement when the sequence is done.
func (m *appModel) startupStep(step vscroll.Step, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	phase := step.Phase
	switch {
	case step.Wait > 0:
		return tea.Tick(step.Wait, func(time.Time) tea.Msg { return startupTimerMsg{phase: phase} })
	case step.Frame:
		return tea.Tick(frameInterval, func(time.Time) tea.Msg { return startupFrameMsg{phase: phase} })
	case step.Measure:
		m.coord.Recompute()
		m.coord.ScrollIntoView(m.tabs.ActiveID())
		m.log.Debug("initial measurement", "geometry", m.coord.Geometry(), "measured", m.coord.Measured())
	}
	return nil
}

// settle applies everything subscribers queued during the handler: page
// re-renders for tab and theme changes, strip animation frames and the
// viewer's image load.
func (m *appModel) settle() []tea.Cmd {
	var cmds []tea.Cmd

	changes := m.pending.tabChanges
	m.pending.tabChanges = nil
	for _, ch := range changes {
		m.refreshPage()
		m.page.ScrollTo(0)
		if m.onGalleryTab() {
			m.revealGalleryCursor()
		}
		cmds = append(cmds, m.page.StartSlide(ch.Direction.Sign()))
	}
	if m.pending.themeChanged {
		m.pending.themeChanged = false
		m.refreshPage()
	}

	if cmd := m.strip.frameCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}

	if !m.modal.IsOpen() {
		m.loadIssued = false
		m.focus = focusNone
		return cmds
	}
	m.lastProjectID = m.modal.Project().ID
	tok := m.modal.Token()
	if m.modal.ImageLoading() && (!m.loadIssued || tok != m.requested) {
		m.loadIssued = true
		m.requested = tok
		m.imageLoaded = false
		m.image = imageInfo{}
		cmds = append(cmds, m.images.Load(tok, m.modal.CurrentImage()))
	}
	return cmds
}

func (m *appModel) setFlash(s string) tea.Cmd {
	m.flashSeq++
	seq := m.flashSeq
	m.flash = s
	return tea.Tick(flashTimeout, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m *appModel) updateMain(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil

	case key.Matches(msg, m.keys.NextTab):
		m.tabs.Next()
		return nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tabs.Prev()
		return nil

	case key.Matches(msg, m.keys.JumpTab):
		i := int(msg.Runes[0] - '1')
		if reg := m.tabs.Registry(); i >= 0 && i < reg.Len() {
			_, _ = m.tabs.SelectTab(reg.At(i).ID)
		}
		return nil

	case key.Matches(msg, m.keys.StripLeft):
		m.strip.ScrollBy(-stripNudge)
		return nil

	case key.Matches(msg, m.keys.StripRgt):
		m.strip.ScrollBy(stripNudge)
		return nil

	case key.Matches(msg, m.keys.Theme):
		if err := m.theme.Toggle(); err != nil {
			return m.setFlash("theme: " + err.Error())
		}
		return nil
	}

	if m.onGalleryTab() {
		if cmd, ok := m.updateGallery(msg); ok {
			return cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.page.Scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.page.Scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.page.Scroll(-m.page.vp.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.page.Scroll(m.page.vp.Height)
	}
	return nil
}

// updateGallery handles keys that mean something only on the projects tab.
func (m *appModel) updateGallery(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.galleryList.CursorUp()
	case key.Matches(msg, m.keys.Down):
		m.galleryList.CursorDown()
	case key.Matches(msg, m.keys.Filter):
		delta := 1
		if msg.String() == "F" {
			delta = -1
		}
		m.gallery.CycleFilter(delta)
		syncGalleryList(&m.galleryList, m.gallery, m.pageWidth())
		m.page.ScrollTo(0)
	case key.Matches(msg, m.keys.Open):
		id, ok := selectedProjectID(m.galleryList)
		if !ok {
			return nil, true
		}
		if err := m.modal.Open(id); err != nil {
			return m.setFlash(err.Error()), true
		}
		return nil, true
	default:
		return nil, false
	}
	m.refreshPage()
	m.revealGalleryCursor()
	return nil, true
}

func (m *appModel) updateModal(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch k {
	case "ctrl+c":
		return tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % modalFocusCount
		return nil
	case "shift+tab":
		m.focus = (m.focus + modalFocusCount - 1) % modalFocusCount
		return nil
	case "enter", " ":
		if m.focus != focusNone {
			m.activate(m.focus)
		}
		return nil
	case modal.KeyLeft, modal.KeyRight:
		if m.focus != focusNone {
			m.focus = stepFocus(m.focus, k == modal.KeyRight)
			return nil
		}
	}
	if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
		_ = m.modal.SelectImage(int(msg.Runes[0] - '1'))
		return nil
	}
	m.router.Dispatch(modal.KeyEvent{Key: k, FromControl: m.focus != focusNone})
	return nil
}

// stepFocus moves between the viewer's buttons, wrapping and skipping
// focusNone.
func stepFocus(f modalFocus, forward bool) modalFocus {
	n := modalFocusCount - 1
	i := int(f) - 1
	if forward {
		i = (i + 1) % int(n)
	} else {
		i = (i - 1 + int(n)) % int(n)
	}
	return modalFocus(i + 1)
}

func (m *appModel) activate(f modalFocus) {
	switch f {
	case focusPrevImage:
		_ = m.modal.PreviousImage()
	case focusNextImage:
		_ = m.modal.NextImage()
	case focusPrevProject:
		_ = m.modal.PreviousProject()
	case focusNextProject:
		_ = m.modal.NextProject()
	case focusClose:
		m.modal.Close()
	}
}

func (m *appModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.modal.IsOpen() {
		return nil
	}
	// Row 1 is the tab labels, row 2 the indicator.
	if msg.Y == 1 || msg.Y == 2 {
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.strip.ScrollBy(-2)
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.strip.ScrollBy(2)
		case tea.MouseButtonLeft:
			if msg.Action != tea.MouseActionPress || msg.Y != 1 {
				return nil
			}
			if id, ok := m.strip.TabAt(msg.X); ok {
				_, _ = m.tabs.SelectTab(id)
			}
		}
		return nil
	}
	if msg.Y >= headerRows {
		return m.page.Update(msg)
	}
	return nil
}
