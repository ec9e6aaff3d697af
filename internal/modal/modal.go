// Package modal implements the project viewer overlay: a CLOSED/OPEN state
// machine driven by the gallery selection, with an image cursor, a loading
// flag keyed to the displayed image, keyboard routing and the page scroll
// lock.
//
// The modal never opens or closes on its own. Open, Close and SwitchProject
// go through the gallery, and the gallery's listener callbacks perform the
// transitions, so "open" always equals "a project is selected".
package modal

import (
	"errors"
	"fmt"
	"log/slog"

	"folio-cli/internal/gallery"
	"folio-cli/internal/model"
)

var (
	ErrClosed          = errors.New("modal is closed")
	ErrImageOutOfRange = errors.New("image index out of range")
)

// Token identifies one image request. Completions carrying any other token
// are stale.
type Token struct {
	ProjectID string
	Index     int
	// Generation increments on every CLOSED -> OPEN transition so a reopened
	// modal never accepts completions from an earlier session.
	Generation int
}

type State struct {
	Open         bool
	ProjectID    string
	ImageIndex   int
	ImageLoading bool
	// SavedScroll is set only while open.
	SavedScroll *int
}

type Controller struct {
	gallery *gallery.Controller
	lock    *ScrollLock
	keys    KeySource
	log     *slog.Logger

	open    bool
	project model.Project
	index   int
	loading bool
	gen     int
	handle  *LockHandle
	detach  func()
}

// New wires the controller as the gallery's listener.
func New(g *gallery.Controller, lock *ScrollLock, keys KeySource, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	c := &Controller{gallery: g, lock: lock, keys: keys, log: log}
	g.SetListener(c)
	return c
}

func (c *Controller) IsOpen() bool { return c.open }

func (c *Controller) State() State {
	st := State{
		Open:         c.open,
		ProjectID:    c.project.ID,
		ImageIndex:   c.index,
		ImageLoading: c.loading,
	}
	if c.open && c.handle != nil {
		saved := c.handle.Saved()
		st.SavedScroll = &saved
	}
	return st
}

// Project is the project on display (zero value when closed).
func (c *Controller) Project() model.Project { return c.project }

func (c *Controller) ImageIndex() int { return c.index }

func (c *Controller) ImageLoading() bool { return c.loading }

func (c *Controller) TotalImages() int {
	if !c.open {
		return 0
	}
	return c.project.ImageCount()
}

// CurrentImage is the path of the displayed image.
func (c *Controller) CurrentImage() string {
	if !c.open {
		return ""
	}
	return c.project.AllImages()[c.index]
}

// Token identifies the image currently on display.
func (c *Controller) Token() Token {
	return Token{ProjectID: c.project.ID, Index: c.index, Generation: c.gen}
}

// Open selects id in the gallery, which opens the modal.
func (c *Controller) Open(id string) error {
	return c.gallery.SelectProject(id)
}

// Close clears the gallery selection, which closes the modal.
func (c *Controller) Close() {
	c.gallery.ClearSelection()
}

// SwitchProject shows another project without leaving the modal.
func (c *Controller) SwitchProject(id string) error {
	if !c.open {
		return ErrClosed
	}
	return c.gallery.SelectProject(id)
}

func (c *Controller) NextProject() error {
	if !c.open {
		return ErrClosed
	}
	return c.gallery.NextProject()
}

func (c *Controller) PreviousProject() error {
	if !c.open {
		return ErrClosed
	}
	return c.gallery.PreviousProject()
}

// ProjectSelected implements gallery.Listener.
func (c *Controller) ProjectSelected(p model.Project) {
	if !c.open {
		c.gen++
		c.handle = c.lock.Acquire()
		if c.keys != nil {
			c.detach = c.keys.Attach(c.HandleKey)
		}
		c.open = true
		c.log.Debug("modal opened", "project", p.ID, "savedScroll", c.handle.Saved(), "generation", c.gen)
	} else {
		c.log.Debug("modal switched project", "from", c.project.ID, "to", p.ID)
	}
	c.project = p
	c.index = 0
	c.loading = true
}

// SelectionCleared implements gallery.Listener.
func (c *Controller) SelectionCleared() {
	if !c.open {
		return
	}
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
	saved := c.handle.Saved()
	c.handle.Release()
	c.handle = nil

	c.open = false
	c.project = model.Project{}
	c.index = 0
	c.loading = false
	c.log.Debug("modal closed", "restoredScroll", saved)
}

func (c *Controller) NextImage() error {
	if !c.open {
		return ErrClosed
	}
	c.setIndex((c.index + 1) % c.TotalImages())
	return nil
}

func (c *Controller) PreviousImage() error {
	if !c.open {
		return ErrClosed
	}
	n := c.TotalImages()
	c.setIndex((c.index - 1 + n) % n)
	return nil
}

// SelectImage jumps to image i. Selecting the displayed image is a no-op.
func (c *Controller) SelectImage(i int) error {
	if !c.open {
		return ErrClosed
	}
	if i < 0 || i >= c.TotalImages() {
		return fmt.Errorf("select image %d of %d: %w", i, c.TotalImages(), ErrImageOutOfRange)
	}
	if i == c.index {
		return nil
	}
	c.setIndex(i)
	return nil
}

func (c *Controller) setIndex(i int) {
	if i == c.index && !c.loading {
		// Single-image projects cycle onto themselves; nothing to reload.
		return
	}
	c.index = i
	c.loading = true
}

// ImageLoaded reports a finished load. It returns false, and changes nothing,
// when t no longer matches the displayed image.
func (c *Controller) ImageLoaded(t Token) bool {
	if !c.open || t != c.Token() {
		c.log.Debug("discard stale image load", "token", t, "current", c.Token(), "open", c.open)
		return false
	}
	c.loading = false
	return true
}

// HandleKey is attached to the key source while the modal is open.
func (c *Controller) HandleKey(ev KeyEvent) bool {
	if !c.open {
		return false
	}
	switch ev.Key {
	case KeyEscape:
		c.Close()
		return true
	case KeyLeft:
		if ev.FromControl {
			return false
		}
		_ = c.PreviousImage()
		return true
	case KeyRight:
		if ev.FromControl {
			return false
		}
		_ = c.NextImage()
		return true
	case "n":
		_ = c.NextProject()
		return true
	case "p":
		_ = c.PreviousProject()
		return true
	}
	return false
}

// Teardown closes the modal if it is open, releasing the scroll lock and the
// key listener. Safe to call at any time, including during shutdown.
func (c *Controller) Teardown() {
	if c.open {
		c.Close()
	}
	// Selection may have been cleared without notifying us (listener
	// swapped); make sure nothing is left behind.
	if c.open {
		c.SelectionCleared()
	}
}
