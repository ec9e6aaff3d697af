// Package tabs owns the tab registry and the active-tab selection.
//
// Selection is the single mutation point: every change computes the
// transition direction from the current index before updating state, then
// notifies subscribers in registration order.
package tabs

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"folio-cli/internal/model"
)

var ErrUnknownTab = errors.New("unknown tab")

type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Sign is +1, -1 or 0; handy for slide offsets.
func (d Direction) Sign() int {
	switch d {
	case Forward:
		return 1
	case Backward:
		return -1
	default:
		return 0
	}
}

// Registry is the static, ordered list of tabs.
type Registry struct {
	tabs  []model.TabDescriptor
	index map[string]int
}

// NewRegistry sorts descriptors by Order (stable, so equal orders keep input
// order) and rejects empty or duplicate ids.
func NewRegistry(descs []model.TabDescriptor) (*Registry, error) {
	if len(descs) == 0 {
		return nil, errors.New("tab registry is empty")
	}
	tabs := append([]model.TabDescriptor(nil), descs...)
	sort.SliceStable(tabs, func(i, j int) bool { return tabs[i].Order < tabs[j].Order })

	idx := make(map[string]int, len(tabs))
	for i, t := range tabs {
		if t.ID == "" {
			return nil, fmt.Errorf("tab %d: empty id", i)
		}
		if _, dup := idx[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tab id %q", t.ID)
		}
		idx[t.ID] = i
	}
	return &Registry{tabs: tabs, index: idx}, nil
}

func (r *Registry) Len() int { return len(r.tabs) }

// Tabs returns a copy of the ordered descriptors.
func (r *Registry) Tabs() []model.TabDescriptor {
	return append([]model.TabDescriptor(nil), r.tabs...)
}

func (r *Registry) At(i int) model.TabDescriptor { return r.tabs[i] }

// Index returns the position of id, or -1.
func (r *Registry) Index(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

func (r *Registry) Find(id string) (model.TabDescriptor, bool) {
	i := r.Index(id)
	if i < 0 {
		return model.TabDescriptor{}, false
	}
	return r.tabs[i], true
}

func (r *Registry) First() model.TabDescriptor { return r.tabs[0] }

type State struct {
	ActiveID  string
	Direction Direction
}

// Change is emitted on every selection.
type Change struct {
	PreviousID string
	ActiveID   string
	Direction  Direction
}

type subscriber struct {
	id int
	fn func(Change)
}

type Controller struct {
	reg   *Registry
	state State
	log   *slog.Logger

	nextSubID int
	subs      []subscriber
}

// NewController starts on the first tab with no direction.
func NewController(reg *Registry, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		reg:   reg,
		state: State{ActiveID: reg.First().ID, Direction: None},
		log:   log,
	}
}

func (c *Controller) Registry() *Registry { return c.reg }

func (c *Controller) State() State { return c.state }

func (c *Controller) ActiveID() string { return c.state.ActiveID }

func (c *Controller) ActiveIndex() int { return c.reg.Index(c.state.ActiveID) }

// Subscribe registers fn for change events and returns a function that removes
// it again.
func (c *Controller) Subscribe(fn func(Change)) (unsubscribe func()) {
	c.nextSubID++
	id := c.nextSubID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Reset makes id active without notifying subscribers. It restores a
// persisted session before anything is subscribed; direction is None.
func (c *Controller) Reset(id string) error {
	if c.reg.Index(id) < 0 {
		return fmt.Errorf("reset %q: %w", id, ErrUnknownTab)
	}
	c.state = State{ActiveID: id, Direction: None}
	return nil
}

// SelectTab makes targetID active. Reselecting the active tab still emits a
// change, with direction None.
func (c *Controller) SelectTab(targetID string) (Change, error) {
	to := c.reg.Index(targetID)
	if to < 0 {
		c.log.Warn("select unknown tab", "id", targetID)
		return Change{}, fmt.Errorf("select %q: %w", targetID, ErrUnknownTab)
	}
	from := c.reg.Index(c.state.ActiveID)

	dir := None
	switch {
	case to > from:
		dir = Forward
	case to < from:
		dir = Backward
	}

	ch := Change{PreviousID: c.state.ActiveID, ActiveID: targetID, Direction: dir}
	c.state = State{ActiveID: targetID, Direction: dir}
	c.log.Debug("tab selected", "from", ch.PreviousID, "to", targetID, "direction", dir.String())

	// Copy so a subscriber may unsubscribe itself during dispatch.
	subs := append([]subscriber(nil), c.subs...)
	for _, s := range subs {
		s.fn(ch)
	}
	return ch, nil
}

// Next selects the tab to the right of the active one. It does not wrap.
func (c *Controller) Next() (Change, bool) {
	i := c.ActiveIndex()
	if i+1 >= c.reg.Len() {
		return Change{}, false
	}
	ch, err := c.SelectTab(c.reg.At(i + 1).ID)
	return ch, err == nil
}

// Prev selects the tab to the left of the active one. It does not wrap.
func (c *Controller) Prev() (Change, bool) {
	i := c.ActiveIndex()
	if i <= 0 {
		return Change{}, false
	}
	ch, err := c.SelectTab(c.reg.At(i - 1).ID)
	return ch, err == nil
}
