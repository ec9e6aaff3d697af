// Package gallery owns the project list, the category filter and the
// selected project. Filtering is a view over the list; cycling through
// projects always walks the full, unfiltered list.
package gallery

import (
	"errors"
	"fmt"
	"log/slog"

	"folio-cli/internal/model"
)

const FilterAll = "all"

var (
	ErrUnknownProject  = errors.New("unknown project")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoSelection     = errors.New("no project selected")
	ErrEmpty           = errors.New("gallery is empty")
)

// Listener observes selection changes. ProjectSelected fires for every
// selection, including switching from one project to another while one is
// already selected.
type Listener interface {
	ProjectSelected(p model.Project)
	SelectionCleared()
}

type State struct {
	Filter     string
	SelectedID string // "" means nothing selected
}

type Controller struct {
	projects []model.Project
	index    map[string]int
	cats     []string

	state    State
	listener Listener
	log      *slog.Logger
}

func New(projects []model.Project, log *slog.Logger) (*Controller, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ps := append([]model.Project(nil), projects...)
	idx := make(map[string]int, len(ps))
	cats := []string{FilterAll}
	seenCat := map[string]bool{}
	for i, p := range ps {
		if p.ID == "" {
			return nil, fmt.Errorf("project %d: empty id", i)
		}
		if _, dup := idx[p.ID]; dup {
			return nil, fmt.Errorf("duplicate project id %q", p.ID)
		}
		idx[p.ID] = i
		if p.Category != "" && !seenCat[p.Category] {
			seenCat[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	return &Controller{
		projects: ps,
		index:    idx,
		cats:     cats,
		state:    State{Filter: FilterAll},
		log:      log,
	}, nil
}

// SetListener installs l (nil removes it).
func (c *Controller) SetListener(l Listener) { c.listener = l }

func (c *Controller) State() State { return c.state }

func (c *Controller) Filter() string { return c.state.Filter }

func (c *Controller) Len() int { return len(c.projects) }

// All returns the full list in its original order.
func (c *Controller) All() []model.Project {
	return append([]model.Project(nil), c.projects...)
}

// Categories returns "all" followed by each category in first-seen order.
func (c *Controller) Categories() []string {
	return append([]string(nil), c.cats...)
}

func (c *Controller) Project(id string) (model.Project, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Project{}, false
	}
	return c.projects[i], true
}

// Selected returns the selected project, if any.
func (c *Controller) Selected() (model.Project, bool) {
	if c.state.SelectedID == "" {
		return model.Project{}, false
	}
	return c.Project(c.state.SelectedID)
}

// Position returns the index of id in the full list, or -1.
func (c *Controller) Position(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Visible applies the current filter, preserving list order.
func (c *Controller) Visible() []model.Project {
	if c.state.Filter == FilterAll {
		return c.All()
	}
	var out []model.Project
	for _, p := range c.projects {
		if p.Category == c.state.Filter {
			out = append(out, p)
		}
	}
	return out
}

// SetFilter changes the category filter. It never touches the selection.
func (c *Controller) SetFilter(category string) error {
	if category != FilterAll && !c.hasCategory(category) {
		c.log.Warn("filter by unknown category", "category", category)
		return fmt.Errorf("filter %q: %w", category, ErrUnknownCategory)
	}
	c.state.Filter = category
	return nil
}

// CycleFilter moves the filter by delta positions through Categories(),
// wrapping at both ends.
func (c *Controller) CycleFilter(delta int) string {
	cur := 0
	for i, cat := range c.cats {
		if cat == c.state.Filter {
			cur = i
			break
		}
	}
	n := len(c.cats)
	next := ((cur+delta)%n + n) % n
	c.state.Filter = c.cats[next]
	return c.state.Filter
}

func (c *Controller) hasCategory(category string) bool {
	for _, cat := range c.cats[1:] {
		if cat == category {
			return true
		}
	}
	return false
}

// SelectProject selects id from the full list and notifies the listener.
func (c *Controller) SelectProject(id string) error {
	p, ok := c.Project(id)
	if !ok {
		c.log.Warn("select unknown project", "id", id)
		return fmt.Errorf("select %q: %w", id, ErrUnknownProject)
	}
	c.state.SelectedID = id
	c.log.Debug("project selected", "id", id)
	if c.listener != nil {
		c.listener.ProjectSelected(p)
	}
	return nil
}

// ClearSelection drops the selection. Clearing an empty selection does not
// notify.
func (c *Controller) ClearSelection() {
	if c.state.SelectedID == "" {
		return
	}
	c.state.SelectedID = ""
	c.log.Debug("selection cleared")
	if c.listener != nil {
		c.listener.SelectionCleared()
	}
}

// NextProject selects the project after the current one, wrapping.
func (c *Controller) NextProject() error { return c.step(1) }

// PreviousProject selects the project before the current one, wrapping.
func (c *Controller) PreviousProject() error { return c.step(-1) }

func (c *Controller) step(delta int) error {
	n := len(c.projects)
	if n == 0 {
		return ErrEmpty
	}
	cur := c.Position(c.state.SelectedID)
	if cur < 0 {
		return ErrNoSelection
	}
	next := (cur + delta + n) % n
	return c.SelectProject(c.projects[next].ID)
}
