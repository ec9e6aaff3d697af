package tui

import (
	"fmt"
	"io"
	"strings"

	"folio-cli/internal/gallery"
	"folio-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type projectItem struct {
	project model.Project
}

func (i projectItem) FilterValue() string { return i.project.Title }

type cardDelegate struct {
	normalCard   lipgloss.Style
	selectedCard lipgloss.Style
	titleStyle   lipgloss.Style
	metaStyle    lipgloss.Style
}

func newCardDelegate() cardDelegate {
	base := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)
	return cardDelegate{
		normalCard:   base,
		selectedCard: base.BorderForeground(colorSelectedBorder),
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		metaStyle:    lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func (d cardDelegate) Height() int  { return 5 } // 3 inner lines + border
func (d cardDelegate) Spacing() int { return 1 }
func (d cardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(projectItem)
	if !ok || m.Width() < 12 {
		return
	}
	card := d.normalCard
	title := d.titleStyle
	if index == m.Index() {
		card = d.selectedCard
		title = title.Foreground(colorAccent)
	}
	innerW := m.Width() - card.GetHorizontalFrameSize()
	if innerW < 1 {
		innerW = 1
	}

	p := it.project
	meta := p.Category
	if n := p.ImageCount(); n > 1 {
		meta += fmt.Sprintf("  %s %d images", glyphBullet(), n)
	}
	if len(p.Tools) > 0 {
		meta += fmt.Sprintf("  %s %s", glyphBullet(), strings.Join(p.Tools, ", "))
	}
	lines := []string{
		title.Render(truncateToWidth(p.Title, innerW)),
		d.metaStyle.Render(truncateToWidth(meta, innerW)),
		truncateToWidth(p.Description, innerW),
	}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], innerW)
	}
	fmt.Fprint(w, card.Width(innerW+card.GetHorizontalPadding()).Render(strings.Join(lines, "\n")))
}

func newGalleryList() list.Model {
	l := list.New(nil, newCardDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// cardRows is the vertical space one card takes in the list.
func cardRows() int {
	d := newCardDelegate()
	return d.Height() + d.Spacing()
}

// syncGalleryList loads the visible projects into l, sized so every card
// fits on one page (the page itself scrolls), and keeps the cursor on the
// same project when it is still visible.
func syncGalleryList(l *list.Model, g *gallery.Controller, width int) {
	curID := ""
	if it, ok := l.SelectedItem().(projectItem); ok {
		curID = it.project.ID
	}
	vis := g.Visible()
	items := make([]list.Item, 0, len(vis))
	for _, p := range vis {
		items = append(items, projectItem{project: p})
	}
	l.SetItems(items)
	h := len(items) * cardRows()
	if h < 1 {
		h = 1
	}
	l.SetSize(width, h)
	if curID != "" {
		selectProjectByID(l, curID)
	}
}

func selectProjectByID(l *list.Model, id string) bool {
	for i, it := range l.Items() {
		if pi, ok := it.(projectItem); ok && pi.project.ID == id {
			l.Select(i)
			return true
		}
	}
	return false
}

func selectedProjectID(l list.Model) (string, bool) {
	it, ok := l.SelectedItem().(projectItem)
	if !ok {
		return "", false
	}
	return it.project.ID, true
}

// renderFilterBar draws the category chips with the active one highlighted.
func renderFilterBar(g *gallery.Controller, width int) string {
	on := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)
	off := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)

	var chips []string
	for _, c := range g.Categories() {
		label := c
		if c == gallery.FilterAll {
			label = "All"
		}
		if c == g.Filter() {
			chips = append(chips, on.Render(label))
		} else {
			chips = append(chips, off.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(chips, " "))
}
