package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxWidth = 76
	imagePaneRows = 5
)

func (m appModel) modalWidth() int {
	w := m.width - 4
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// modalView renders the project viewer box.
func (m appModel) modalView() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)
	w := m.modalWidth()
	inner := w - box.GetHorizontalFrameSize()

	p := m.modal.Project()
	var parts []string

	title := styleAccent().Render(p.Title)
	if p.Category != "" {
		title += styleMuted().Render("  " + p.Category)
	}
	parts = append(parts, truncateToWidth(title, inner))

	var meta []string
	if p.Year != "" {
		meta = append(meta, p.Year)
	}
	if p.Duration != "" {
		meta = append(meta, p.Duration)
	}
	if len(meta) > 0 {
		parts = append(parts, styleMuted().Render(strings.Join(meta, "  "+glyphBullet()+"  ")))
	}

	parts = append(parts, "", m.imagePane(inner), m.imageDots(inner), "")

	desc := p.LongDescription
	if desc == "" {
		desc = p.Description
	}
	if desc != "" {
		parts = append(parts, lipgloss.NewStyle().Width(inner).Render(desc), "")
	}
	if len(p.Tools) > 0 {
		parts = append(parts, lipgloss.NewStyle().Width(inner).Render(
			styleMuted().Render("Tools: ")+strings.Join(p.Tools, ", ")))
	}
	if p.Links.Live != "" {
		parts = append(parts, styleMuted().Render("Live:   ")+truncateToWidth(p.Links.Live, inner-8))
	}
	if p.Links.Source != "" {
		parts = append(parts, styleMuted().Render("Source: ")+truncateToWidth(p.Links.Source, inner-8))
	}

	parts = append(parts, "", m.modalControls(inner))
	m.help.Width = inner
	parts = append(parts, m.help.ShortHelpView(m.modalKeys.ShortHelp()))

	return box.Width(w - box.GetHorizontalBorderSize()).Render(strings.Join(parts, "\n"))
}

// imagePane stands in for the picture: a skeleton while loading, then the
// image's name, format and size (or why it could not be read).
func (m appModel) imagePane(width int) string {
	pane := lipgloss.NewStyle().
		Width(width).
		Height(imagePaneRows).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case m.modal.ImageLoading() || !m.imageLoaded:
		fill := lipgloss.NewStyle().Foreground(colorSkeleton).Render(strings.Repeat(glyphSkeleton(), width))
		rows := make([]string, imagePaneRows)
		for i := range rows {
			rows[i] = fill
		}
		rows[imagePaneRows/2] = lipgloss.PlaceHorizontal(width, lipgloss.Center, styleMuted().Render("loading"+glyphEllipsis()))
		return strings.Join(rows, "\n")
	case m.image.Err != nil:
		return pane.Foreground(colorError).Render(truncateToWidth(m.image.summary(), width))
	default:
		return pane.Render(truncateToWidth(m.image.summary(), width))
	}
}

// imageDots shows one dot per image and the position, e.g. "● ○ ○  1/3".
func (m appModel) imageDots(width int) string {
	n := m.modal.TotalImages()
	cur := m.modal.ImageIndex()
	dots := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i == cur {
			dots = append(dots, styleAccent().Render(glyphDotOn()))
		} else {
			dots = append(dots, styleMuted().Render(glyphDotOff()))
		}
	}
	line := strings.Join(dots, " ") + styleMuted().Render(fmt.Sprintf("  %d/%d", cur+1, n))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, truncateToWidth(line, width))
}

func (m appModel) modalControls(width int) string {
	off := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	on := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorAccentFg).Background(colorAccent)

	var btns []string
	for f := focusPrevImage; f < modalFocusCount; f++ {
		st := off
		if f == m.focus {
			st = on
		}
		btns = append(btns, st.Render(f.label()))
	}
	return truncateToWidth(strings.Join(btns, " "), width)
}
