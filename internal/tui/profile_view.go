package tui

import (
	"strings"

	"folio-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderProfileCard is the bio, skill tags and contact links shown at the top
// of the landing tab. It returns "" when the profile has none of them.
func renderProfileCard(p model.Profile, width int) string {
	if width < 1 {
		return ""
	}
	var lines []string
	if bio := strings.TrimSpace(p.Bio); bio != "" {
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(bio))
	}
	if len(p.Tags) > 0 {
		chip := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
		chips := make([]string, 0, len(p.Tags))
		for _, tag := range p.Tags {
			chips = append(chips, chip.Render(tag))
		}
		lines = append(lines, wrapChips(chips, width))
	}
	if len(p.Links) > 0 {
		labelW := 0
		for _, l := range p.Links {
			labelW = max(labelW, xansi.StringWidth(l.Label))
		}
		rows := make([]string, 0, len(p.Links))
		for _, l := range p.Links {
			label := styleAccent().Render(padOrCutANSI(l.Label, labelW))
			rows = append(rows, truncateToWidth(label+"  "+styleMuted().Render(l.URL), width))
		}
		lines = append(lines, strings.Join(rows, "\n"))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n\n")
}

// wrapChips lays chips out left to right, starting a new row when the next
// chip would not fit.
func wrapChips(chips []string, width int) string {
	var rows []string
	row, rowW := "", 0
	for _, c := range chips {
		w := xansi.StringWidth(c)
		if rowW > 0 && rowW+1+w > width {
			rows = append(rows, row)
			row, rowW = "", 0
		}
		if rowW > 0 {
			row += " "
			rowW++
		}
		row += c
		rowW += w
	}
	if row != "" {
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}
