package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.modal.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}

	strip := m.strip.View(m.tabs.ActiveID(), m.coord.Geometry(), m.coord.Affordance(), m.coord.Measured())
	if strip == "" {
		strip = "\n"
	}
	return strings.Join([]string{
		m.headerView(),
		normalizePane(strip, m.width, 2),
		normalizePane(m.page.View(), m.width, m.page.vp.Height),
		m.footerView(),
	}, "\n")
}

// headerView is the profile line: name and role on the left, theme on the
// right.
func (m appModel) headerView() string {
	p := m.content.Profile
	left := " " + styleAccent().Render(p.Name)
	if p.Role != "" {
		left += styleMuted().Render("  " + glyphBullet() + "  " + p.Role)
	}
	if p.Location != "" {
		left += styleMuted().Render("  " + glyphBullet() + "  " + p.Location)
	}
	right := styleMuted().Render(m.theme.Value() + " ")

	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return padOrCutANSI(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}
