package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall. height <= 0 keeps the line count.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = padOrCutANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// padOrCutANSI pads or truncates one line to exactly width cells.
func padOrCutANSI(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + glyphEllipsis()
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// shiftLines moves every line dx cells right (dx > 0) or left (dx < 0)
// inside a pane of the given width.
func shiftLines(s string, dx, width int) string {
	if dx == 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		if dx > 0 {
			ln = strings.Repeat(" ", dx) + ln
		} else {
			ln = xansi.Cut(ln, -dx, -dx+width)
		}
		lines[i] = padOrCutANSI(ln, width)
	}
	return strings.Join(lines, "\n")
}

func truncateToWidth(s string, w int) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if w <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, w-1) + glyphEllipsis()
}
