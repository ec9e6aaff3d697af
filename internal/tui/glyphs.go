package tui

import (
	"strings"
	"sync"
)

// Terminal apps can't change the user's font, but they can pick between
// Unicode and ASCII glyphs for affordances (arrows, indicator, bullets).

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(v string) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphScrollLeft() string  { return pick("‹", "<") }
func glyphScrollRight() string { return pick("›", ">") }
func glyphIndicator() string   { return pick("━", "=") }
func glyphBullet() string      { return pick("•", "*") }
func glyphSkeleton() string    { return pick("░", ".") }
func glyphDotOn() string       { return pick("●", "#") }
func glyphDotOff() string      { return pick("○", "o") }
func glyphEllipsis() string    { return pick("…", "~") }
