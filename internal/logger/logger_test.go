package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGet_BeforeInitDiscards(t *testing.T) {
	Close()
	// Must not panic or write anywhere.
	Get().Info("nobody hears this")
	if Path() != "" {
		t.Fatalf("expected empty path before Init, got %q", Path())
	}
}

func TestInit_WritesComponentLines(t *testing.T) {
	t.Cleanup(Close)

	path := filepath.Join(t.TempDir(), "folio.log")
	if err := Init(path, true); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Component("tabs").Debug("selected", "id", "skills")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "component=tabs") || !strings.Contains(out, "id=skills") {
		t.Fatalf("expected component line in log, got:\n%s", out)
	}
}

func TestSetDebug_FiltersDebugLines(t *testing.T) {
	t.Cleanup(Close)

	path := filepath.Join(t.TempDir(), "folio.log")
	if err := Init(path, false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Get().Debug("hidden-line")
	SetDebug(true)
	Get().Debug("visible-line")

	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "hidden-line") {
		t.Fatalf("debug line written at info level")
	}
	if !strings.Contains(string(b), "visible-line") {
		t.Fatalf("debug line missing after SetDebug(true)")
	}
}

func TestInit_BadPath(t *testing.T) {
	t.Cleanup(Close)
	if err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), false); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}
