// Package logger routes structured logs to a file. The interactive TUI owns
// stdout, so nothing here ever writes to the terminal.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	base     = slog.New(slog.NewTextHandler(io.Discard, nil))
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	logPath  string
)

// DefaultPath is used when FOLIO_LOG is unset.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "folio.log")
}

// Init opens path for appending and installs a text handler on it. Calling
// Init again replaces the previous file.
func Init(path string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = DefaultPath()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logPath = path

	if debug {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Debug("logger initialized", "path", path)
	return nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// SetDebug toggles debug-level output at runtime.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
		return
	}
	levelVar.Set(slog.LevelInfo)
}

// Get returns the process logger. Before Init it discards everything.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

// Component returns a logger tagged with a component attribute.
//
//	log := logger.Component("modal")
//	log.Debug("opened", "project", id)
func Component(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// Close flushes and closes the log file and reverts to discarding.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logPath = ""
	base = slog.New(slog.NewTextHandler(io.Discard, nil))
}
