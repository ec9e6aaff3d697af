// Package theme holds the dark/light preference shared by the whole session.
//
// A Preference is created once at startup, passed explicitly to whatever
// needs it, and only ever changed through Toggle (or Set). Every change is
// written back to Storage under StorageKey.
package theme

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "portfolio-theme"

const (
	ValueDark  = "dark"
	ValueLight = "light"
)

var ErrNoStorage = errors.New("theme: no storage")

// Storage is a string key-value store.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Source records where the initial value came from.
type Source string

const (
	SourceStored   Source = "stored"
	SourceOverride Source = "override"
	SourceSystem   Source = "system"
	SourceDefault  Source = "default"
)

type Options struct {
	// Override is light, dark or auto (empty means auto). It is consulted only
	// when nothing is stored.
	Override string
	// Probe reports the system preference; nil uses DetectSystem.
	Probe  func() (dark bool, ok bool)
	Logger *slog.Logger
}

type Preference struct {
	store  Storage
	log    *slog.Logger
	dark   bool
	source Source
	subs   map[int]func(dark bool)
	nextID int
}

// Load resolves the initial preference: the stored value, then the override,
// then the system preference, then light. The resolved value is persisted.
func Load(s Storage, opts Options) (*Preference, error) {
	if s == nil {
		return nil, ErrNoStorage
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	p := &Preference{store: s, log: log, subs: map[int]func(bool){}}

	v, ok, err := s.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", StorageKey, err)
	}
	switch {
	case ok:
		// Anything other than "dark" reads as light.
		p.dark = strings.TrimSpace(v) == ValueDark
		p.source = SourceStored
	default:
		p.dark, p.source = resolveUnstored(opts)
	}
	log.Debug("theme resolved", "dark", p.dark, "source", p.source)

	if err := p.persist(); err != nil {
		return nil, err
	}
	return p, nil
}

func resolveUnstored(opts Options) (bool, Source) {
	switch strings.ToLower(strings.TrimSpace(opts.Override)) {
	case ValueDark:
		return true, SourceOverride
	case ValueLight:
		return false, SourceOverride
	}
	probe := opts.Probe
	if probe == nil {
		probe = DetectSystem
	}
	if dark, ok := probe(); ok {
		return dark, SourceSystem
	}
	return false, SourceDefault
}

func (p *Preference) IsDark() bool { return p.dark }

// Source is where the value came from at Load time.
func (p *Preference) Source() Source { return p.source }

// Value is "dark" or "light".
func (p *Preference) Value() string {
	if p.dark {
		return ValueDark
	}
	return ValueLight
}

// Toggle flips the preference and persists it. The in-memory value only
// changes when the write succeeds.
func (p *Preference) Toggle() error {
	return p.Set(!p.dark)
}

func (p *Preference) Set(dark bool) error {
	prev := p.dark
	p.dark = dark
	if err := p.persist(); err != nil {
		p.dark = prev
		return err
	}
	if prev != dark {
		p.log.Info("theme changed", "value", p.Value())
		for _, fn := range p.subs {
			fn(dark)
		}
	}
	return nil
}

// Subscribe registers fn for changes. The returned func unsubscribes.
func (p *Preference) Subscribe(fn func(dark bool)) func() {
	p.nextID++
	id := p.nextID
	p.subs[id] = fn
	return func() { delete(p.subs, id) }
}

func (p *Preference) persist() error {
	if err := p.store.Set(StorageKey, p.Value()); err != nil {
		p.log.Warn("persist theme failed", "err", err)
		return fmt.Errorf("write %s: %w", StorageKey, err)
	}
	return nil
}
