// Package format renders CLI payloads as JSON, EDN or YAML.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the accepted values of --format.
var Formats = []string{"json", "edn", "yaml"}

// Valid reports whether f names a supported format ("" means json).
func Valid(f string) bool {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "" {
		return true
	}
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Write writes v in the requested format. Field names always come from json
// tags so every format shows the same keys.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "yaml":
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteYAML is always block style; pretty has no effect.
func WriteYAML(w io.Writer, v any) error {
	x, err := toGeneric(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(x); err != nil {
		return err
	}
	return enc.Close()
}

// toGeneric round-trips v through JSON so struct json tags decide the keys.
// Numbers stay json.Number to keep integers exact.
func toGeneric(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	return fromNumbers(x), nil
}

func fromNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = fromNumbers(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = fromNumbers(t[k])
		}
		return t
	}
	return v
}
