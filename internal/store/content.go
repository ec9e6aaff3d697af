package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"folio-cli/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed content/default.yaml
var defaultContentYAML []byte

var (
	ErrInvalidContent    = errors.New("invalid content")
	ErrUnsupportedFormat = errors.New("unsupported content format")
)

// DefaultContent decodes the built-in portfolio.
func DefaultContent() (*model.Content, error) {
	c, err := decodeContent(defaultContentYAML, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("built-in content: %w", err)
	}
	return c, nil
}

// LoadContent reads a .yaml, .yml or .json portfolio. An empty path loads the
// built-in one.
func LoadContent(path string) (*model.Content, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultContent()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := decodeContent(b, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ContentRoot is the directory relative image paths resolve against. The
// built-in content resolves against the working directory.
func ContentRoot(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "."
	}
	return filepath.Dir(path)
}

func decodeContent(b []byte, ext string) (*model.Content, error) {
	var c model.Content
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
	if err := ValidateContent(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateContent reports every structural problem at once.
func ValidateContent(c *model.Content) error {
	if c == nil {
		return fmt.Errorf("nil content: %w", ErrInvalidContent)
	}
	var errs []error
	if len(c.Tabs) == 0 {
		errs = append(errs, errors.New("no tabs"))
	}
	tabIDs := map[string]bool{}
	for i, t := range c.Tabs {
		id := strings.TrimSpace(t.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("tab %d: empty id", i))
		case tabIDs[id]:
			errs = append(errs, fmt.Errorf("tab %q: duplicate id", id))
		}
		tabIDs[id] = true
		if strings.TrimSpace(t.Label) == "" {
			errs = append(errs, fmt.Errorf("tab %q: empty label", id))
		}
	}
	for id := range c.Bodies {
		if !tabIDs[id] {
			errs = append(errs, fmt.Errorf("body %q: no such tab", id))
		}
	}
	projectIDs := map[string]bool{}
	for i, p := range c.Projects {
		id := strings.TrimSpace(p.ID)
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("project %d: empty id", i))
		case projectIDs[id]:
			errs = append(errs, fmt.Errorf("project %q: duplicate id", id))
		}
		projectIDs[id] = true
		if strings.TrimSpace(p.Thumbnail) == "" {
			errs = append(errs, fmt.Errorf("project %q: missing thumbnail", id))
		}
		for j, img := range p.Images {
			if strings.TrimSpace(img) == "" {
				errs = append(errs, fmt.Errorf("project %q: image %d is empty", id, j))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
	}
	return nil
}

// ExportContent writes c to path, as JSON for .json and YAML otherwise.
func ExportContent(c *model.Content, path string) error {
	if err := ValidateContent(c); err != nil {
		return err
	}
	var (
		b   []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		b, err = json.MarshalIndent(c, "", "  ")
		if err == nil {
			b = append(b, '\n')
		}
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(c); err == nil {
			err = enc.Close()
		}
		b = buf.Bytes()
	default:
		return fmt.Errorf("%q: %w", filepath.Ext(path), ErrUnsupportedFormat)
	}
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(path)+".*.tmp", path, b, 0o644)
}
