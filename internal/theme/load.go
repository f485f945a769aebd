package theme

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a theme file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForFile picks the encoding from the file extension.
func FormatForFile(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported theme file extension: %s", filepath.Ext(name))
	}
}

// Decode reads a theme without validating it. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (Theme, error) {
	var t Theme
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&t); err != nil {
			return Theme{}, fmt.Errorf("decode theme json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&t); err != nil {
			if errors.Is(err, io.EOF) {
				return Theme{}, fmt.Errorf("decode theme yaml: empty document")
			}
			return Theme{}, fmt.Errorf("decode theme yaml: %w", err)
		}
	default:
		return Theme{}, fmt.Errorf("unknown theme format %d", format)
	}
	return t, nil
}

// Parse decodes and validates a theme held in memory.
func Parse(data []byte, format Format) (Theme, error) {
	t, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return Theme{}, err
	}
	if err := Validate(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads and validates a JSON or YAML theme file. A theme without a
// name takes the file's base name.
func LoadFile(path string) (Theme, error) {
	format, err := FormatForFile(path)
	if err != nil {
		return Theme{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("open theme: %w", err)
	}
	defer f.Close()

	t, err := Decode(f, format)
	if err != nil {
		return Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		base := filepath.Base(path)
		t.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err := Validate(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Registry is a set of named, validated themes. It always holds Default().
// It is built once at startup and only read afterwards.
type Registry struct {
	themes map[string]Theme
}

// NewRegistry returns a registry holding only the built-in theme.
func NewRegistry() *Registry {
	return &Registry{themes: map[string]Theme{DefaultName: Default()}}
}

// LoadDir loads every .json, .yaml and .yml file in dir. An empty dir path
// yields the built-in theme only. Any invalid file fails the whole load.
func LoadDir(dir string) (*Registry, error) {
	reg := NewRegistry()
	if dir == "" {
		return reg, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read theme dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := FormatForFile(e.Name()); err != nil {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if err := reg.Add(t); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Add validates t and registers it under its name, replacing any theme with
// the same name.
func (r *Registry) Add(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme has no name")
	}
	if err := Validate(t); err != nil {
		return err
	}
	r.themes[t.Name] = t
	return nil
}

// Get returns the named theme.
func (r *Registry) Get(name string) (Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Names lists registered theme names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for n := range r.themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
