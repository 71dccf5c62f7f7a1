package samples

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/yoanbernabeu/toonbench/bench"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSampleFile is returned when a sample file cannot be used.
var ErrInvalidSampleFile = errors.New("samples: invalid sample file")

// File is the YAML layout of a sample set.
type File struct {
	Samples []Entry `yaml:"samples"`
}

// Entry is one sample in a sample file. TOON is derived from JSON when empty.
type Entry struct {
	Name string `yaml:"name"`
	JSON string `yaml:"json"`
	TOON string `yaml:"toon,omitempty"`
}

// LoadFile reads a YAML sample set from path.
func LoadFile(path string) ([]bench.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("samples: read %s: %w", path, err)
	}
	out, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Parse decodes a YAML sample set. Names must be present and unique, JSON
// text must be valid, and the set must not be empty.
func Parse(data []byte) ([]bench.Sample, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleFile, err)
	}
	if len(f.Samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInvalidSampleFile)
	}

	seen := make(map[string]bool, len(f.Samples))
	out := make([]bench.Sample, 0, len(f.Samples))
	for i, e := range f.Samples {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: sample %d has no name", ErrInvalidSampleFile, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate sample name %q", ErrInvalidSampleFile, name)
		}
		seen[name] = true

		if strings.TrimSpace(e.JSON) == "" {
			return nil, fmt.Errorf("%w: sample %q has no json text", ErrInvalidSampleFile, name)
		}
		if !json.Valid([]byte(e.JSON)) {
			return nil, fmt.Errorf("%w: sample %q: json text is not valid JSON", ErrInvalidSampleFile, name)
		}

		toon := e.TOON
		if toon == "" {
			derived, err := DeriveTOON(e.JSON)
			if err != nil {
				return nil, fmt.Errorf("%w: sample %q: %v", ErrInvalidSampleFile, name, err)
			}
			toon = derived
		}
		out = append(out, bench.Sample{Name: name, A: e.JSON, B: toon})
	}
	return out, nil
}

// DeriveTOON converts JSON text to TOON.
func DeriveTOON(jsonText string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(jsonText), &v); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	out, err := gotoon.Encode(v)
	if err != nil {
		return "", fmt.Errorf("encode toon: %w", err)
	}
	return out, nil
}

// Marshal renders samples as a YAML sample file.
func Marshal(set []bench.Sample) ([]byte, error) {
	f := File{Samples: make([]Entry, len(set))}
	for i, s := range set {
		f.Samples[i] = Entry{Name: s.Name, JSON: s.A, TOON: s.B}
	}
	out, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("samples: marshal: %w", err)
	}
	return out, nil
}
