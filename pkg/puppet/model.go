package puppet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParamSpec declares one parameter a model exposes, with the numeric
// domain the renderer accepts for it.
type ParamSpec struct {
	ID      string  `json:"id"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// Canvas is the model's native pixel dimensions, used for stage layout.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Model is a parsed puppet descriptor (*.model3.json).
type Model struct {
	Name       string      `json:"name"`
	Version    string      `json:"version"`
	Canvas     Canvas      `json:"canvas"`
	Parameters []ParamSpec `json:"parameters"`

	// Path is where the descriptor was loaded from; the renderer resolves
	// texture and mesh assets relative to it.
	Path string `json:"-"`
}

// LoadModel reads and parses a puppet descriptor from disk.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), ".model3.json")
	}
	if len(m.Parameters) == 0 {
		return nil, fmt.Errorf("model %q declares no parameters", m.Name)
	}

	m.Path = path
	return &m, nil
}
