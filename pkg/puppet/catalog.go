package puppet

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// Entry is one catalog row surfaced to the model-switcher UI.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Catalog is a read-only enumeration of the puppet models found in the
// asset directory. It is built once at startup; switching the selection
// reloads the puppet but never touches the rig's smoothing state.
type Catalog struct {
	entries []Entry
	byID    map[string]*Model
}

// ScanCatalog loads every *.model3.json descriptor under dir.
func ScanCatalog(dir string) (*Catalog, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.model3.json"))
	if err != nil {
		return nil, fmt.Errorf("list model files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no puppet models in %s", dir)
	}
	sort.Strings(files)

	c := &Catalog{byID: make(map[string]*Model)}
	for _, file := range files {
		model, err := LoadModel(file)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
		id := uuid.NewString()
		c.entries = append(c.entries, Entry{ID: id, Name: model.Name, Path: file})
		c.byID[id] = model
	}

	return c, nil
}

// Entries returns the catalog rows in scan order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Get returns the model for a catalog id.
func (c *Catalog) Get(id string) (*Model, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// First returns the default selection, the first model found.
func (c *Catalog) First() *Model {
	if len(c.entries) == 0 {
		return nil
	}
	return c.byID[c.entries[0].ID]
}
