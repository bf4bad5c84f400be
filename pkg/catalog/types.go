package catalog

import (
	"encoding/json"
	"time"

	"github.com/nikogura/storydocs/pkg/coverage"
	"github.com/nikogura/storydocs/pkg/props"
	"github.com/nikogura/storydocs/pkg/story"
)

// File is one component's catalog file as stored on disk.
type File struct {
	Title      string          `json:"title"`
	Category   string          `json:"category,omitempty"`
	Maturity   string          `json:"maturity,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
	Props      props.Catalog   `json:"props,omitempty"`
	Stories    []StoryEntry    `json:"stories"`
}

// StoryEntry is a single story inside a catalog file.
type StoryEntry struct {
	Name       string          `json:"name"`
	ID         string          `json:"id,omitempty"`
	Category   string          `json:"category,omitempty"`
	Maturity   string          `json:"maturity,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
	Args       map[string]any  `json:"args,omitempty"`
}

// Component is a loaded catalog file: its stories resolved to descriptors.
type Component struct {
	Title   string
	Path    string
	Props   props.Catalog
	Stories []story.Descriptor
}

// Story returns the story with the given id or name.
func (c Component) Story(idOrName string) (d story.Descriptor, ok bool) {
	for _, s := range c.Stories {
		if s.ID == idOrName || s.Name == idOrName {
			d = s
			ok = true
			return d, ok
		}
	}
	return d, ok
}

// Index summarises every component found under a catalog root.
type Index struct {
	Components []IndexedComponent `json:"components"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Version    string             `json:"version"`
}

// IndexedComponent is the classification summary of one component.
type IndexedComponent struct {
	Title        string         `json:"title"`
	DisplayName  string         `json:"display_name"`
	Maturity     string         `json:"maturity"`
	Category     string         `json:"category"`
	CodeCoverage *float64       `json:"code_coverage,omitempty"`
	CoverageBand coverage.Level `json:"coverage_band"`
	Stories      int            `json:"stories"`
	Path         string         `json:"path"`
}
