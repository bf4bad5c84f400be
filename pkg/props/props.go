// Package props splits a component's props catalog into the general and
// accessibility tables of the docs page.
package props

import (
	"regexp"
	"sort"
)

// Prop describes a single component prop.
type Prop struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Catalog maps prop names to their metadata.
type Catalog map[string]Prop

// AccessibilityFallback is shown instead of an empty accessibility table.
const AccessibilityFallback = "If this table is empty, it means that this component does not currently support " +
	"accessibility props. Complex components may accept ARIA props on subcomponents instead; please select " +
	"their respective documentation tabs below or refer to the subcomponents' main docs page for details."

// accessibilityPattern selects accessibility props. Both tables use it, so
// every prop lands in exactly one of them.
//
//nolint:gochecknoglobals // Compiled once
var accessibilityPattern = regexp.MustCompile(`(?i)(aria-|accessible)`)

// IsAccessibility reports whether name belongs in the accessibility table.
func IsAccessibility(name string) (ok bool) {
	ok = accessibilityPattern.MatchString(name)
	return ok
}

// Partition splits the catalog into general and accessibility props, each
// sorted required-first then by name.
func Partition(catalog Catalog) (general, accessibility []Prop) {
	general = make([]Prop, 0, len(catalog))
	accessibility = make([]Prop, 0)

	for name, prop := range catalog {
		prop.Name = name
		if IsAccessibility(name) {
			accessibility = append(accessibility, prop)
			continue
		}
		general = append(general, prop)
	}

	sortRequiredFirst(general)
	sortRequiredFirst(accessibility)

	return general, accessibility
}

func sortRequiredFirst(list []Prop) {
	sort.Slice(list, func(i, j int) (less bool) {
		if list[i].Required != list[j].Required {
			less = list[i].Required
			return less
		}
		less = list[i].Name < list[j].Name
		return less
	})
}
