// Package story models cataloged component stories.
package story

import (
	"strings"
	"unicode"

	"github.com/nikogura/storydocs/pkg/classify"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Descriptor is one story: a named example configuration of a component.
type Descriptor struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Name       string            `json:"name"`
	Category   classify.Category `json:"category,omitempty"`
	Maturity   classify.Maturity `json:"maturity,omitempty"`
	Parameters Parameters        `json:"parameters"`
	Args       map[string]any    `json:"args,omitempty"`
}

// Classification resolves explicit fields first, then the title keywords.
func (d Descriptor) Classification() (c classify.Classification) {
	explicit := classify.Classification{Maturity: d.Maturity, Category: d.Category}
	c = classify.Resolve(explicit, d.Title)
	return c
}

// Of is what a docs block is rendered for: a single story or a component's meta.
type Of interface {
	of()
}

// StoryOf selects a story.
type StoryOf struct {
	Story Descriptor
}

// MetaOf selects a component's meta. Docs blocks render nothing for it.
type MetaOf struct {
	Title string
}

func (StoryOf) of() {}
func (MetaOf) of()  {}

// ID builds a story id in the "component-path--story-name" form.
func ID(title, name string) (id string) {
	id = sanitize(title) + "--" + sanitize(name)
	return id
}

// ValidID reports whether id is already in the form ID produces: two
// non-empty lowercase slugs of letters, digits and single dashes, joined by "--".
func ValidID(id string) (ok bool) {
	component, name, found := strings.Cut(id, "--")
	if !found || component == "" || name == "" {
		return ok
	}
	ok = sanitize(component) == component && sanitize(name) == name
	return ok
}

func sanitize(s string) (sanitized string) {
	sanitized = strings.ToLower(s)

	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}

// NameFromExport turns an export name such as "primaryButton" or
// "with_icon" into "Primary Button" / "With Icon". Names that already
// contain spaces are returned unchanged.
func NameFromExport(export string) (name string) {
	if strings.Contains(export, " ") {
		name = export
		return name
	}

	caser := cases.Title(language.English, cases.NoLower)
	words := splitWords(export)
	for i, w := range words {
		words[i] = caser.String(w)
	}

	name = strings.Join(words, " ")
	return name
}

func splitWords(s string) (words []string) {
	runes := []rune(s)
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}
