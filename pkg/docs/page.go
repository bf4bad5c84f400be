package docs

import (
	"github.com/nikogura/storydocs/pkg/classify"
	"github.com/nikogura/storydocs/pkg/coverage"
	"github.com/nikogura/storydocs/pkg/props"
)

// PageKind tells a renderer whether a page has content.
type PageKind string

const (
	PageKindStory PageKind = "story"
	PageKindNone  PageKind = "none"
)

// SectionID identifies a docs tab. Renderers use it for tab selection and deep links.
type SectionID string

const (
	SectionOverview SectionID = "Overview"
	SectionProps    SectionID = "Props"
	SectionExamples SectionID = "Examples"
)

// SectionOrder is the fixed tab order.
//
//nolint:gochecknoglobals // Layout constant
var SectionOrder = []SectionID{SectionOverview, SectionProps, SectionExamples}

// Page is a composed docs page.
type Page struct {
	Kind     PageKind  `json:"kind"`
	StoryID  string    `json:"story_id,omitempty"`
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
	Feedback Feedback  `json:"feedback"`
}

// Header is the masthead above the tabs.
type Header struct {
	DisplayName  string          `json:"display_name"`
	LibraryName  string          `json:"library_name"`
	VersionLabel string          `json:"version_label"`
	Maturity     Badge           `json:"maturity"`
	Category     *Badge          `json:"category,omitempty"`
	Coverage     coverage.Scheme `json:"coverage"`
	Link         Link            `json:"link"`
}

// Badge is a coloured label.
type Badge struct {
	Value  string          `json:"value"`
	Label  string          `json:"label"`
	Colors classify.Colors `json:"colors"`
}

// Link is an external link action.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Section is one tab. Exactly one of the content fields is set, matching ID.
type Section struct {
	ID       SectionID        `json:"id"`
	Overview *OverviewContent `json:"overview,omitempty"`
	Props    *PropsContent    `json:"props,omitempty"`
	Examples *ExamplesContent `json:"examples,omitempty"`
}

// OverviewContent holds the rendered overview document, nil when the story
// has none, and the current story shown as the usage example.
type OverviewContent struct {
	Content *string `json:"content,omitempty"`
	Canvas  Example `json:"canvas"`
}

// PropsContent holds the partitioned props tables. AccessibilityNote is set
// when the accessibility table is empty and is shown in its place.
type PropsContent struct {
	General           []props.Prop `json:"general"`
	Accessibility     []props.Prop `json:"accessibility"`
	AccessibilityNote string       `json:"accessibility_note,omitempty"`
}

// ExamplesContent is the gallery of a component's stories.
type ExamplesContent struct {
	Stories []Example `json:"stories"`
}

// Example is one story in a gallery or canvas.
type Example struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// Feedback is the support footer.
type Feedback struct {
	Message string `json:"message"`
	Links   []Link `json:"links,omitempty"`
}

// Section returns the section with the given id.
func (p Page) Section(id SectionID) (section Section, ok bool) {
	for _, s := range p.Sections {
		if s.ID == id {
			section = s
			ok = true
			return section, ok
		}
	}
	return section, ok
}
