// Package docs composes the documentation page of a cataloged component:
// a classification header and the fixed Overview, Props and Examples tabs.
package docs

import (
	"encoding/json"

	"github.com/nikogura/storydocs/pkg/classify"
	"github.com/nikogura/storydocs/pkg/coverage"
	"github.com/nikogura/storydocs/pkg/props"
	"github.com/nikogura/storydocs/pkg/story"
	"github.com/pkg/errors"
)

// DefaultRepositoryURL is the link action target when none is configured.
const DefaultRepositoryURL = "https://github.com/Jscrips/storybook/"

// DefaultLibraryName is shown above the component name.
const DefaultLibraryName = "T Mike's Library"

// Settings are the page values that do not depend on the story.
type Settings struct {
	LibraryName   string
	Version       string
	RepositoryURL string
	FeedbackLinks []Link
}

// Composer builds docs pages. It holds no per-page state.
type Composer struct {
	settings Settings
}

// NewComposer creates a composer, filling unset settings with defaults.
func NewComposer(settings Settings) (composer *Composer) {
	if settings.LibraryName == "" {
		settings.LibraryName = DefaultLibraryName
	}
	if settings.RepositoryURL == "" {
		settings.RepositoryURL = DefaultRepositoryURL
	}

	composer = &Composer{settings: settings}
	return composer
}

// Compose builds the page for of. siblings are the catalog's stories, used
// for the Examples gallery; catalog is the component's props catalog.
//
// A MetaOf target yields an empty page of kind PageKindNone. An error from
// the story's overview renderer is returned unmodified.
func (c *Composer) Compose(of story.Of, siblings []story.Descriptor, catalog props.Catalog) (page Page, err error) {
	switch target := of.(type) {
	case story.StoryOf:
		page, err = c.composeStory(target.Story, siblings, catalog)
		return page, err
	case story.MetaOf:
		page = Page{Kind: PageKindNone}
		return page, err
	default:
		err = errors.Errorf("unsupported docs target %T", of)
		return page, err
	}
}

func (c *Composer) composeStory(d story.Descriptor, siblings []story.Descriptor, catalog props.Catalog) (page Page, err error) {
	var overview OverviewContent
	overview, err = composeOverview(d)
	if err != nil {
		return page, err
	}

	var examples *ExamplesContent
	examples, err = composeExamples(d, siblings)
	if err != nil {
		return page, err
	}

	sections := make([]Section, 0, len(SectionOrder))
	for _, id := range SectionOrder {
		section := Section{ID: id}
		switch id {
		case SectionOverview:
			section.Overview = &overview
		case SectionProps:
			section.Props = composeProps(catalog)
		case SectionExamples:
			section.Examples = examples
		}
		sections = append(sections, section)
	}

	page = Page{
		Kind:     PageKindStory,
		StoryID:  d.ID,
		Header:   c.header(d),
		Sections: sections,
		Feedback: c.feedback(d),
	}

	return page, err
}

func (c *Composer) header(d story.Descriptor) (header Header) {
	maturity, category := ClassificationBadges(d.Classification())

	header = Header{
		DisplayName:  DisplayName(d.Title),
		LibraryName:  c.settings.LibraryName,
		VersionLabel: versionLabel(c.settings.Version),
		Maturity:     maturity,
		Category:     category,
		Coverage:     coverage.Band(d.Parameters.CodeCoverage()),
		Link: Link{
			Label: "Github",
			URL:   c.settings.RepositoryURL,
		},
	}

	return header
}

// ClassificationBadges returns the maturity badge and, when the category
// has one, the category badge.
func ClassificationBadges(c classify.Classification) (maturity Badge, category *Badge) {
	maturity = Badge{
		Value:  string(c.Maturity),
		Label:  c.Maturity.Label(),
		Colors: c.Maturity.Colors(),
	}

	if c.Category.HasBadge() {
		category = &Badge{
			Value:  string(c.Category),
			Label:  c.Category.Label(),
			Colors: c.Category.Colors(),
		}
	}

	return maturity, category
}

func versionLabel(version string) (label string) {
	if version == "" {
		version = "unknown"
	}
	label = "Version: " + version
	return label
}

func composeOverview(d story.Descriptor) (overview OverviewContent, err error) {
	overview.Canvas = exampleOf(d)

	if !d.Parameters.HasOverview() {
		return overview, err
	}

	var content string
	content, err = d.Parameters.Overview()
	if err != nil {
		return overview, err
	}

	overview.Content = &content
	return overview, err
}

func composeProps(catalog props.Catalog) (content *PropsContent) {
	general, accessibility := props.Partition(catalog)

	content = &PropsContent{
		General:       general,
		Accessibility: accessibility,
	}
	if len(accessibility) == 0 {
		content.AccessibilityNote = props.AccessibilityFallback
	}

	return content
}

// composeExamples gathers every story sharing d's component title, in
// catalog order. d itself is used when no sibling matches. Args must be
// JSON-encodable, since every renderer shows them as JSON.
func composeExamples(d story.Descriptor, siblings []story.Descriptor) (content *ExamplesContent, err error) {
	content = &ExamplesContent{Stories: make([]Example, 0, len(siblings))}

	for _, s := range siblings {
		if s.Title == d.Title {
			content.Stories = append(content.Stories, exampleOf(s))
		}
	}

	if len(content.Stories) == 0 {
		content.Stories = append(content.Stories, exampleOf(d))
	}

	for _, example := range content.Stories {
		if len(example.Args) == 0 {
			continue
		}
		_, err = json.Marshal(example.Args)
		if err != nil {
			err = errors.Wrapf(err, "story %s has args that cannot be encoded", example.ID)
			return content, err
		}
	}

	return content, err
}

func exampleOf(d story.Descriptor) (example Example) {
	example = Example{
		ID:   d.ID,
		Name: d.Name,
		Args: d.Args,
	}
	return example
}

func (c *Composer) feedback(d story.Descriptor) (feedback Feedback) {
	feedback = Feedback{
		Message: "Get Live Support. Help Us Improve " + DisplayName(d.Title) +
			" and The Component Library by leaving feedback!",
		Links: c.settings.FeedbackLinks,
	}
	return feedback
}

// Badges returns the header badges in display order.
func (h Header) Badges() (badges []Badge) {
	badges = []Badge{h.Maturity}
	if h.Category != nil {
		badges = append(badges, *h.Category)
	}
	return badges
}
