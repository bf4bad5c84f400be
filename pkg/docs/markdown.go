package docs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nikogura/storydocs/pkg/props"
)

const (
	propsIntro = "This table contains the Mandatory (marked with *) and Optional props for this component. " +
		"Subcomponent props can be found in the additional tabs below."
	accessibilityIntro = "This table contains the supported ARIA (Accessibility) props for this component."
)

//nolint:gochecknoglobals // Markdown escaping table
var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// Markdown renders the page as a Markdown document. Pages of kind
// PageKindNone render as the empty string.
func (p Page) Markdown() (md string) {
	if p.Kind != PageKindStory {
		return md
	}

	var b strings.Builder
	writeHeader(&b, p.Header)

	md = b.String() + p.BodyMarkdown()
	return md
}

// BodyMarkdown renders the tabs and the feedback footer without the header.
func (p Page) BodyMarkdown() (md string) {
	if p.Kind != PageKindStory {
		return md
	}

	var b strings.Builder

	for _, section := range p.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section.ID)
		switch {
		case section.Overview != nil:
			writeOverview(&b, *section.Overview)
		case section.Props != nil:
			writeProps(&b, *section.Props)
		case section.Examples != nil:
			writeExamples(&b, *section.Examples)
		}
	}

	b.WriteString("## Support and Feedback\n\n")
	b.WriteString(p.Feedback.Message)
	b.WriteString("\n")
	if len(p.Feedback.Links) > 0 {
		b.WriteString("\n")
		for _, link := range p.Feedback.Links {
			fmt.Fprintf(&b, "- [%s](%s)\n", link.Label, link.URL)
		}
	}

	md = b.String()
	return md
}

func writeHeader(b *strings.Builder, h Header) {
	fmt.Fprintf(b, "# %s\n\n", h.DisplayName)

	labels := make([]string, 0, 2)
	for _, badge := range h.Badges() {
		labels = append(labels, "`"+badge.Label+"`")
	}
	fmt.Fprintf(b, "**%s** · %s\n\n", h.LibraryName, strings.Join(labels, " · "))
	fmt.Fprintf(b, "%s · Code Coverage: `%s`\n\n", h.VersionLabel, h.Coverage.Label)
	fmt.Fprintf(b, "[%s](%s)\n\n", h.Link.Label, h.Link.URL)
}

func writeOverview(b *strings.Builder, o OverviewContent) {
	if o.Content != nil {
		b.WriteString(strings.TrimSpace(*o.Content))
		b.WriteString("\n\n")
	}

	b.WriteString("### Usage Examples\n\n")
	writeExample(b, o.Canvas)
}

func writeProps(b *strings.Builder, p PropsContent) {
	b.WriteString("### Props\n\n")
	b.WriteString(propsIntro)
	b.WriteString("\n\n")
	writePropsTable(b, p.General)

	b.WriteString("### Accessibility Props\n\n")
	b.WriteString(accessibilityIntro)
	b.WriteString("\n\n")
	if p.AccessibilityNote != "" {
		fmt.Fprintf(b, "> **Note:** %s\n\n", p.AccessibilityNote)
		return
	}
	writePropsTable(b, p.Accessibility)
}

func writePropsTable(b *strings.Builder, list []props.Prop) {
	if len(list) == 0 {
		b.WriteString("_No props._\n\n")
		return
	}

	b.WriteString("| Name | Type | Default | Description |\n")
	b.WriteString("|------|------|---------|-------------|\n")
	for _, prop := range list {
		name := prop.Name
		if prop.Required {
			name += " *"
		}
		fmt.Fprintf(b, "| %s | `%s` | %s | %s |\n",
			cellEscaper.Replace(name),
			cellEscaper.Replace(prop.Type),
			cellEscaper.Replace(prop.Default),
			cellEscaper.Replace(prop.Description))
	}
	b.WriteString("\n")
}

func writeExamples(b *strings.Builder, e ExamplesContent) {
	for _, example := range e.Stories {
		fmt.Fprintf(b, "### %s\n\n", example.Name)
		writeArgs(b, example.Args)
	}
}

func writeExample(b *strings.Builder, example Example) {
	fmt.Fprintf(b, "**%s**\n\n", example.Name)
	writeArgs(b, example.Args)
}

func writeArgs(b *strings.Builder, args map[string]any) {
	if len(args) == 0 {
		return
	}

	data, err := json.MarshalIndent(args, "", "  ")
	if err != nil {
		fmt.Fprintf(b, "> **Args unavailable:** %s\n\n", err)
		return
	}

	b.WriteString("```json\n")
	b.Write(data)
	b.WriteString("\n```\n\n")
}
