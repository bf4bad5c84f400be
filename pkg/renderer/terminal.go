package renderer

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikogura/storydocs/pkg/classify"
	"github.com/nikogura/storydocs/pkg/docs"
	"github.com/pkg/errors"
)

// TerminalOptions configures terminal output.
type TerminalOptions struct {
	// Style is a glamour style name ("auto", "dark", "light", "notty").
	Style    string
	WordWrap int
}

func chip(label string, colors classify.Colors) (rendered string) {
	style := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(lipgloss.Color(colors.Background)).
		Foreground(lipgloss.Color(colors.Foreground))
	rendered = style.Render(label)
	return rendered
}

// TerminalHeader renders the page masthead with coloured badges.
func TerminalHeader(h docs.Header) (out string) {
	heading := lipgloss.NewStyle().Bold(true)
	muted := lipgloss.NewStyle().Faint(true)

	badges := make([]string, 0, 2)
	for _, badge := range h.Badges() {
		badges = append(badges, chip(badge.Label, badge.Colors))
	}

	lines := []string{
		muted.Render(h.LibraryName) + "  " + strings.Join(badges, " "),
		heading.Render(h.DisplayName),
		muted.Render(h.VersionLabel) + "  Code Coverage: " + chip(h.Coverage.Label, h.Coverage.Colors),
		h.Link.Label + ": " + h.Link.URL,
	}

	out = strings.Join(lines, "\n") + "\n"
	return out
}

// Terminal renders a page for a terminal: a lipgloss masthead followed by
// the tabs rendered through glamour.
func Terminal(page docs.Page, opts TerminalOptions) (out string, err error) {
	if page.Kind != docs.PageKindStory {
		return out, err
	}

	if opts.WordWrap <= 0 {
		opts.WordWrap = 80
	}

	styleOpt := glamour.WithAutoStyle()
	if opts.Style != "" && opts.Style != "auto" {
		styleOpt = glamour.WithStylePath(opts.Style)
	}

	var r *glamour.TermRenderer
	r, err = glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(opts.WordWrap))
	if err != nil {
		err = errors.Wrap(err, "failed to create terminal renderer")
		return out, err
	}

	var body string
	body, err = r.Render(page.BodyMarkdown())
	if err != nil {
		err = errors.Wrap(err, "failed to render page body")
		return out, err
	}

	out = TerminalHeader(page.Header) + body
	return out, err
}
