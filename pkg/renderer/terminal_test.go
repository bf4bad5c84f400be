package renderer

import (
	"testing"

	"github.com/nikogura/storydocs/pkg/docs"
	"github.com/nikogura/storydocs/pkg/props"
	"github.com/nikogura/storydocs/pkg/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composeButton(t *testing.T) (page docs.Page) {
	t.Helper()
	params, err := story.NewParameters([]byte(`{"codeCoverage": 64}`))
	require.NoError(t, err)

	d := story.Descriptor{
		ID:         "core-components-button--primary",
		Title:      "Core Components/Button",
		Name:       "Primary",
		Parameters: params,
		Args:       map[string]any{"variant": "primary"},
	}

	page, err = docs.NewComposer(docs.Settings{Version: "1.0.0"}).
		Compose(story.StoryOf{Story: d}, []story.Descriptor{d}, props.Catalog{"variant": {Type: "string"}})
	require.NoError(t, err)
	return page
}

func TestTerminalHeader(t *testing.T) {
	out := TerminalHeader(composeButton(t).Header)

	assert.Contains(t, out, "Button")
	assert.Contains(t, out, "Production Ready")
	assert.Contains(t, out, "Core Component")
	assert.Contains(t, out, "64%")
	assert.Contains(t, out, "Version: 1.0.0")
	assert.Contains(t, out, docs.DefaultRepositoryURL)
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(composeButton(t), TerminalOptions{Style: "notty", WordWrap: 100})
	require.NoError(t, err)

	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "Props")
	assert.Contains(t, out, "Examples")
	assert.Contains(t, out, "variant")
	assert.Contains(t, out, "Support and Feedback")
}

func TestTerminalMetaPage(t *testing.T) {
	page, err := docs.NewComposer(docs.Settings{}).Compose(story.MetaOf{Title: "Core Components/Button"}, nil, nil)
	require.NoError(t, err)

	out, err := Terminal(page, TerminalOptions{Style: "notty"})
	require.NoError(t, err)
	assert.Empty(t, out)
}
