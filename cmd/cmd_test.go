package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikogura/storydocs/pkg/catalog"
	"github.com/nikogura/storydocs/pkg/config"
	"github.com/nikogura/storydocs/pkg/coverage"
	"github.com/nikogura/storydocs/pkg/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardYAML = `title: Templates/Card
parameters:
  codeCoverage: 91
  overview: Cards group related content.
props:
  title:
    type: string
    required: true
stories:
  - name: Default
    args:
      title: Hello
  - name: WithImage
`

func TestBuildClassifyResult(t *testing.T) {
	pct := 45.0
	result := buildClassifyResult("Accelerators/POC Widget", &pct)

	assert.Equal(t, "POC Widget", result.DisplayName)
	assert.Equal(t, "POC", result.Maturity.Label)
	require.NotNil(t, result.Category)
	assert.Equal(t, "Accelerator", result.Category.Label)
	assert.Equal(t, coverage.LevelLow, result.Coverage.Level)

	result = buildClassifyResult("Misc/Thing", nil)
	assert.Equal(t, "Production Ready", result.Maturity.Label)
	assert.Nil(t, result.Category)
	assert.Equal(t, coverage.UnavailableLabel, result.Coverage.Label)
}

func TestCoverageFlag(t *testing.T) {
	pct, err := coverageFlag(false, 0)
	require.NoError(t, err)
	assert.Nil(t, pct)

	pct, err = coverageFlag(true, 0)
	require.NoError(t, err)
	require.NotNil(t, pct)
	assert.Zero(t, *pct)

	pct, err = coverageFlag(true, 120)
	require.NoError(t, err)
	assert.Equal(t, coverage.LevelHigh, coverage.Band(pct).Level)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = coverageFlag(true, bad)
		assert.Error(t, err, "value %v", bad)
	}
}

func TestSelectStories(t *testing.T) {
	component := catalog.Component{
		Path: "card.stories.yaml",
		Stories: []story.Descriptor{
			{ID: "templates-card--default", Name: "Default"},
			{ID: "templates-card--with-image", Name: "WithImage"},
		},
	}

	all, err := selectStories(component, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := selectStories(component, "templates-card--with-image")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "WithImage", one[0].Name)

	_, err = selectStories(component, "Missing")
	assert.Error(t, err)
}

func TestGetFormat(t *testing.T) {
	cfg := config.Config{}
	assert.Equal(t, config.FormatMarkdown, getFormat(cfg))

	cfg.Defaults.Format = config.FormatJSON
	assert.Equal(t, config.FormatJSON, getFormat(cfg))
}

// writeConfig writes a default config with a fixed version and returns its path.
func writeConfig(t *testing.T, dir string) (path string) {
	t.Helper()
	cfg := config.Default()
	cfg.Version = "2.1.0"
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	path = filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func writeCatalog(t *testing.T, dir, name, content string) (path string) {
	t.Helper()
	path = filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, args ...string) (out string, err error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	out = buf.String()
	return out, err
}

func TestComposeCommand(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir)
	catalogPath := writeCatalog(t, tmpDir, "card.stories.yaml", cardYAML)
	outDir := filepath.Join(tmpDir, "out")

	out, err := execute(t, "compose", catalogPath,
		"--config", configPath,
		"--format", "json",
		"--output-dir", outDir,
		"--story", "Default",
	)
	require.NoError(t, err)

	pagePath := filepath.Join(outDir, "templates-card--default.json")
	assert.Contains(t, out, pagePath)

	raw, err := os.ReadFile(pagePath)
	require.NoError(t, err)

	var page map[string]any
	require.NoError(t, json.Unmarshal(raw, &page))
	header, ok := page["header"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Card", header["display_name"])
	assert.Equal(t, "Version: 2.1.0", header["version_label"])
}

func TestCatalogPaths(t *testing.T) {
	tmpDir := t.TempDir()
	card := writeCatalog(t, tmpDir, "templates/card.stories.yaml", cardYAML)
	button := writeCatalog(t, tmpDir, "core/button.stories.json",
		`{"title": "Core Components/Button", "stories": [{"name": "Primary"}]}`)

	paths, err := catalogPaths(card)
	require.NoError(t, err)
	assert.Equal(t, []string{card}, paths)

	paths, err = catalogPaths(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{button, card}, paths)

	_, err = catalogPaths(t.TempDir())
	require.Error(t, err)

	_, err = catalogPaths(filepath.Join(tmpDir, "missing"))
	require.Error(t, err)
}

func TestComposeDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir)
	stories := filepath.Join(tmpDir, "stories")
	writeCatalog(t, stories, "templates/card.stories.yaml", cardYAML)
	writeCatalog(t, stories, "core/button.stories.json",
		`{"title": "Core Components/Button", "stories": [{"name": "Primary"}]}`)
	outDir := filepath.Join(tmpDir, "out")

	_, err := execute(t, "compose", stories,
		"--config", configPath,
		"--format", "markdown",
		"--output-dir", outDir,
		"--story", "",
	)
	require.NoError(t, err)

	for _, name := range []string{
		"templates-card--default.md",
		"templates-card--withimage.md",
		"core-components-button--primary.md",
	} {
		_, err = os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}

	_, err = execute(t, "compose", stories,
		"--config", configPath,
		"--format", "markdown",
		"--output-dir", outDir,
		"--story", "Primary",
	)
	require.NoError(t, err)

	_, err = execute(t, "compose", stories,
		"--config", configPath,
		"--format", "markdown",
		"--output-dir", outDir,
		"--story", "Nope",
	)
	require.Error(t, err)
}

func TestComposeDirectoryDuplicateIDs(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir)
	stories := filepath.Join(tmpDir, "stories")
	writeCatalog(t, stories, "a/card.stories.yaml", cardYAML)
	writeCatalog(t, stories, "b/card.stories.json",
		`{"title": "Templates/Card", "stories": [{"name": "Default"}]}`)

	_, err := execute(t, "compose", stories,
		"--config", configPath,
		"--format", "markdown",
		"--output-dir", filepath.Join(tmpDir, "out"),
		"--story", "",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "templates-card--default")
}

func TestIndexList(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir)
	writeCatalog(t, tmpDir, "templates/card.stories.yaml", cardYAML)

	out, err := execute(t, "index", tmpDir, "--config", configPath, "--list")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, "index", tmpDir, "--config", configPath, "--list=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 1 components")

	out, err = execute(t, "index", tmpDir, "--config", configPath, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "Templates/Card")
	assert.Contains(t, out, "template")
	assert.NotContains(t, out, "Indexed")
}
