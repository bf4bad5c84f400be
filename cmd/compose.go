package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nikogura/storydocs/pkg/catalog"
	"github.com/nikogura/storydocs/pkg/config"
	"github.com/nikogura/storydocs/pkg/docs"
	"github.com/nikogura/storydocs/pkg/query"
	"github.com/nikogura/storydocs/pkg/renderer"
	"github.com/nikogura/storydocs/pkg/story"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var storyID string

//nolint:gochecknoglobals // Cobra boilerplate
var format string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var keepMarkdown bool

//nolint:gochecknoglobals // Cobra boilerplate
var terminalStyle string

//nolint:gochecknoglobals // Cobra boilerplate
var wordWrap int

//nolint:gochecknoglobals // Cobra boilerplate
var composeCmd = &cobra.Command{
	Use:   "compose <catalog-file-or-dir>",
	Short: "Compose the docs pages for the stories in a catalog file or directory",
	Long: `Compose the docs page (header, Overview, Props, Examples) for a story
in a catalog file and render it.

Without --story every story gets its own page. Given a directory, every
catalog file below it is composed; story ids must be unique across them.

Formats:
  markdown  <output-dir>/<story-id>.md (default)
  json      <output-dir>/<story-id>.json, the composed page
  terminal  printed to stdout
  html, pdf rendered through pandoc

Example:
  storydocs compose stories/button.stories.yaml
  storydocs compose stories/button.stories.yaml --story Primary --format terminal
  storydocs compose stories/button.stories.yaml --format pdf --output-dir ./site
  storydocs compose ./stories --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(composeCmd)
	composeCmd.Flags().StringVar(&storyID, "story", "", "Story id or name (default: every story)")
	composeCmd.Flags().StringVar(&format, "format", "", "Output format: markdown, json, terminal, html, pdf (default from config)")
	composeCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	composeCmd.Flags().BoolVar(&keepMarkdown, "keep-markdown", false, "Keep intermediate markdown after html/pdf rendering")
	composeCmd.Flags().StringVar(&terminalStyle, "style", "auto", "Terminal style: auto, dark, light, notty")
	composeCmd.Flags().IntVar(&wordWrap, "wrap", 100, "Terminal word wrap width")
}

func runCompose(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = config.LoadOrDefault(getConfigFile())
	if err != nil {
		return err
	}

	var settings docs.Settings
	settings, err = cfg.ComposerSettings()
	if err != nil {
		return err
	}

	var paths []string
	paths, err = catalogPaths(args[0])
	if err != nil {
		return err
	}

	client := query.New(query.Options{Logger: getLogger()})
	loader := catalog.NewLoader(client, getLogger())
	composer := docs.NewComposer(settings)
	outFormat := getFormat(cfg)
	outDir := getOutputDir(cfg)

	written := make(map[string]string)
	for _, path := range paths {
		var component catalog.Component
		component, err = loader.Load(ctx, path)
		if err != nil {
			return err
		}

		var targets []story.Descriptor
		targets, err = selectStories(component, storyID)
		if err != nil {
			if len(paths) > 1 {
				err = nil
				continue
			}
			return err
		}

		for _, d := range targets {
			if other, dup := written[d.ID]; dup {
				err = errors.Errorf("story id %s appears in both %s and %s", d.ID, other, path)
				return err
			}
			written[d.ID] = path

			err = composeOne(ctx, cmd, cfg, composer, component, d, outFormat, outDir)
			if err != nil {
				return err
			}
		}
	}

	if len(written) == 0 {
		err = errors.Errorf("story %q not found under %s", storyID, args[0])
		return err
	}

	return err
}

// catalogPaths returns target itself, or every catalog file below it when
// target is a directory.
func catalogPaths(target string) (paths []string, err error) {
	var info os.FileInfo
	info, err = os.Stat(target)
	if err != nil {
		err = errors.Wrapf(err, "failed to stat %s", target)
		return paths, err
	}

	if !info.IsDir() {
		paths = []string{target}
		return paths, err
	}

	paths, err = catalog.FindCatalogFiles(target)
	if err != nil {
		return paths, err
	}

	if len(paths) == 0 {
		err = errors.Errorf("no catalog files found under %s", target)
		return paths, err
	}

	return paths, err
}

func composeOne(ctx context.Context, cmd *cobra.Command, cfg config.Config, composer *docs.Composer, component catalog.Component, d story.Descriptor, outFormat, outDir string) (err error) {
	var page docs.Page
	page, err = composer.Compose(story.StoryOf{Story: d}, component.Stories, component.Props)
	if err != nil {
		err = errors.Wrapf(err, "failed to compose story %s", d.ID)
		return err
	}

	getLogger().Debug("composed page",
		zap.String("story", d.ID),
		zap.String("maturity", page.Header.Maturity.Value),
		zap.String("coverage", string(page.Header.Coverage.Level)),
	)

	err = emit(ctx, cmd, cfg, page, outFormat, outDir)
	return err
}

func emit(ctx context.Context, cmd *cobra.Command, cfg config.Config, page docs.Page, outFormat, outDir string) (err error) {
	switch outFormat {
	case config.FormatTerminal:
		var rendered string
		rendered, err = renderer.Terminal(page, renderer.TerminalOptions{Style: terminalStyle, WordWrap: wordWrap})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return err

	case config.FormatMarkdown:
		path := filepath.Join(outDir, page.StoryID+".md")
		err = renderer.WriteMarkdown(page.Markdown(), path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
		return err

	case config.FormatJSON:
		var data []byte
		data, err = json.MarshalIndent(page, "", "  ")
		if err != nil {
			err = errors.Wrap(err, "failed to marshal page")
			return err
		}
		path := filepath.Join(outDir, page.StoryID+".json")
		err = renderer.WriteMarkdown(string(data), path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
		return err

	case config.FormatHTML, config.FormatPDF:
		mdPath := filepath.Join(outDir, page.StoryID+".md")
		outPath := filepath.Join(outDir, page.StoryID+"."+outFormat)
		err = renderDocument(ctx, page, mdPath, outPath, outFormat, cfg.Pandoc.TemplatePath)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", outPath)
		return err
	}

	err = errors.Errorf("unsupported format: %s", outFormat)
	return err
}

func renderDocument(ctx context.Context, page docs.Page, mdPath, outPath, outFormat, templatePath string) (err error) {
	err = renderer.WriteMarkdown(page.Markdown(), mdPath)
	if err != nil {
		return err
	}

	err = renderer.RenderDocument(ctx, mdPath, outPath, outFormat, templatePath)
	if err != nil {
		return err
	}

	if !keepMarkdown {
		err = renderer.CleanupMarkdown(mdPath)
		if err != nil {
			getLogger().Warn("failed to remove intermediate markdown", zap.String("path", mdPath), zap.Error(err))
			err = nil
		}
	}

	return err
}

func getOutputDir(cfg config.Config) (dir string) {
	dir = outputDir
	if dir == "" {
		dir = cfg.Defaults.OutputDir
	}
	return dir
}

func getFormat(cfg config.Config) (result string) {
	result = format
	if result == "" {
		result = cfg.Defaults.Format
	}
	if result == "" {
		result = config.FormatMarkdown
	}
	return result
}
