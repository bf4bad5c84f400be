package renderer

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// pandocTargets maps output formats to pandoc writers.
//
//nolint:gochecknoglobals // Renderer configuration constants
var pandocTargets = map[string]string{
	"html": "html5",
	"pdf":  "pdf",
}

// RenderDocument converts a markdown docs page to HTML or PDF using pandoc.
// templatePath is optional.
func RenderDocument(ctx context.Context, markdownPath, outputPath, format, templatePath string) (err error) {
	target, ok := pandocTargets[format]
	if !ok {
		err = errors.Errorf("unsupported pandoc format: %s", format)
		return err
	}

	// Validate pandoc exists
	err = checkPandocExists(ctx)
	if err != nil {
		return err
	}

	// Validate input files exist
	inputs := []string{markdownPath}
	if templatePath != "" {
		inputs = append(inputs, templatePath)
	}
	err = validateFiles(inputs...)
	if err != nil {
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	args := []string{
		"-f", "gfm",
		"-t", target,
		"--standalone",
		"--metadata", "title=" + titleFromPath(markdownPath),
		"-o", outputPath,
	}
	if templatePath != "" {
		args = append(args, "--template", templatePath)
	}
	args = append(args, markdownPath)

	cmd := exec.CommandContext(ctx, "pandoc", args...)

	// Capture output
	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "pandoc failed: %s", string(output))
		return err
	}

	return err
}

func titleFromPath(path string) (title string) {
	base := filepath.Base(path)
	title = base[:len(base)-len(filepath.Ext(base))]
	return title
}

// checkPandocExists verifies pandoc is installed.
func checkPandocExists(ctx context.Context) (err error) {
	cmd := exec.CommandContext(ctx, "pandoc", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("pandoc not found in PATH (install pandoc to render HTML or PDF)")
		return err
	}
	return err
}

// validateFiles checks that required files exist.
func validateFiles(paths ...string) (err error) {
	for _, path := range paths {
		_, err = os.Stat(path)
		if os.IsNotExist(err) {
			err = errors.Errorf("file not found: %s", path)
			return err
		}
	}
	return err
}

// WriteMarkdown writes markdown content to a file.
func WriteMarkdown(content, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	// Write file
	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}

	return err
}

// CleanupMarkdown removes intermediate markdown files after rendering.
func CleanupMarkdown(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove markdown file: %s", path)
			return err
		}
	}
	return err
}
