// Package catalog loads component catalog files and indexes catalog trees.
package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/storydocs/pkg/classify"
	"github.com/nikogura/storydocs/pkg/query"
	"github.com/nikogura/storydocs/pkg/story"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Catalog file suffixes.
const (
	SuffixJSON = ".stories.json"
	SuffixYAML = ".stories.yaml"
	SuffixYML  = ".stories.yml"
)

// IsCatalogFile reports whether name looks like a catalog file.
func IsCatalogFile(name string) (ok bool) {
	ok = strings.HasSuffix(name, SuffixJSON) ||
		strings.HasSuffix(name, SuffixYAML) ||
		strings.HasSuffix(name, SuffixYML)
	return ok
}

// Load reads and validates a catalog file. YAML files are selected by extension.
func Load(path string) (file File, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read catalog file: %s", path)
		return file, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		data, err = yamlToJSON(data)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse catalog YAML: %s", path)
			return file, err
		}
	}

	err = json.Unmarshal(data, &file)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse catalog JSON: %s", path)
		return file, err
	}

	err = file.Validate()
	if err != nil {
		err = errors.Wrapf(err, "catalog validation failed: %s", path)
		return file, err
	}

	return file, err
}

func yamlToJSON(data []byte) (out []byte, err error) {
	var doc any
	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return out, err
	}

	out, err = json.Marshal(doc)
	if err != nil {
		err = errors.Wrap(err, "catalog YAML cannot be represented as JSON (mapping keys must be strings, numbers must be finite)")
		return out, err
	}

	return out, err
}

// Validate checks that the catalog file is well-formed.
func (f *File) Validate() (err error) {
	if strings.TrimSpace(f.Title) == "" {
		err = errors.New("title is required")
		return err
	}

	if len(f.Stories) == 0 {
		err = errors.Errorf("component %s has no stories", f.Title)
		return err
	}

	err = validateClassification(f.Category, f.Maturity)
	if err != nil {
		err = errors.Wrapf(err, "component %s", f.Title)
		return err
	}

	err = validateParameters(f.Parameters)
	if err != nil {
		err = errors.Wrapf(err, "component %s", f.Title)
		return err
	}

	seen := make(map[string]bool, len(f.Stories))
	ids := make(map[string]string, len(f.Stories))
	for i, entry := range f.Stories {
		if strings.TrimSpace(entry.Name) == "" {
			err = errors.Errorf("story at index %d missing name", i)
			return err
		}
		if seen[entry.Name] {
			err = errors.Errorf("duplicate story name: %s", entry.Name)
			return err
		}
		seen[entry.Name] = true

		err = validateStoryID(f.Title, entry, ids)
		if err != nil {
			return err
		}

		err = validateClassification(entry.Category, entry.Maturity)
		if err != nil {
			err = errors.Wrapf(err, "story %s", entry.Name)
			return err
		}

		err = validateParameters(entry.Parameters)
		if err != nil {
			err = errors.Wrapf(err, "story %s", entry.Name)
			return err
		}
	}

	return err
}

// validateStoryID checks the story's resolved id against its form and the
// ids already claimed in the file. ids maps id to the claiming story name.
func validateStoryID(title string, entry StoryEntry, ids map[string]string) (err error) {
	id := entry.ID
	if id == "" {
		id = story.ID(title, entry.Name)
	} else if !story.ValidID(id) {
		err = errors.Errorf("story %s: invalid id %q (want lowercase \"component--story\" form)", entry.Name, id)
		return err
	}

	if other, taken := ids[id]; taken {
		err = errors.Errorf("stories %s and %s resolve to the same id %s", other, entry.Name, id)
		return err
	}
	ids[id] = entry.Name

	return err
}

func validateClassification(category, maturity string) (err error) {
	_, err = classify.ParseCategory(category)
	if err != nil {
		return err
	}
	_, err = classify.ParseMaturity(maturity)
	return err
}

func validateParameters(raw json.RawMessage) (err error) {
	if len(raw) == 0 {
		return err
	}

	var params story.Parameters
	params, err = story.NewParameters(raw)
	if err != nil {
		return err
	}

	cov := params.Get(story.ParamCodeCoverage)
	if cov.Exists() && cov.Type != gjson.Number {
		err = errors.Errorf("%s must be a number, got %s", story.ParamCodeCoverage, cov.Raw)
		return err
	}

	overview := params.Get(story.ParamOverview)
	if overview.Exists() && overview.Type != gjson.String {
		err = errors.Errorf("%s must be a string (a document path or inline text)", story.ParamOverview)
		return err
	}

	return err
}

// Loader resolves catalog files into story descriptors. Overview documents
// are read lazily through the query client.
type Loader struct {
	client *query.Client
	logger *zap.Logger
}

// NewLoader creates a loader. A nil client gets a default one.
func NewLoader(client *query.Client, logger *zap.Logger) (loader *Loader) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = query.New(query.Options{Logger: logger})
	}

	loader = &Loader{
		client: client,
		logger: logger,
	}

	return loader
}

// Load reads a catalog file and builds its component.
func (l *Loader) Load(ctx context.Context, path string) (component Component, err error) {
	var file File
	file, err = Load(path)
	if err != nil {
		return component, err
	}

	component, err = l.Build(ctx, file, path)
	return component, err
}

// Build validates file and resolves it into descriptors. Story parameters
// are merged over the component's parameters.
func (l *Loader) Build(ctx context.Context, file File, path string) (component Component, err error) {
	err = file.Validate()
	if err != nil {
		err = errors.Wrapf(err, "catalog validation failed: %s", path)
		return component, err
	}

	dir := filepath.Dir(path)

	var base story.Parameters
	base, err = l.parameters(ctx, file.Parameters, dir)
	if err != nil {
		err = errors.Wrapf(err, "component %s", file.Title)
		return component, err
	}

	componentCategory, _ := classify.ParseCategory(file.Category)
	componentMaturity, _ := classify.ParseMaturity(file.Maturity)

	component = Component{
		Title:   file.Title,
		Path:    path,
		Props:   file.Props,
		Stories: make([]story.Descriptor, 0, len(file.Stories)),
	}

	for _, entry := range file.Stories {
		var own story.Parameters
		own, err = l.parameters(ctx, entry.Parameters, dir)
		if err != nil {
			err = errors.Wrapf(err, "story %s", entry.Name)
			return component, err
		}

		var merged story.Parameters
		merged, err = story.Merge(base, own)
		if err != nil {
			err = errors.Wrapf(err, "story %s", entry.Name)
			return component, err
		}

		d := story.Descriptor{
			ID:         entry.ID,
			Title:      file.Title,
			Name:       story.NameFromExport(entry.Name),
			Category:   componentCategory,
			Maturity:   componentMaturity,
			Parameters: merged,
			Args:       entry.Args,
		}
		if d.ID == "" {
			d.ID = story.ID(file.Title, entry.Name)
		}
		if c, _ := classify.ParseCategory(entry.Category); c != classify.CategoryUnset {
			d.Category = c
		}
		if m, _ := classify.ParseMaturity(entry.Maturity); m != classify.MaturityUnset {
			d.Maturity = m
		}

		component.Stories = append(component.Stories, d)
	}

	l.logger.Debug("catalog loaded",
		zap.String("title", component.Title),
		zap.String("path", path),
		zap.Int("stories", len(component.Stories)))

	return component, err
}

func (l *Loader) parameters(ctx context.Context, raw json.RawMessage, dir string) (params story.Parameters, err error) {
	params, err = story.NewParameters(raw)
	if err != nil {
		return params, err
	}

	overview := params.Get(story.ParamOverview)
	if overview.Type != gjson.String || overview.String() == "" {
		return params, err
	}

	params.Overview = l.overview(ctx, overview.String(), dir)
	return params, err
}

// overview binds the overview parameter. Values ending in .md or .mdx are
// document paths relative to the catalog file; anything else is inline text.
func (l *Loader) overview(ctx context.Context, value, dir string) (fn story.OverviewFunc) {
	ext := strings.ToLower(filepath.Ext(value))
	if ext != ".md" && ext != ".mdx" {
		fn = func() (content string, err error) {
			content = value
			return content, err
		}
		return fn
	}

	path := value
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	fn = func() (content string, err error) {
		var cached any
		cached, err = l.client.Fetch(ctx, "overview:"+path, func(context.Context) (result any, readErr error) {
			var data []byte
			data, readErr = os.ReadFile(path)
			if readErr != nil {
				readErr = errors.Wrapf(readErr, "failed to read overview document: %s", path)
				return result, readErr
			}
			result = string(data)
			return result, readErr
		})
		if err != nil {
			return content, err
		}
		content, _ = cached.(string)
		return content, err
	}

	return fn
}
