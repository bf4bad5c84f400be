package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nikogura/storydocs/pkg/classify"
	"github.com/nikogura/storydocs/pkg/coverage"
	"github.com/nikogura/storydocs/pkg/docs"
	"github.com/nikogura/storydocs/pkg/story"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// IndexFileName is written at the catalog root.
const IndexFileName = ".storydocs-index.json"

// IndexVersion is the index file format version.
const IndexVersion = "1.0.0"

// Indexer walks a catalog tree and summarises every component.
type Indexer struct {
	root      string
	indexPath string
	logger    *zap.Logger
}

// NewIndexer creates a new indexer for root.
func NewIndexer(root string, logger *zap.Logger) (indexer *Indexer, err error) {
	if root == "" {
		err = errors.New("catalog root is required")
		return indexer, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	indexer = &Indexer{
		root:      root,
		indexPath: filepath.Join(root, IndexFileName),
		logger:    logger,
	}

	return indexer, err
}

// IndexPath returns where the index is written.
func (idx *Indexer) IndexPath() (path string) {
	path = idx.indexPath
	return path
}

// processCatalogFile handles a single entry during the directory walk.
func (idx *Indexer) processCatalogFile(ctx context.Context, path string, entry os.DirEntry, walkErr error, components *[]IndexedComponent) (err error) {
	if walkErr != nil {
		err = walkErr
		return err
	}

	err = ctx.Err()
	if err != nil {
		return err
	}

	if entry.IsDir() {
		if skipDir(idx.root, path, entry) {
			err = filepath.SkipDir
		}
		return err
	}

	if !IsCatalogFile(entry.Name()) {
		return err
	}

	var file File
	file, err = Load(path)
	if err != nil {
		idx.logger.Warn("skipping catalog file", zap.String("path", path), zap.Error(err))
		err = nil
		//nolint:nilerr // Intentionally swallowing error to skip bad catalog files
		return err
	}

	var indexed IndexedComponent
	indexed, err = summarise(file, path)
	if err != nil {
		idx.logger.Warn("skipping catalog file", zap.String("path", path), zap.Error(err))
		err = nil
		//nolint:nilerr // Intentionally swallowing error to skip bad catalog files
		return err
	}

	*components = append(*components, indexed)
	return err
}

func summarise(file File, path string) (indexed IndexedComponent, err error) {
	var params story.Parameters
	params, err = story.NewParameters(file.Parameters)
	if err != nil {
		return indexed, err
	}

	category, _ := classify.ParseCategory(file.Category)
	maturity, _ := classify.ParseMaturity(file.Maturity)
	classification := classify.Resolve(classify.Classification{Maturity: maturity, Category: category}, file.Title)

	pct := params.CodeCoverage()

	indexed = IndexedComponent{
		Title:        file.Title,
		DisplayName:  docs.DisplayName(file.Title),
		Maturity:     string(classification.Maturity),
		Category:     string(classification.Category),
		CodeCoverage: pct,
		CoverageBand: coverage.Band(pct).Level,
		Stories:      len(file.Stories),
		Path:         path,
	}

	return indexed, err
}

// Index scans the catalog tree and writes the index file.
func (idx *Indexer) Index(ctx context.Context) (index Index, err error) {
	components := []IndexedComponent{}

	walkErr := filepath.WalkDir(idx.root, func(path string, entry os.DirEntry, walkErr error) (walkFuncErr error) {
		walkFuncErr = idx.processCatalogFile(ctx, path, entry, walkErr, &components)
		return walkFuncErr
	})
	if walkErr != nil {
		err = errors.Wrapf(walkErr, "failed to walk catalog directory: %s", idx.root)
		return index, err
	}

	SortComponents(components)

	index = Index{
		Components: components,
		UpdatedAt:  time.Now(),
		Version:    IndexVersion,
	}

	err = idx.writeIndex(index)
	if err != nil {
		return index, err
	}

	idx.logger.Info("catalog indexed",
		zap.String("root", idx.root),
		zap.Int("components", len(components)))

	return index, err
}

// SortComponents orders components the way the catalog navigation does:
// Accelerators, Templates, Core Components, Compound Components, Beta, then
// uncategorised components, each group by title.
func SortComponents(components []IndexedComponent) {
	sort.SliceStable(components, func(i, j int) (less bool) {
		ri := classify.Category(components[i].Category).Rank()
		rj := classify.Category(components[j].Category).Rank()
		if ri != rj {
			less = ri < rj
			return less
		}
		less = components[i].Title < components[j].Title
		return less
	})
}

func (idx *Indexer) writeIndex(index Index) (err error) {
	var data []byte
	data, err = json.MarshalIndent(index, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal index")
		return err
	}

	err = os.WriteFile(idx.indexPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write index file: %s", idx.indexPath)
		return err
	}

	return err
}

// LoadIndex loads the existing index from disk. A missing index is empty.
func (idx *Indexer) LoadIndex() (index Index, err error) {
	var data []byte
	data, err = os.ReadFile(idx.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			index = Index{
				Components: []IndexedComponent{},
				UpdatedAt:  time.Now(),
				Version:    IndexVersion,
			}
			err = nil
			return index, err
		}
		err = errors.Wrapf(err, "failed to read index file: %s", idx.indexPath)
		return index, err
	}

	err = json.Unmarshal(data, &index)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse index JSON: %s", idx.indexPath)
		return index, err
	}

	return index, err
}

// FindCatalogFiles lists catalog files under root, sorted by path.
func FindCatalogFiles(root string) (paths []string, err error) {
	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) (walkFuncErr error) {
		if walkErr != nil {
			walkFuncErr = walkErr
			return walkFuncErr
		}
		if entry.IsDir() {
			if skipDir(root, path, entry) {
				walkFuncErr = filepath.SkipDir
			}
			return walkFuncErr
		}
		if IsCatalogFile(entry.Name()) {
			paths = append(paths, path)
		}
		return walkFuncErr
	})
	if err != nil {
		err = errors.Wrapf(err, "failed to walk catalog directory: %s", root)
		return paths, err
	}

	sort.Strings(paths)
	return paths, err
}

// skipDir reports whether a directory below root is hidden or holds dependencies.
func skipDir(root, path string, entry os.DirEntry) (skip bool) {
	if path == root {
		return skip
	}
	skip = strings.HasPrefix(entry.Name(), ".") || entry.Name() == "node_modules"
	return skip
}
