package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/storydocs/pkg/catalog"
	"github.com/nikogura/storydocs/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listIndex bool

//nolint:gochecknoglobals // Cobra boilerplate
var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index every catalog file under a directory",
	Long: `Walk a directory for *.stories.json, *.stories.yaml and *.stories.yml
catalog files and write .storydocs-index.json at its root, listing each
component with its classification and coverage band.

The directory defaults to catalog_location from the config file. With
--list the existing index is printed without rescanning.

Example:
  storydocs index ./stories
  storydocs index ./stories --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&listIndex, "list", false, "Print the existing index instead of rebuilding it")
}

func runIndex(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var root string
	if len(args) > 0 {
		root = args[0]
	} else {
		var cfg config.Config
		cfg, err = config.LoadOrDefault(getConfigFile())
		if err != nil {
			return err
		}
		root = cfg.CatalogLocation
	}
	if root == "" {
		root = "."
	}

	var indexer *catalog.Indexer
	indexer, err = catalog.NewIndexer(root, getLogger())
	if err != nil {
		return err
	}

	var index catalog.Index
	if listIndex {
		index, err = indexer.LoadIndex()
		if err != nil {
			return err
		}
		printIndex(cmd, index)
		return err
	}

	index, err = indexer.Index(ctx)
	if err != nil {
		return err
	}

	getLogger().Info("index written", zap.String("path", indexer.IndexPath()), zap.Int("components", len(index.Components)))

	printIndex(cmd, index)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Indexed %d components into %s\n", len(index.Components), indexer.IndexPath())

	return err
}

func printIndex(cmd *cobra.Command, index catalog.Index) {
	out := cmd.OutOrStdout()
	for _, c := range index.Components {
		category := c.Category
		if category == "" {
			category = "-"
		}
		_, _ = fmt.Fprintf(out, "%-40s %-18s %-20s %s\n", c.Title, c.Maturity, category, c.CoverageBand)
	}
}
