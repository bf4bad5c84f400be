package cmd

import (
	"fmt"

	"github.com/nikogura/storydocs/pkg/coverage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var coverageCmd = &cobra.Command{
	Use:   "coverage <profile>",
	Short: "Band the statement coverage of a Go cover profile",
	Long: `Read a cover profile written by 'go test -coverprofile' and print its
statement coverage with the band used for the docs page badge.

Bands: high (>= 80), medium (>= 60), low (< 60).

Example:
  go test -coverprofile=cover.out ./...
  storydocs coverage cover.out`,
	Args: cobra.ExactArgs(1),
	RunE: runCoverage,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, args []string) (err error) {
	var pct float64
	pct, err = coverage.FromProfile(args[0])
	if err != nil {
		return err
	}

	scheme := coverage.Band(&pct)
	getLogger().Debug("banded cover profile", zap.String("profile", args[0]), zap.Float64("percent", pct))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Code Coverage: %s (%s)\n", scheme.Label, scheme.Level)
	return err
}
