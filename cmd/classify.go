package cmd

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/nikogura/storydocs/pkg/classify"
	"github.com/nikogura/storydocs/pkg/coverage"
	"github.com/nikogura/storydocs/pkg/docs"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var classifyCoverage float64

//nolint:gochecknoglobals // Cobra boilerplate
var classifyJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var classifyCmd = &cobra.Command{
	Use:   "classify <title>",
	Short: "Show the badges derived from a story title",
	Long: `Classify a slash-delimited story title into its maturity and category
badges, and band an optional code coverage percentage.

Example:
  storydocs classify "Core Components/Button"
  storydocs classify "Accelerators/POC Widget" --coverage 45
  storydocs classify "Templates/Landing" --coverage 92 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().Float64Var(&classifyCoverage, "coverage", 0, "Code coverage percentage (omit for none)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print the result as JSON")
}

// classifyResult is the JSON form of the classify command output.
type classifyResult struct {
	Title       string          `json:"title"`
	DisplayName string          `json:"display_name"`
	Maturity    docs.Badge      `json:"maturity"`
	Category    *docs.Badge     `json:"category,omitempty"`
	Coverage    coverage.Scheme `json:"coverage"`
}

func runClassify(cmd *cobra.Command, args []string) (err error) {
	title := args[0]

	var pct *float64
	pct, err = coverageFlag(cmd.Flags().Changed("coverage"), classifyCoverage)
	if err != nil {
		return err
	}

	result := buildClassifyResult(title, pct)
	getLogger().Debug("classified title", zap.String("title", title), zap.String("maturity", result.Maturity.Value))

	if classifyJSON {
		var data []byte
		data, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			err = errors.Wrap(err, "failed to marshal classification")
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Component:     %s\n", result.DisplayName)
	_, _ = fmt.Fprintf(out, "Maturity:      %s\n", result.Maturity.Label)
	if result.Category != nil {
		_, _ = fmt.Fprintf(out, "Category:      %s\n", result.Category.Label)
	} else {
		_, _ = fmt.Fprintln(out, "Category:      (none)")
	}
	_, err = fmt.Fprintf(out, "Code Coverage: %s (%s)\n", result.Coverage.Label, result.Coverage.Level)

	return err
}

// coverageFlag returns the --coverage value, nil when the flag was not given.
func coverageFlag(changed bool, value float64) (pct *float64, err error) {
	if !changed {
		return pct, err
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		err = errors.Errorf("coverage must be a finite number, got %v", value)
		return pct, err
	}

	pct = &value
	return pct, err
}

func buildClassifyResult(title string, pct *float64) (result classifyResult) {
	maturity, category := docs.ClassificationBadges(classify.Title(title))

	result = classifyResult{
		Title:       title,
		DisplayName: docs.DisplayName(title),
		Maturity:    maturity,
		Category:    category,
		Coverage:    coverage.Band(pct),
	}

	return result
}
