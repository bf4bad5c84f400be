package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var logger = zap.NewNop()

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "storydocs",
	Short: "Classify component stories and compose their docs pages",
	Long: `storydocs reads component story catalogs and derives the classification
badges shown on each docs page: maturity (POC or Production Ready), category
(Accelerator, Template, Core Component, Compound Component, Beta) and the
code coverage band.

It composes the fixed Overview / Props / Examples layout for a story and
renders it as Markdown, JSON, terminal output, or HTML/PDF through pandoc.`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogger,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.storydocs/config.json)")
}

func initLogger(cmd *cobra.Command, args []string) (err error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if getVerbose() {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	var l *zap.Logger
	l, err = zapCfg.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to build logger")
		return err
	}

	logger = l.Named("storydocs")
	return err
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// getLogger returns the command logger.
func getLogger() (result *zap.Logger) {
	result = logger
	return result
}
