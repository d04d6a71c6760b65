package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drengskapur/filemerge/pkg/config"
	"github.com/drengskapur/filemerge/pkg/logging"
	"github.com/drengskapur/filemerge/pkg/merger"
	"github.com/drengskapur/filemerge/pkg/progress"
	"github.com/drengskapur/filemerge/pkg/version"
)

var (
	cfgFile   string
	appConfig *config.Config
	logger    = zap.NewNop()
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   version.AppName,
	Short: "Merge text files into one file and split them back out",
	Long: `filemerge concatenates text files into a single merged file. Every file is stored
between a header line holding its path and an end marker line, so the merged file
can later be unmerged back into the original files.

  filemerge merge -o merged.txt 'src/**/*.go' '!src/**/*_test.go'
  filemerge unmerge merged.txt

Markers can be changed with --prepend-marker/--append-marker, the FILEMERGE_PREPEND_MARKER
and FILEMERGE_APPEND_MARKER environment variables, or a .filemerge.yaml file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Logger returns the logger configured for the current run.
func Logger() *zap.Logger {
	return logger
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .filemerge.yaml)")
	flags.String("prepend-marker", merger.DefaultPrependMarker, "line prefix that starts each file block")
	flags.String("append-marker", merger.DefaultAppendMarker, "line that ends each file block")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.Bool("debug", false, "enable development logging")
}

// setup loads the configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	l, err := logging.New(cfg.LogLevel, cfg.Debug, version.AppName, version.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	appConfig, logger = cfg, l
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("Using config file", zap.String("file", used))
	}
	return nil
}

// newMerger builds a Merger from the loaded configuration, reporting progress on stderr.
func newMerger(title string, opts ...merger.Option) (*merger.Merger, error) {
	markers, err := appConfig.Markers()
	if err != nil {
		return nil, err
	}
	opts = append([]merger.Option{
		merger.WithLogger(logger),
		merger.WithProgress(progress.NewTerminal(os.Stderr, title)),
	}, opts...)
	return merger.New(markers, opts...)
}
