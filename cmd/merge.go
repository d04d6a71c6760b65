package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drengskapur/filemerge/pkg/paths"
)

var mergeCmd = &cobra.Command{
	Use:   "merge --output <path> <glob>...",
	Short: "Merge the files matched by the glob patterns into one file",
	Long: `Merge expands the glob patterns in order, drops every path matched by a pattern
prefixed with '!', checks that each file is text no larger than 1 MiB and that no line
could be mistaken for a marker, and then writes all files into the output file.

Nothing is written if any file fails the checks; every problem is reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		files, err := resolveFiles(cmd, args)
		if err != nil {
			return err
		}
		logger.Info("Files will be added to output", zap.Int("fileCount", len(files)))

		m, err := newMerger("Merging")
		if err != nil {
			return err
		}
		if err := m.Merge(files, output); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Merged %d files into %s", len(files), output)
		return nil
	},
}

// resolveFiles expands the positional patterns plus any --ignore-file exclusions.
func resolveFiles(cmd *cobra.Command, patterns []string) ([]string, error) {
	ignoreFile, err := cmd.Flags().GetString("ignore-file")
	if err != nil {
		return nil, fmt.Errorf("error reading flags: %w", err)
	}
	if ignoreFile != "" {
		excludes, err := paths.LoadIgnoreFile(ignoreFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded ignore file", zap.String("file", ignoreFile), zap.Int("patternCount", len(excludes)))
		patterns = append(append([]string{}, patterns...), excludes...)
	}
	return paths.Resolve(patterns, logger)
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "path to save the merged file")
	mergeCmd.Flags().String("ignore-file", "", "file with one exclusion pattern per line")
	_ = mergeCmd.MarkFlagRequired("output")
	RootCmd.AddCommand(mergeCmd)
}
