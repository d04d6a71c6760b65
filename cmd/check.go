package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drengskapur/filemerge/pkg/merger"
)

var checkCmd = &cobra.Command{
	Use:   "check <glob>...",
	Short: "Report whether the matched files can be merged, without writing anything",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := resolveFiles(cmd, args)
		if err != nil {
			return err
		}
		markers, err := appConfig.Markers()
		if err != nil {
			return err
		}
		m, err := merger.New(markers, merger.WithLogger(logger))
		if err != nil {
			return err
		}
		missingNewline, err := m.Check(files)
		if err != nil {
			return err
		}
		for _, path := range missingNewline {
			printWarning(cmd.OutOrStdout(), "%s does not end with a newline, merging adds one", path)
		}
		printSuccess(cmd.OutOrStdout(), "%d files can be merged", len(files))
		return nil
	},
}

func init() {
	checkCmd.Flags().String("ignore-file", "", "file with one exclusion pattern per line")
	RootCmd.AddCommand(checkCmd)
}
