package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drengskapur/filemerge/pkg/merger"
)

var unmergeCmd = &cobra.Command{
	Use:   "unmerge <path>",
	Short: "Recreate the files stored in a merged file",
	Long: `Unmerge reads a merged file and writes every block back to the path recorded in its
header, relative to the current directory or to --dir. Existing files are replaced and
missing parent directories are created. With --dir, relative paths that would leave the
directory are refused.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		m, err := newMerger("Unmerging", merger.WithRoot(dir))
		if err != nil {
			return err
		}
		if err := m.Unmerge(args[0]); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Unmerged %s", args[0])
		return nil
	},
}

func init() {
	unmergeCmd.Flags().StringP("dir", "d", "", "directory to write the files into, relative paths may not leave it (default is the current directory)")
	RootCmd.AddCommand(unmergeCmd)
}
