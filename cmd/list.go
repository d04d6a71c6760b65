package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/drengskapur/filemerge/pkg/merger"
)

var listCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "List the files stored in a merged file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := cmd.Flags().GetBool("tree")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		markers, err := appConfig.Markers()
		if err != nil {
			return err
		}
		m, err := merger.New(markers, merger.WithLogger(logger))
		if err != nil {
			return err
		}
		blocks, err := m.InspectFile(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if tree {
			fmt.Fprint(out, merger.RenderTree(blocks))
			return nil
		}
		for _, b := range blocks {
			fmt.Fprintf(out, "%s\t%d lines\n", b.Path, b.Lines)
		}
		total := lo.SumBy(blocks, func(b merger.Block) int { return b.Lines })
		_, _ = dimColor.Fprintf(out, "%d files, %d lines\n", len(blocks), total)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolP("tree", "t", false, "render the stored paths as a directory tree")
	RootCmd.AddCommand(listCmd)
}
