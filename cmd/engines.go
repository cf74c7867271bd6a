package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/szuwgh/hanword/pkg/tokenizer"
)

func init() {
	rootCmd.AddCommand(enginesCmd)
}

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "list segmentation engines",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range tokenizer.NewRegistry().Types() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}
