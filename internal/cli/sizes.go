package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.idset/internal/storage"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "Print the encoded size of every page type",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range storage.Sizes() {
			fmt.Fprintf(cmd.OutOrStdout(), "Size of %s: %d (page %d)\n", s.Name, s.Used, s.Page)
		}
	},
}

func init() {
	rootCmd.AddCommand(sizesCmd)
}
