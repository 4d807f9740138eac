package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list entries that can be renamed",
	Long:  `list entries that can be renamed along with their proposed names`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
