/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get an item from the catalog",
	Long: `Get an item from the local catalog by id.

Examples:
  itemcodec get 2zY4cJ0Qb5aK0k1vXx6hY3fVh8N
  itemcodec get 2zY4cJ0Qb5aK0k1vXx6hY3fVh8N --hex`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asHex, _ := cmd.Flags().GetBool("hex")
		return withCatalog(func(catalog catalogCloser) error {
			return getItem(cmd.OutOrStdout(), catalog, args[0], asHex)
		})
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().Bool("hex", false, "Print the stored bytes as hex")
}
