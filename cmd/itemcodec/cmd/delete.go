/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item from the catalog",
	Long: `Delete an item from the local catalog by id.

Example:
  itemcodec delete 2zY4cJ0Qb5aK0k1vXx6hY3fVh8N`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(catalog catalogCloser) error {
			return deleteItem(cmd.OutOrStdout(), catalog, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
