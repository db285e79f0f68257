/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(func(catalog catalogCloser) error {
			return listItems(cmd.OutOrStdout(), catalog)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
