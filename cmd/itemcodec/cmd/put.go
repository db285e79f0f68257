/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Store an item in the catalog",
	Long: `Store an item in the local catalog under a new id.

Example:
  itemcodec put --name potion --price 100 --weight 2.0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := itemFromFlags(cmd)
		if err != nil {
			return err
		}
		return withCatalog(func(catalog catalogCloser) error {
			return putItem(cmd.OutOrStdout(), catalog, item)
		})
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	addItemFlags(putCmd)
}
