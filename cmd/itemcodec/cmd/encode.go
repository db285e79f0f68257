/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ssargent/itemcodec/pkg/codec"
	"github.com/ssargent/itemcodec/pkg/config"
	"github.com/ssargent/itemcodec/pkg/store"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode an item",
	Long: `Encode an item and write it to a file, or print it as hex when no
output file is given.

Examples:
  itemcodec encode --name potion --price 100 --weight 2.0
  itemcodec encode --name potion --price 100 --weight 2.0 --out ./potion --pad`,
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := itemFromFlags(cmd)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")
		if pad, _ := cmd.Flags().GetBool("pad"); pad {
			cfg.Codec.PadToCapacity = true
		}

		return runEncode(cmd.OutOrStdout(), cfg, item, outPath)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	addItemFlags(encodeCmd)
	encodeCmd.Flags().StringP("out", "o", "", "Output file (hex to stdout when empty)")
	encodeCmd.Flags().Bool("pad", false, "Pad the file with zeros to the buffer capacity")
}

// runEncode encodes item to outPath, or prints hex to out when outPath is empty
func runEncode(out io.Writer, c *config.Config, item codec.Item, outPath string) error {
	if outPath == "" {
		data, err := codec.NewRecordCodec(c.ItemFormat()).
			WithInitialCapacity(c.Codec.InitialCapacity).
			Encode(item)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, hex.EncodeToString(data))
		return nil
	}

	n, err := store.NewItemWriter(itemWriterConfig(c, outPath)).Write(item)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d bytes (%s) to %s\n", n, c.ItemFormat(), outPath)
	return nil
}

func addItemFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Item name (required)")
	cmd.Flags().Int32("price", 0, "Item price")
	cmd.Flags().Float32("weight", 0, "Item weight")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		panic(err)
	}
}

func itemFromFlags(cmd *cobra.Command) (codec.Item, error) {
	name, _ := cmd.Flags().GetString("name")
	price, err := cmd.Flags().GetInt32("price")
	if err != nil {
		return codec.Item{}, fmt.Errorf("invalid price: %w", err)
	}
	weight, err := cmd.Flags().GetFloat32("weight")
	if err != nil {
		return codec.Item{}, fmt.Errorf("invalid weight: %w", err)
	}
	return codec.Item{Name: name, Price: price, Weight: weight}, nil
}
