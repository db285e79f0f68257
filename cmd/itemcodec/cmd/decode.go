/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/itemcodec/pkg/codec"
	"github.com/ssargent/itemcodec/pkg/config"
	"github.com/ssargent/itemcodec/pkg/store"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode an item file",
	Long: `Decode an item from a file written by encode or demo. The format is
detected from the data. Use --hex to decode a hex string instead of a file.

Examples:
  itemcodec decode ./potion
  itemcodec decode --hex 706f74696f6e00000064307831702b31`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hexInput, _ := cmd.Flags().GetString("hex")
		if chunk, _ := cmd.Flags().GetInt("chunk-size"); chunk > 0 {
			cfg.Codec.ChunkSize = chunk
		}

		switch {
		case hexInput != "":
			return runDecodeHex(cmd.OutOrStdout(), hexInput)
		case len(args) == 1:
			return runDecode(cmd.OutOrStdout(), cfg, args[0])
		default:
			return fmt.Errorf("a file or --hex is required")
		}
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("hex", "", "Hex-encoded item to decode")
	decodeCmd.Flags().Int("chunk-size", 0, "Bytes read from the file (default from config)")
}

// runDecode reads one item from path and prints it
func runDecode(out io.Writer, c *config.Config, path string) error {
	item, err := store.NewItemReader(itemReaderConfig(c, path)).Read()
	if err != nil {
		return err
	}
	fmt.Fprint(out, item)
	return nil
}

// runDecodeHex decodes a hex-encoded item and prints it
func runDecodeHex(out io.Writer, input string) error {
	data, err := hex.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}
	item, err := codec.NewRecordCodec(codec.DetectFormat(data)).Decode(data)
	if err != nil {
		return err
	}
	fmt.Fprint(out, item)
	return nil
}
