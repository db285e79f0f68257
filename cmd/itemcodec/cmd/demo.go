/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssargent/itemcodec/pkg/codec"
	"github.com/ssargent/itemcodec/pkg/config"
	"github.com/ssargent/itemcodec/pkg/store"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo [file]",
	Short: "Save the sample potion to a file and load it back",
	Long: `Serialize the sample item (potion, price 100, weight 2.0) to a file,
then read the file back and print both copies.

Examples:
  itemcodec demo
  itemcodec demo ./potion --format framed`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "potion"
		if len(args) == 1 {
			path = args[0]
		}

		if err := runDemo(cmd.OutOrStdout(), cfg, path); err != nil {
			logger.WithError(err).WithField("file", path).Error("demo failed")
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// runDemo writes the sample item to path, reads it back and prints both
func runDemo(out io.Writer, c *config.Config, path string) error {
	potion := codec.Item{Name: "potion", Price: 100, Weight: 2.0}

	writer := store.NewItemWriter(itemWriterConfig(c, path))
	n, err := writer.Write(potion)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"file": path, "bytes": n}).Debug("item saved")

	fmt.Fprintf(out, "Game Item serialized and saved to file %q:\n", path)
	fmt.Fprint(out, potion)
	fmt.Fprintln(out)

	loaded, err := store.NewItemReader(itemReaderConfig(c, path)).Read()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Game Item unserialized from file %q:\n", path)
	fmt.Fprint(out, loaded)
	return nil
}

func itemWriterConfig(c *config.Config, path string) store.ItemWriterConfig {
	return store.ItemWriterConfig{
		FilePath:        path,
		Format:          c.ItemFormat(),
		InitialCapacity: c.Codec.InitialCapacity,
		PadToCapacity:   c.Codec.PadToCapacity,
	}
}

func itemReaderConfig(c *config.Config, path string) store.ItemReaderConfig {
	return store.ItemReaderConfig{
		FilePath:        path,
		InitialCapacity: c.Codec.InitialCapacity,
		ChunkSize:       c.Codec.ChunkSize,
	}
}
