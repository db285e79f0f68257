/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/itemcodec/pkg/api"
	"github.com/ssargent/itemcodec/pkg/codec"
)

// catalogCloser is the catalog as the item commands use it
type catalogCloser interface {
	api.IItemCatalog
	Close() error
}

// withCatalog opens the catalog, runs fn and closes it again
func withCatalog(fn func(catalog catalogCloser) error) error {
	catalog, err := openCatalog()
	if err != nil {
		return err
	}
	defer catalog.Close()
	return fn(catalog)
}

func putItem(out io.Writer, catalog api.IItemCatalog, item codec.Item) error {
	id, err := catalog.Create(item)
	if err != nil {
		return fmt.Errorf("failed to store item: %w", err)
	}
	fmt.Fprintf(out, "Stored item %q with id %s\n", item.Name, id)
	return nil
}

func getItem(out io.Writer, catalog api.IItemCatalog, rawID string, asHex bool) error {
	id, err := ksuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid item id %q: %w", rawID, err)
	}

	if asHex {
		raw, err := catalog.ReadRaw(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, hex.EncodeToString(raw))
		return nil
	}

	item, err := catalog.Read(id)
	if err != nil {
		return err
	}
	fmt.Fprint(out, item)
	return nil
}

func deleteItem(out io.Writer, catalog api.IItemCatalog, rawID string) error {
	id, err := ksuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid item id %q: %w", rawID, err)
	}
	if err := catalog.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted item %s\n", id)
	return nil
}

func listItems(out io.Writer, catalog api.IItemCatalog) error {
	entries, err := catalog.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No items found")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tWEIGHT\tBYTES")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%f\t%d\n",
			entry.ID, entry.Item.Name, entry.Item.Price, entry.Item.Weight, entry.Size)
	}
	return tw.Flush()
}
