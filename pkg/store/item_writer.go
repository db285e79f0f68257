package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ssargent/itemcodec/pkg/buffer"
	"github.com/ssargent/itemcodec/pkg/codec"
)

// ItemWriter saves a single item to a file
type ItemWriter struct {
	codec  *codec.RecordCodec
	config ItemWriterConfig
}

// NewItemWriter creates a new item writer with the given configuration
func NewItemWriter(config ItemWriterConfig) *ItemWriter {
	return &ItemWriter{
		codec:  codec.NewRecordCodec(config.Format).WithInitialCapacity(config.InitialCapacity),
		config: config,
	}
}

// Write encodes item and replaces the file content with it. It returns the
// number of bytes written.
func (w *ItemWriter) Write(item codec.Item) (int, error) {
	if w.config.FilePath == "" {
		return 0, ErrNoFilePath
	}

	buf := buffer.New(w.config.InitialCapacity)
	defer buf.Release()

	if err := w.codec.EncodeTo(item, buf); err != nil {
		return 0, fmt.Errorf("failed to encode item: %w", err)
	}

	data := buf.Bytes()
	if w.config.PadToCapacity {
		data = buf.Region()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(w.config.FilePath), 0750); err != nil {
		return 0, fmt.Errorf("failed to create item directory: %w", err)
	}

	file, err := os.OpenFile(w.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return 0, fmt.Errorf("failed to open item file: %w", err)
	}

	n, err := file.Write(data)
	if err != nil {
		file.Close()
		return n, fmt.Errorf("failed to write item file: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return n, fmt.Errorf("failed to sync item file: %w", err)
	}

	if err := file.Close(); err != nil {
		return n, fmt.Errorf("failed to close item file: %w", err)
	}
	return n, nil
}

// Path returns the file path
func (w *ItemWriter) Path() string {
	return w.config.FilePath
}
