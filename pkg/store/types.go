package store

import "github.com/ssargent/itemcodec/pkg/codec"

// DefaultChunkSize is how many bytes ItemReader loads from an item file
const DefaultChunkSize = 64

// ItemWriterConfig holds configuration for the item writer
type ItemWriterConfig struct {
	FilePath        string       // Path to the item file
	Format          codec.Format // Layout to write
	InitialCapacity int          // Initial capacity of the encode buffer
	PadToCapacity   bool         // Write the whole buffer region, zero padded
}

// ItemReaderConfig holds configuration for the item reader
type ItemReaderConfig struct {
	FilePath        string // Path to the item file
	InitialCapacity int    // Initial capacity of the read buffer
	ChunkSize       int    // Bytes to load (0 = DefaultChunkSize), not checked against the file size
}

// Errors
var (
	ErrNoFilePath = &StoreError{"no file path configured"}
)

// StoreError represents an item file error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
