package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ssargent/itemcodec/pkg/buffer"
	"github.com/ssargent/itemcodec/pkg/codec"
)

// ItemReader loads a single item from a file
type ItemReader struct {
	codec  *codec.RecordCodec
	config ItemReaderConfig
}

// NewItemReader creates a new item reader for the specified file
func NewItemReader(config ItemReaderConfig) *ItemReader {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultChunkSize
	}
	return &ItemReader{
		codec:  codec.NewRecordCodec(codec.FormatLegacy).WithInitialCapacity(config.InitialCapacity),
		config: config,
	}
}

// Read loads one chunk of the file and decodes it. Bytes past the end of the
// file read as zero, which terminates the trailing text field of legacy data.
// When the file is longer than the chunk, a trailing text field that reaches
// the end of the chunk is rejected as malformed.
func (r *ItemReader) Read() (codec.Item, error) {
	if r.config.FilePath == "" {
		return codec.Item{}, ErrNoFilePath
	}

	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return codec.Item{}, fmt.Errorf("failed to open item file: %w", err)
	}
	defer file.Close()

	buf := buffer.New(r.config.InitialCapacity)
	defer buf.Release()

	n, err := buf.Fill(file, r.config.ChunkSize)
	if err != nil {
		return codec.Item{}, fmt.Errorf("failed to read item file: %w", err)
	}

	decode := r.codec.Decode
	if n == r.config.ChunkSize {
		more, err := hasMore(file)
		if err != nil {
			return codec.Item{}, fmt.Errorf("failed to read item file: %w", err)
		}
		if more {
			decode = r.codec.DecodePrefix
		}
	}

	item, err := decode(buf.Region())
	if err != nil {
		return codec.Item{}, fmt.Errorf("failed to decode item file %s: %w", r.config.FilePath, err)
	}
	return item, nil
}

// hasMore reports whether r has at least one more byte
func hasMore(r io.Reader) (bool, error) {
	var peek [1]byte
	n, err := r.Read(peek[:])
	if n > 0 {
		return true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return false, nil
	}
	return false, err
}

// ChunkSize returns the number of bytes loaded per read
func (r *ItemReader) ChunkSize() int {
	return r.config.ChunkSize
}

// Path returns the file path
func (r *ItemReader) Path() string {
	return r.config.FilePath
}
