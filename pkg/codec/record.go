package codec

import (
	"fmt"
	"strings"

	"github.com/ssargent/itemcodec/pkg/buffer"
)

// Item is the fixed-shape record handled by the codec
type Item struct {
	Name   string  `json:"name"`
	Price  int32   `json:"price"`
	Weight float32 `json:"weight"`
}

// String renders the item the way the CLI prints it
func (i Item) String() string {
	return fmt.Sprintf("%s\nprice: %d\nweight: %f\n", i.Name, i.Price, i.Weight)
}

// Format selects the on-disk layout
type Format int

const (
	// FormatLegacy is [name][price BE][weight hex text] with no framing
	FormatLegacy Format = iota
	// FormatFramed is the versioned, length-prefixed, checksummed layout
	FormatFramed
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatFramed:
		return "framed"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps a configuration value to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return FormatLegacy, nil
	case "framed", "v1":
		return FormatFramed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// RecordCodec encodes items into growable buffers and decodes them back
type RecordCodec struct {
	format          Format
	initialCapacity int
}

// NewRecordCodec creates a codec writing the given format with default buffer sizing
func NewRecordCodec(format Format) *RecordCodec {
	return &RecordCodec{
		format:          format,
		initialCapacity: buffer.DefaultInitialCapacity,
	}
}

// WithInitialCapacity sets the initial capacity of buffers created by Encode.
// It modifies c, so call it only at construction before c is shared.
func (c *RecordCodec) WithInitialCapacity(capacity int) *RecordCodec {
	c.initialCapacity = capacity
	return c
}

// Format returns the format used for encoding
func (c *RecordCodec) Format() Format {
	return c.format
}

// InitialCapacity returns the initial capacity of buffers created by Encode
func (c *RecordCodec) InitialCapacity() int {
	return c.initialCapacity
}

// EncodeTo appends the encoded item to b
func (c *RecordCodec) EncodeTo(item Item, b *buffer.Buffer) error {
	switch c.format {
	case FormatLegacy:
		EncodeItem(item, b)
		return nil
	case FormatFramed:
		return EncodeFramed(item, b)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, c.format)
	}
}

// Encode serializes item into a new byte slice
func (c *RecordCodec) Encode(item Item) ([]byte, error) {
	b := buffer.New(c.initialCapacity)
	defer b.Release()

	if err := c.EncodeTo(item, b); err != nil {
		return nil, err
	}

	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out, nil
}

// DecodePrefix is Decode for data cut from the start of a longer source, such
// as a fixed size chunk of a file. Framed records carry their own length; legacy
// records are decoded with DecodeItemPrefix.
func (c *RecordCodec) DecodePrefix(data []byte) (Item, error) {
	switch DetectFormat(data) {
	case FormatFramed:
		return DecodeFramed(data)
	default:
		return DecodeItemPrefix(data)
	}
}

// Decode deserializes an item, detecting the format from the data itself so
// legacy data stays readable whatever format the codec writes.
func (c *RecordCodec) Decode(data []byte) (Item, error) {
	switch DetectFormat(data) {
	case FormatFramed:
		return DecodeFramed(data)
	default:
		return DecodeItem(data)
	}
}
