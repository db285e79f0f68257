package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ssargent/itemcodec/pkg/buffer"
)

// Int32Size is the encoded size of an int32 field
const Int32Size = 4

// EncodeInt32 appends x in big-endian byte order
func EncodeInt32(x int32, b *buffer.Buffer) {
	var raw [Int32Size]byte
	binary.BigEndian.PutUint32(raw[:], uint32(x))
	b.Append(raw[:])
}

// EncodeString appends the bytes of s up to, but not including, the first NUL.
// Neither a length nor a terminator is written.
func EncodeString(s string, b *buffer.Buffer) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	b.AppendString(s)
}

// EncodeFloat appends f as hexadecimal exponent text, see FormatHexFloat.
// Neither a length nor a terminator is written.
func EncodeFloat(f float32, b *buffer.Buffer) {
	b.AppendString(FormatHexFloat(f))
}

// EncodeItem appends name, price and weight in that order
func EncodeItem(item Item, b *buffer.Buffer) {
	EncodeString(item.Name, b)
	EncodeInt32(item.Price, b)
	EncodeFloat(item.Weight, b)
}

// Decoder reads legacy fields sequentially from a byte region. The cursor only
// moves forward.
type Decoder struct {
	data         []byte
	cursor       int
	unterminated bool // last text run stopped at the end of data
}

// NewDecoder creates a decoder positioned at the start of data
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Offset returns the number of bytes consumed so far
func (d *Decoder) Offset() int {
	return d.cursor
}

// Remaining returns the number of bytes after the cursor
func (d *Decoder) Remaining() int {
	return len(d.data) - d.cursor
}

// DecodeInt32 reads the next 4 bytes as a big-endian int32
func (d *Decoder) DecodeInt32() (int32, error) {
	if d.Remaining() < Int32Size {
		return 0, fmt.Errorf("%w: need %d bytes for int32 at offset %d, have %d",
			ErrMalformedInput, Int32Size, d.cursor, d.Remaining())
	}
	x := int32(binary.BigEndian.Uint32(d.data[d.cursor:]))
	d.cursor += Int32Size
	return x, nil
}

// DecodeString reads a text run ending at the next zero byte or at the end of
// the region. The zero byte may belong to a following field, so the result can
// be longer than what was encoded. The terminator is not consumed.
func (d *Decoder) DecodeString() (string, error) {
	return string(d.textRun()), nil
}

// DecodeFloat reads a text run like DecodeString and parses it as hexadecimal
// exponent text.
func (d *Decoder) DecodeFloat() (float32, error) {
	start := d.cursor
	run := d.textRun()
	if len(run) == 0 {
		return 0, fmt.Errorf("%w: empty float text at offset %d", ErrMalformedInput, start)
	}
	return ParseHexFloat(string(run))
}

// Unterminated reports whether the last text run was ended by the end of the
// region rather than by a zero byte. When the region is a prefix of a longer
// source, such a run may have been cut short.
func (d *Decoder) Unterminated() bool {
	return d.unterminated
}

func (d *Decoder) textRun() []byte {
	rest := d.data[d.cursor:]
	d.unterminated = true
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		rest = rest[:i]
		d.unterminated = false
	}
	d.cursor += len(rest)
	return rest
}

// DecodeItem decodes name, price and weight from data with a single cursor
func DecodeItem(data []byte) (Item, error) {
	return decodeItem(data, false)
}

// DecodeItemPrefix is DecodeItem for data that is only the first part of a
// longer source. A weight whose text runs to the end of data may continue past
// it, so it is rejected instead of being parsed short.
func DecodeItemPrefix(data []byte) (Item, error) {
	return decodeItem(data, true)
}

func decodeItem(data []byte, prefix bool) (Item, error) {
	d := NewDecoder(data)

	name, err := d.DecodeString()
	if err != nil {
		return Item{}, fmt.Errorf("failed to decode name: %w", err)
	}
	price, err := d.DecodeInt32()
	if err != nil {
		return Item{}, fmt.Errorf("failed to decode price: %w", err)
	}
	weight, err := d.DecodeFloat()
	if err != nil {
		return Item{}, fmt.Errorf("failed to decode weight: %w", err)
	}
	if prefix && d.Unterminated() {
		return Item{}, fmt.Errorf("failed to decode weight: %w: text reaches the end of a %d byte prefix",
			ErrMalformedInput, len(data))
	}

	return Item{Name: name, Price: price, Weight: weight}, nil
}
