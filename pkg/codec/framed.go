package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/ssargent/itemcodec/pkg/buffer"
)

// Framed v1 layout, all integers big-endian:
// [Magic(4)][Version(1)][CRC32(4)][NameLen(4)][Name][Price(4)][Weight(4)]
const (
	FramedVersion    = 1
	framedHeaderSize = 13 // magic + version + crc + name length
	framedTrailSize  = 8  // price + weight bits
	maxFramedName    = math.MaxInt32
)

// framedMagic prefixes every framed record. The first byte is outside ASCII so
// legacy records with text names are not mistaken for framed ones.
var framedMagic = [4]byte{0x89, 'I', 'T', 'M'}

// FramedMagic returns a copy of the four bytes that start every framed record
func FramedMagic() [4]byte {
	return framedMagic
}

// DetectFormat reports FormatFramed when data starts with the framed magic
func DetectFormat(data []byte) Format {
	if len(data) >= len(framedMagic) && bytes.Equal(data[:len(framedMagic)], framedMagic[:]) {
		return FormatFramed
	}
	return FormatLegacy
}

// FramedSize returns the encoded size of item in the framed format
func FramedSize(item Item) int {
	return framedHeaderSize + len(item.Name) + framedTrailSize
}

// EncodeFramed appends item in the framed v1 layout
func EncodeFramed(item Item, b *buffer.Buffer) error {
	if len(item.Name) > maxFramedName {
		return fmt.Errorf("%w: name too large (%d bytes)", ErrMalformedInput, len(item.Name))
	}

	b.EnsureCapacity(FramedSize(item))
	b.Append(framedMagic[:])
	b.Append([]byte{FramedVersion})

	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], framedChecksum(item))
	b.Append(raw[:])

	EncodeInt32(int32(len(item.Name)), b)
	b.AppendString(item.Name)
	EncodeInt32(item.Price, b)
	binary.BigEndian.PutUint32(raw[:], math.Float32bits(item.Weight))
	b.Append(raw[:])
	return nil
}

// DecodeFramed decodes a framed v1 record and validates its checksum
func DecodeFramed(data []byte) (Item, error) {
	if len(data) < framedHeaderSize+framedTrailSize {
		return Item{}, fmt.Errorf("%w: data too short for framed record: %d bytes", ErrMalformedInput, len(data))
	}
	if DetectFormat(data) != FormatFramed {
		return Item{}, fmt.Errorf("%w: missing framed magic", ErrMalformedInput)
	}
	if data[4] != FramedVersion {
		return Item{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}

	stored := binary.BigEndian.Uint32(data[5:9])
	nameLen := binary.BigEndian.Uint32(data[9:13])
	if uint64(len(data)) < uint64(framedHeaderSize)+uint64(nameLen)+framedTrailSize {
		return Item{}, fmt.Errorf("%w: data too short for name length %d: %d bytes",
			ErrMalformedInput, nameLen, len(data))
	}

	nameEnd := framedHeaderSize + int(nameLen)
	item := Item{
		Name:   string(data[framedHeaderSize:nameEnd]),
		Price:  int32(binary.BigEndian.Uint32(data[nameEnd:])),
		Weight: math.Float32frombits(binary.BigEndian.Uint32(data[nameEnd+4:])),
	}

	if actual := framedChecksum(item); actual != stored {
		return Item{}, fmt.Errorf("%w: %d != %d", ErrChecksumMismatch, stored, actual)
	}
	return item, nil
}

// framedChecksum computes CRC32 over name length, name, price and weight bits
func framedChecksum(item Item) uint32 {
	crc := crc32.NewIEEE()

	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], uint32(len(item.Name)))
	crc.Write(raw[:])
	crc.Write([]byte(item.Name))
	binary.BigEndian.PutUint32(raw[:], uint32(item.Price))
	crc.Write(raw[:])
	binary.BigEndian.PutUint32(raw[:], math.Float32bits(item.Weight))
	crc.Write(raw[:])

	return crc.Sum32()
}
