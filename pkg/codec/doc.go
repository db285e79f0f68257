// Package codec provides item serialization and deserialization.
//
// An Item is a named thing with an int32 price and a float32 weight. The codec
// writes items into a growable buffer (see package buffer) and reads them back
// with a single forward-only cursor.
//
// # Legacy Format
//
// The legacy format is what existing item files contain:
//
//	[Name][Price(4)][Weight text]
//
// Fields:
//   - Name: the raw name bytes up to the first NUL, no length, no terminator
//   - Price: 32-bit signed integer (big-endian)
//   - Weight: the float promoted to double and rendered like C's %a
//     ("0x1p+1" for 2.0, "0x1p-1" for 0.5), no length, no terminator
//
// There is no magic number, version tag or total length.
//
// # Decoding Legacy Records
//
// Name and weight are recovered by scanning for the next zero byte or the end
// of the region. The zero byte is usually incidental: for "potion" priced at
// 100 the first byte of the price (0x00) ends the name at the right place. A
// price without a zero byte in its high-order position makes the name swallow
// the price bytes:
//
//	price 0x7F7F7F7F -> name "potion\x7f\x7f\x7f\x7f0x1p+1", price undecodable
//
// This is a known limitation of the legacy layout and is kept for file
// compatibility. Reads never run past the region; they fail with
// ErrMalformedInput instead.
//
// A NUL inside a name truncates it at encode time: "po\x00tion" is written and
// read back as "po".
//
// # Framed Format
//
// New data should use the framed v1 layout, which needs no scanning:
//
//	[Magic(4)][Version(1)][CRC32(4)][NameLen(4)][Name][Price(4)][Weight(4)]
//
// All integers are big-endian, Weight holds the IEEE-754 bits and the CRC32
// (IEEE) covers everything after it. The magic starts with 0x89 so
// RecordCodec.Decode can tell both formats apart and legacy data stays readable.
//
// # Usage
//
//	c := codec.NewRecordCodec(codec.FormatLegacy)
//
//	encoded, err := c.Encode(codec.Item{Name: "potion", Price: 100, Weight: 2.0})
//	if err != nil {
//	    return err
//	}
//
//	item, err := c.Decode(encoded)
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Decoding failures wrap ErrMalformedInput, ErrChecksumMismatch or
// ErrUnsupportedVersion and can be checked with errors.Is. A record is either
// fully decoded or not at all.
//
// # Thread Safety
//
// A RecordCodec is safe for concurrent use once configured. WithInitialCapacity
// mutates the codec and must only be called while constructing it, before the
// codec is shared. Buffers and Decoders are owned by one caller at a time.
package codec
