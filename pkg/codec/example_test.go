package codec_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/ssargent/itemcodec/pkg/buffer"
	"github.com/ssargent/itemcodec/pkg/codec"
)

// ExampleRecordCodec_legacy demonstrates the legacy item layout
func ExampleRecordCodec_legacy() {
	c := codec.NewRecordCodec(codec.FormatLegacy)

	encoded, err := c.Encode(codec.Item{Name: "potion", Price: 100, Weight: 2.0})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes: %x\n", len(encoded), encoded)

	item, err := c.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(item)

	// Output:
	// Encoded 16 bytes: 706f74696f6e00000064307831702b31
	// potion
	// price: 100
	// weight: 2.000000
}

// ExampleRecordCodec_framed demonstrates the framed layout
func ExampleRecordCodec_framed() {
	c := codec.NewRecordCodec(codec.FormatFramed)

	encoded, err := c.Encode(codec.Item{Name: "potion", Price: 0x7F7F7F7F, Weight: 2.0})
	if err != nil {
		log.Fatal(err)
	}

	item, err := c.Decode(encoded)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Encoded %d bytes\n", len(encoded))
	fmt.Printf("Name: %s, Price: %#x\n", item.Name, item.Price)

	// Output:
	// Encoded 27 bytes
	// Name: potion, Price: 0x7f7f7f7f
}

// ExampleDecoder demonstrates field-by-field decoding with one cursor
func ExampleDecoder() {
	b := buffer.New(buffer.DefaultInitialCapacity)
	defer b.Release()

	codec.EncodeString("blueberries", b)
	codec.EncodeInt32(15, b)
	codec.EncodeFloat(0.5, b)

	d := codec.NewDecoder(b.Bytes())
	name, _ := d.DecodeString()
	price, _ := d.DecodeInt32()
	weight, _ := d.DecodeFloat()

	fmt.Printf("%s %d %g (consumed %d of %d bytes)\n", name, price, weight, d.Offset(), b.Len())

	// Output:
	// blueberries 15 0.5 (consumed 21 of 21 bytes)
}

// ExampleDecodeItem_errorHandling demonstrates error handling
func ExampleDecodeItem_errorHandling() {
	_, err := codec.DecodeItem([]byte("potion"))
	if errors.Is(err, codec.ErrMalformedInput) {
		fmt.Printf("Decode error: %v\n", err)
	}

	// Output:
	// Decode error: failed to decode price: malformed input: need 4 bytes for int32 at offset 6, have 0
}
