package codec

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/itemcodec/pkg/buffer"
)

func encodeFramed(t *testing.T, item Item) []byte {
	t.Helper()
	b := buffer.New(buffer.DefaultInitialCapacity)
	defer b.Release()

	require.NoError(t, EncodeFramed(item, b))
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out
}

func TestFramed_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		item Item
	}{
		{name: "potion", item: Item{Name: "potion", Price: 100, Weight: 2.0}},
		{name: "price without zero byte", item: Item{Name: "potion", Price: 0x7F7F7F7F, Weight: 2.0}},
		{name: "embedded NUL survives", item: Item{Name: "po\x00tion", Price: 100, Weight: 2.0}},
		{name: "empty name", item: Item{Name: "", Price: 0, Weight: 0}},
		{name: "extremes", item: Item{Name: "x", Price: math.MinInt32, Weight: math.MaxFloat32}},
		{name: "long name", item: Item{Name: string(bytes.Repeat([]byte("n"), 1000)), Price: -1, Weight: 0.1}},
		{name: "unicode", item: Item{Name: "🧪 élixir", Price: 42, Weight: 0.25}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := encodeFramed(t, tc.item)
			assert.Len(t, encoded, FramedSize(tc.item))
			assert.Equal(t, FormatFramed, DetectFormat(encoded))

			decoded, err := DecodeFramed(encoded)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.item, decoded); diff != "" {
				t.Errorf("DecodeFramed mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFramed_Layout(t *testing.T) {
	encoded := encodeFramed(t, Item{Name: "potion", Price: 100, Weight: 2.0})

	magic := FramedMagic()
	assert.Equal(t, magic[:], encoded[0:4])
	assert.Equal(t, byte(FramedVersion), encoded[4])
	assert.Equal(t, uint32(6), binary.BigEndian.Uint32(encoded[9:13]))
	assert.Equal(t, "potion", string(encoded[13:19]))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x64}, encoded[19:23])
	assert.Equal(t, math.Float32bits(2.0), binary.BigEndian.Uint32(encoded[23:27]))
}

func TestFramed_TrailingBytesIgnored(t *testing.T) {
	encoded := encodeFramed(t, Item{Name: "potion", Price: 100, Weight: 2.0})
	padded := append(encoded, make([]byte, 37)...)

	decoded, err := DecodeFramed(padded)
	require.NoError(t, err)
	assert.Equal(t, "potion", decoded.Name)
}

func TestFramed_CorruptionDetected(t *testing.T) {
	item := Item{Name: "test item", Price: 1234, Weight: 9.5}
	encoded := encodeFramed(t, item)

	// Every byte after the length field is covered by the checksum.
	for pos := framedHeaderSize; pos < len(encoded); pos++ {
		corrupted := append([]byte(nil), encoded...)
		corrupted[pos] ^= 0xFF

		_, err := DecodeFramed(corrupted)
		assert.ErrorIs(t, err, ErrChecksumMismatch, "position %d", pos)
	}

	t.Run("corrupted checksum", func(t *testing.T) {
		corrupted := append([]byte(nil), encoded...)
		corrupted[5] ^= 0xFF
		_, err := DecodeFramed(corrupted)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})
}

func TestFramed_MalformedData(t *testing.T) {
	valid := encodeFramed(t, Item{Name: "potion", Price: 100, Weight: 2.0})

	testCases := []struct {
		name     string
		data     []byte
		expected error
	}{
		{name: "empty", data: []byte{}, expected: ErrMalformedInput},
		{name: "header only", data: valid[:framedHeaderSize], expected: ErrMalformedInput},
		{name: "truncated", data: valid[:len(valid)-1], expected: ErrMalformedInput},
		{
			name:     "missing magic",
			data:     append([]byte("XXXX"), valid[4:]...),
			expected: ErrMalformedInput,
		},
		{
			name: "declared name length beyond data",
			data: func() []byte {
				corrupted := append([]byte(nil), valid...)
				binary.BigEndian.PutUint32(corrupted[9:13], math.MaxUint32)
				return corrupted
			}(),
			expected: ErrMalformedInput,
		},
		{
			name: "unknown version",
			data: func() []byte {
				corrupted := append([]byte(nil), valid...)
				corrupted[4] = 9
				return corrupted
			}(),
			expected: ErrUnsupportedVersion,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeFramed(tc.data)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatLegacy, DetectFormat(nil))
	assert.Equal(t, FormatLegacy, DetectFormat([]byte("potion")))
	assert.Equal(t, FormatLegacy, DetectFormat([]byte{0x89, 'I', 'T'}))
	assert.Equal(t, FormatFramed, DetectFormat([]byte{0x89, 'I', 'T', 'M'}))
}

func TestFramedMagic_ReturnsCopy(t *testing.T) {
	encoded := encodeFramed(t, Item{Name: "potion", Price: 100, Weight: 2.0})

	tests := []struct {
		name   string
		mutate func(m *[4]byte)
	}{
		{"zeroed", func(m *[4]byte) { *m = [4]byte{} }},
		{"first byte", func(m *[4]byte) { m[0] = 'p' }},
		{"last byte", func(m *[4]byte) { m[3] ^= 0xFF }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			magic := FramedMagic()
			tt.mutate(&magic)

			assert.Equal(t, [4]byte{0x89, 'I', 'T', 'M'}, FramedMagic())
			assert.Equal(t, FormatFramed, DetectFormat(encoded))
			assert.Equal(t, FormatLegacy, DetectFormat([]byte("potion\x00\x00\x00\x64")))
		})
	}
}
