package buffer

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		initial  int
		expected int
	}{
		{name: "explicit capacity", initial: 32, expected: 32},
		{name: "default capacity", initial: DefaultInitialCapacity, expected: 16},
		{name: "zero falls back to default", initial: 0, expected: DefaultInitialCapacity},
		{name: "negative falls back to default", initial: -4, expected: DefaultInitialCapacity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := New(tc.initial)
			defer b.Release()

			assert.Equal(t, 0, b.Len())
			assert.Equal(t, tc.expected, b.Cap())
			assert.Equal(t, tc.expected, b.InitialCap())
			assert.Equal(t, 0, b.Grows())
			assert.Empty(t, b.Bytes())
		})
	}
}

func TestBuffer_EnsureCapacity(t *testing.T) {
	t.Run("no growth when it fits", func(t *testing.T) {
		b := New(16)
		b.EnsureCapacity(16)
		assert.Equal(t, 16, b.Cap())
		assert.Equal(t, 0, b.Grows())
	})

	t.Run("doubles until it fits", func(t *testing.T) {
		b := New(16)
		b.EnsureCapacity(64)
		assert.Equal(t, 64, b.Cap())
		assert.Equal(t, 2, b.Grows())
	})

	t.Run("idempotent", func(t *testing.T) {
		b := New(16)
		b.EnsureCapacity(20)
		b.EnsureCapacity(20)
		b.EnsureCapacity(20)
		assert.Equal(t, 32, b.Cap())
		assert.Equal(t, 1, b.Grows())
	})

	t.Run("never shrinks", func(t *testing.T) {
		b := New(16)
		b.EnsureCapacity(100)
		b.EnsureCapacity(0)
		b.EnsureCapacity(-5)
		assert.Equal(t, 128, b.Cap())
	})

	t.Run("accounts for written length", func(t *testing.T) {
		b := New(16)
		b.Append(bytes.Repeat([]byte("a"), 10))
		b.EnsureCapacity(7)
		assert.Equal(t, 32, b.Cap())
		assert.Equal(t, 10, b.Len())
	})
}

func TestBuffer_CapacityDoubles(t *testing.T) {
	sizes := []int{1, 3, 16, 0, 7, 31, 64, 2, 129, 5}

	b := New(DefaultInitialCapacity)
	defer b.Release()

	total := 0
	for _, n := range sizes {
		b.Append(bytes.Repeat([]byte{0xAB}, n))
		total += n

		require.Equal(t, total, b.Len())
		assert.GreaterOrEqual(t, b.Cap(), b.Len())
		assert.Equal(t, b.InitialCap()<<b.Grows(), b.Cap(), "capacity must be initial * 2^grows")

		ratio := b.Cap() / b.InitialCap()
		assert.Zero(t, b.Cap()%b.InitialCap())
		assert.Zero(t, ratio&(ratio-1), "capacity ratio %d is not a power of two", ratio)
	}
}

func TestBuffer_EnsureCapacityOverflow(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		written int
		n       int
	}{
		{"max int on empty buffer", 16, 0, math.MaxInt},
		{"length plus n wraps", 16, 5, math.MaxInt - 2},
		{"doubling passes max int", 3, 0, math.MaxInt - 10},
		{"odd capacity near max int", 7, 1, math.MaxInt - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.initial)
			b.Append(bytes.Repeat([]byte{'x'}, tt.written))
			capBefore, growsBefore := b.Cap(), b.Grows()

			assert.PanicsWithError(t, "buffer: capacity overflow", func() {
				b.EnsureCapacity(tt.n)
			})
			assert.Equal(t, capBefore, b.Cap())
			assert.Equal(t, growsBefore, b.Grows())
			assert.Equal(t, tt.written, b.Len())
		})
	}
}

func TestBuffer_AppendPreservesPriorBytes(t *testing.T) {
	b := New(4)
	defer b.Release()

	chunks := [][]byte{
		[]byte("potion"),
		{0x00, 0x00, 0x00, 0x64},
		[]byte("0x1p+1"),
		bytes.Repeat([]byte("z"), 100),
	}

	var expected []byte
	for _, chunk := range chunks {
		b.Append(chunk)
		expected = append(expected, chunk...)
		require.Equal(t, expected, b.Bytes())
	}
}

func TestBuffer_AppendString(t *testing.T) {
	b := New(2)
	b.AppendString("blueberries")
	assert.Equal(t, "blueberries", string(b.Bytes()))
	assert.Equal(t, 16, b.Cap())
}

func TestBuffer_Write(t *testing.T) {
	b := New(8)
	n, err := b.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "hello world", string(b.Bytes()))
}

func TestBuffer_Region(t *testing.T) {
	b := New(16)
	b.Append([]byte("potion"))

	region := b.Region()
	assert.Len(t, region, 16)
	assert.Equal(t, "potion", string(region[:6]))
	assert.Equal(t, make([]byte, 10), region[6:], "unwritten region must be zero")
}

func TestBuffer_Fill(t *testing.T) {
	t.Run("short source", func(t *testing.T) {
		b := New(16)
		n, err := b.Fill(strings.NewReader("potion"), 64)
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		assert.Equal(t, 6, b.Len())
		assert.Equal(t, 64, b.Cap())
	})

	t.Run("source longer than chunk", func(t *testing.T) {
		b := New(16)
		n, err := b.Fill(strings.NewReader(strings.Repeat("x", 100)), 64)
		require.NoError(t, err)
		assert.Equal(t, 64, n)
		assert.Equal(t, 64, b.Len())
	})

	t.Run("empty source", func(t *testing.T) {
		b := New(16)
		n, err := b.Fill(strings.NewReader(""), 64)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("read error", func(t *testing.T) {
		b := New(16)
		_, err := b.Fill(failingReader{}, 64)
		assert.Error(t, err)
	})
}

func TestBuffer_Release(t *testing.T) {
	b := New(16)
	b.Append([]byte("data"))
	b.Release()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
	assert.Panics(t, func() { b.Append([]byte("more")) })
	assert.Panics(t, func() { _ = b.Bytes() })
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}
