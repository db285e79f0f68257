// Package buffer provides an owned, append-only byte store that doubles its
// capacity on demand.
//
// A Buffer is exclusively owned by one caller for its whole lifetime:
//
//	b := buffer.New(buffer.DefaultInitialCapacity)
//	defer b.Release()
//	b.Append(data)
//
// Buffers are not safe for concurrent use.
package buffer

import (
	"errors"
	"io"
	"math"
)

// DefaultInitialCapacity is the capacity used when New is given a non-positive value
const DefaultInitialCapacity = 16

var errCapacityOverflow = errors.New("buffer: capacity overflow")

// Buffer is a contiguous byte region with an explicit capacity and length.
// Capacity is always InitialCap() * 2^Grows() and never below Len().
type Buffer struct {
	data     []byte // len(data) is the allocated capacity
	length   int    // bytes written
	initial  int
	grows    int
	released bool
}

// New creates an empty buffer with the given initial capacity
func New(initialCapacity int) *Buffer {
	if initialCapacity <= 0 {
		initialCapacity = DefaultInitialCapacity
	}
	return &Buffer{
		data:    make([]byte, initialCapacity),
		initial: initialCapacity,
	}
}

// EnsureCapacity doubles the capacity until n more bytes fit. Existing bytes are
// preserved and the buffer never shrinks. It panics with errCapacityOverflow,
// leaving the buffer unchanged, when the doubled capacity would not fit in an int.
func (b *Buffer) EnsureCapacity(n int) {
	b.mustBeLive()
	if n <= 0 || n <= len(b.data)-b.length {
		return
	}
	if n > math.MaxInt-b.length {
		panic(errCapacityOverflow)
	}

	need := b.length + n
	capacity, grows := len(b.data), 0
	for need > capacity {
		if capacity > math.MaxInt/2 {
			panic(errCapacityOverflow)
		}
		capacity *= 2
		grows++
	}

	grown := make([]byte, capacity)
	copy(grown, b.data[:b.length])
	b.data = grown
	b.grows += grows
}

// Append copies p to the end of the written content
func (b *Buffer) Append(p []byte) {
	b.EnsureCapacity(len(p))
	copy(b.data[b.length:], p)
	b.length += len(p)
}

// AppendString is Append for string data without an intermediate conversion
func (b *Buffer) AppendString(s string) {
	b.EnsureCapacity(len(s))
	copy(b.data[b.length:], s)
	b.length += len(s)
}

// Write implements io.Writer. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

// Fill reads at most n bytes from r into the buffer. A source shorter than n is
// not an error; the remaining region stays zeroed.
func (b *Buffer) Fill(r io.Reader, n int) (int, error) {
	b.EnsureCapacity(n)
	read, err := io.ReadFull(r, b.data[b.length:b.length+n])
	b.length += read
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return read, nil
	}
	return read, err
}

// Bytes returns the written content. The slice aliases the buffer and is only
// valid until the next append or Release.
func (b *Buffer) Bytes() []byte {
	b.mustBeLive()
	return b.data[:b.length]
}

// Region returns the whole allocated region. Bytes past Len() are zero.
func (b *Buffer) Region() []byte {
	b.mustBeLive()
	return b.data
}

// Len returns the number of bytes written
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the allocated capacity
func (b *Buffer) Cap() int {
	return len(b.data)
}

// InitialCap returns the capacity the buffer was created with
func (b *Buffer) InitialCap() int {
	return b.initial
}

// Grows returns how many times the capacity has doubled
func (b *Buffer) Grows() int {
	return b.grows
}

// Release drops the backing storage. The buffer must not be used afterwards.
func (b *Buffer) Release() {
	b.data = nil
	b.length = 0
	b.released = true
}

func (b *Buffer) mustBeLive() {
	if b.released {
		panic("buffer: use after release")
	}
}
