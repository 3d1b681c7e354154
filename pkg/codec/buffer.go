package codec

import "bytes"

// Buffer is an owned, contiguous region of bytes.
//
// Assigning a Buffer shares its bytes; use Clone for an independent copy and
// Take to move the contents out of a Buffer. The zero Buffer is a valid empty
// buffer.
type Buffer struct {
	data []byte
}

// NewBuffer returns a zero-filled buffer of the given size.
func NewBuffer(size int) Buffer {
	return Buffer{data: make([]byte, size)}
}

// NewBufferCapacity returns a zero-filled buffer of size bytes with room to
// grow to capacity bytes. capacity is raised to size if smaller.
func NewBufferCapacity(size, capacity int) Buffer {
	if capacity < size {
		capacity = size
	}
	return Buffer{data: make([]byte, size, capacity)}
}

// BufferFrom returns a buffer holding a copy of p.
func BufferFrom(p []byte) Buffer {
	if len(p) == 0 {
		return Buffer{}
	}
	return Buffer{data: bytes.Clone(p)}
}

// WrapBuffer returns a buffer that views p without copying. The caller must
// not modify p while the buffer is in use.
func WrapBuffer(p []byte) Buffer {
	return Buffer{data: p}
}

// Bytes returns the buffer contents. The slice aliases the buffer.
func (b Buffer) Bytes() []byte { return b.data }

// Size returns the number of bytes held.
func (b Buffer) Size() int { return len(b.data) }

// Cap returns the allocated capacity; Size() <= Cap() always holds.
func (b Buffer) Cap() int { return cap(b.data) }

// Clone returns a buffer with its own copy of the bytes.
func (b Buffer) Clone() Buffer { return BufferFrom(b.data) }

// Take moves the contents into the returned buffer and leaves b empty.
func (b *Buffer) Take() Buffer {
	out := *b
	b.data = nil
	return out
}

// Equal reports whether both buffers hold the same bytes.
func (b Buffer) Equal(other Buffer) bool {
	return bytes.Equal(b.data, other.data)
}
