package codec

import (
	"math"

	"github.com/cockroachdb/errors"
)

// BufferCodec compresses buffers into self-describing frames.
type BufferCodec struct {
	algorithm Algorithm
	level     int
	maxSize   uint64
}

// Option configures a BufferCodec.
type Option func(c *BufferCodec)

// WithAlgorithm selects the payload algorithm. Frames carry no algorithm
// tag, so both ends must agree on it.
func WithAlgorithm(a Algorithm) Option {
	return func(c *BufferCodec) {
		if a != nil {
			c.algorithm = a
		}
	}
}

// WithLevel sets the compression level passed to the algorithm.
func WithLevel(level int) Option {
	return func(c *BufferCodec) {
		c.level = level
	}
}

// WithMaxSize caps the original size accepted by Compress and Decompress.
// Decompress checks it before allocating, so a tampered header cannot force
// a large allocation.
func WithMaxSize(n uint64) Option {
	return func(c *BufferCodec) {
		if n > 0 && n < MaxFrameSize {
			c.maxSize = n
		}
	}
}

// NewBufferCodec creates a codec; without options it uses Zlib at its
// default level.
func NewBufferCodec(opts ...Option) *BufferCodec {
	c := &BufferCodec{
		algorithm: Zlib,
		level:     DefaultLevel,
		maxSize:   MaxFrameSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Algorithm returns the payload algorithm.
func (c *BufferCodec) Algorithm() Algorithm { return c.algorithm }

// Compress returns a new frame: [OriginalSize(4) little-endian][payload].
func (c *BufferCodec) Compress(b Buffer) (Buffer, error) {
	size := uint64(b.Size())
	if size > c.maxSize {
		return Buffer{}, errors.Wrapf(ErrBufferTooLarge, "%d bytes exceeds %d", size, c.maxSize)
	}

	frame := make([]byte, HeaderSize, HeaderSize+b.Size()/2+64)
	PutHeader(frame, Header{OriginalSize: uint32(size)})

	frame, err := c.algorithm.Compress(frame, b.Bytes(), c.level)
	if err != nil {
		return Buffer{}, errors.Wrapf(err, "codec: compress with %s", c.algorithm.Name())
	}
	return Buffer{data: frame}, nil
}

// Decompress inflates a frame produced by Compress into a new buffer of
// exactly the original size.
func (c *BufferCodec) Decompress(frame Buffer) (Buffer, error) {
	h, payload, err := ReadHeader(frame.Bytes())
	if err != nil {
		return Buffer{}, err
	}
	if uint64(h.OriginalSize) > c.maxSize {
		return Buffer{}, corruptf("declared size %d exceeds limit %d", h.OriginalSize, c.maxSize)
	}
	if uint64(h.OriginalSize) > uint64(math.MaxInt) {
		return Buffer{}, corruptf("declared size %d exceeds addressable memory", h.OriginalSize)
	}
	if len(payload) == 0 {
		return Buffer{}, corruptf("frame has no payload")
	}
	// Reject sizes the payload cannot produce before allocating for them.
	if sc, ok := c.algorithm.(sizeChecker); ok {
		if err := sc.checkSize(int(h.OriginalSize), payload); err != nil {
			return Buffer{}, err
		}
	}

	out := NewBuffer(int(h.OriginalSize))
	if err := c.algorithm.Decompress(out.data, payload); err != nil {
		if errors.Is(err, ErrCorruptData) {
			return Buffer{}, err
		}
		return Buffer{}, corrupt(c.algorithm.Name()+" payload", err)
	}
	return out, nil
}

var defaultCodec = NewBufferCodec()

// Compress compresses b with the default codec.
func Compress(b Buffer) (Buffer, error) {
	return defaultCodec.Compress(b)
}

// Decompress inflates a frame produced by Compress.
func Decompress(frame Buffer) (Buffer, error) {
	return defaultCodec.Decompress(frame)
}
