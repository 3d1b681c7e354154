package codec

import (
	"encoding/binary"
	"math"
)

// HeaderSize is the size in bytes of the frame header.
const HeaderSize = 4

// MaxFrameSize is the largest original size a frame header can describe.
const MaxFrameSize = math.MaxUint32

// Header is the fixed prefix of every compressed frame.
type Header struct {
	OriginalSize uint32 // size of the uncompressed buffer in bytes
}

// PutHeader writes h into the first HeaderSize bytes of dst.
// Format: [OriginalSize(4) little-endian]
func PutHeader(dst []byte, h Header) {
	binary.LittleEndian.PutUint32(dst[0:HeaderSize], h.OriginalSize)
}

// ReadHeader splits frame into its header and payload.
func ReadHeader(frame []byte) (Header, []byte, error) {
	if len(frame) < HeaderSize {
		return Header{}, nil, corruptf("frame too short for header: %d < %d", len(frame), HeaderSize)
	}
	h := Header{OriginalSize: binary.LittleEndian.Uint32(frame[0:HeaderSize])}
	return h, frame[HeaderSize:], nil
}
