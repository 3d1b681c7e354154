// Package codec provides lossless buffer compression for bytekit.
//
// The codec package turns an arbitrary byte buffer into a compressed frame
// and back. A frame carries the original size of the buffer so that the
// decompressor can allocate its output before inflating the payload.
//
// # Frame Format
//
// Frames are serialized in a binary format with the following structure:
//
//	[OriginalSize(4)][Payload]
//
// Fields:
//   - OriginalSize: 32-bit unsigned integer, size of the uncompressed buffer in bytes (little-endian)
//   - Payload: the compressed bytes produced by the codec's Algorithm
//
// There is no other metadata. In particular the frame does not name the
// algorithm, so the producer and consumer must be configured alike. Buffers
// larger than MaxFrameSize cannot be framed.
//
// # Algorithms
//
// Zlib is the default. Snappy, Zstd and S2 are available through
// WithAlgorithm or AlgorithmByName:
//
//	c := codec.NewBufferCodec(codec.WithAlgorithm(codec.Zstd), codec.WithLevel(3))
//
// # Usage
//
// Basic compression and decompression:
//
//	frame, err := codec.Compress(codec.BufferFrom(data))
//	if err != nil {
//	    return err
//	}
//
//	restored, err := codec.Decompress(frame)
//	if err != nil {
//	    return err // frame is corrupt
//	}
//
// # Error Handling
//
// Decompress fails with a *CorruptDataError, which matches ErrCorruptData,
// when:
//   - the frame is shorter than the header
//   - the payload is missing or truncated
//   - the payload inflates to fewer or more bytes than the header declares
//   - bytes follow the end of the compressed stream
//   - the algorithm's own checksum fails (zlib, zstd)
//   - the declared size is more than the payload could ever produce; this is
//     checked before the output buffer is allocated
//
// A failed Decompress never returns a partially filled buffer.
//
// # Thread Safety
//
// BufferCodec instances are immutable after construction and safe for
// concurrent use. Each call returns a newly allocated Buffer.
package codec
