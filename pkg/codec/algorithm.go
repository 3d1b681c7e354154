package codec

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// DefaultLevel selects each algorithm's own default compression level.
const DefaultLevel = -1

// Algorithm compresses a payload and inflates it into a buffer of known size.
type Algorithm interface {
	// Name returns the name accepted by AlgorithmByName.
	Name() string

	// Compress appends the compressed form of src to dst.
	Compress(dst, src []byte, level int) ([]byte, error)

	// Decompress inflates payload into dst. It must fill dst exactly and
	// fail if the payload describes more or fewer bytes.
	Decompress(dst, payload []byte) error
}

// sizeChecker is implemented by algorithms that can tell from the payload
// alone whether it could inflate to declared bytes. Decompress consults it
// before allocating the output buffer.
type sizeChecker interface {
	checkSize(declared int, payload []byte) error
}

// maxDeflateRatio bounds how far a deflate stream can expand: a 258 byte
// match costs at least two bits.
const maxDeflateRatio = 1032

// maxZstdRatio bounds how far a zstd frame can expand: a block holds at most
// 128 KiB and costs at least three bytes.
const maxZstdRatio = 1 << 16

var algorithms = map[string]Algorithm{
	Zlib.Name():   Zlib,
	Snappy.Name(): Snappy,
	Zstd.Name():   Zstd,
	S2.Name():     S2,
}

// AlgorithmByName returns the built-in algorithm with the given name.
func AlgorithmByName(name string) (Algorithm, error) {
	a, ok := algorithms[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}
	return a, nil
}

// AlgorithmNames lists the built-in algorithm names in sorted order.
func AlgorithmNames() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	// Zlib is the default algorithm. Levels follow compress/flate
	// (-1 default, 0 store, 1 fastest through 9 best).
	Zlib Algorithm = zlibAlgorithm{}

	// Snappy favours speed and ignores the level.
	Snappy Algorithm = snappyAlgorithm{}

	// Zstd maps levels with zstd.EncoderLevelFromZstd.
	Zstd Algorithm = zstdAlgorithm{}

	// S2 uses level 2 for EncodeBetter and 3 or more for EncodeBest.
	S2 Algorithm = s2Algorithm{}
)

type zlibAlgorithm struct{}

func (zlibAlgorithm) Name() string { return "zlib" }

func (zlibAlgorithm) Compress(dst, src []byte, level int) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	w, err := zlib.NewWriterLevel(buf, level)
	if err != nil {
		return nil, errors.Wrap(err, "zlib")
	}
	if _, err := w.Write(src); err != nil {
		return nil, errors.Wrap(err, "zlib")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "zlib")
	}
	return buf.Bytes(), nil
}

func (zlibAlgorithm) checkSize(declared int, payload []byte) error {
	if uint64(declared) > uint64(len(payload))*maxDeflateRatio {
		return corruptf("zlib payload of %d bytes cannot inflate to %d", len(payload), declared)
	}
	return nil
}

func (zlibAlgorithm) Decompress(dst, payload []byte) error {
	// bytes.Reader is an io.ByteReader, so the inflater never reads past the
	// end of the stream and br.Len() reports trailing bytes exactly.
	br := bytes.NewReader(payload)
	zr, err := zlib.NewReader(br)
	if err != nil {
		return corrupt("invalid zlib header", err)
	}
	defer zr.Close()

	if n, err := io.ReadFull(zr, dst); err != nil {
		return corrupt(fmt.Sprintf("payload inflated to %d bytes, header declares %d", n, len(dst)), err)
	}

	// Reading past the declared size must hit the end of the stream; this
	// is also where the adler32 checksum is verified.
	extra, err := io.Copy(io.Discard, io.LimitReader(zr, 1))
	if err != nil {
		return corrupt("zlib stream", err)
	}
	if extra != 0 {
		return corruptf("payload inflates past declared size %d", len(dst))
	}
	if br.Len() != 0 {
		return corruptf("%d trailing bytes after zlib stream", br.Len())
	}
	return nil
}

type snappyAlgorithm struct{}

func (snappyAlgorithm) Name() string { return "snappy" }

func (snappyAlgorithm) Compress(dst, src []byte, _ int) ([]byte, error) {
	return append(dst, snappy.Encode(nil, src)...), nil
}

func (snappyAlgorithm) checkSize(declared int, payload []byte) error {
	n, err := snappy.DecodedLen(payload)
	if err != nil {
		return corrupt("snappy block header", err)
	}
	if n != declared {
		return corruptf("snappy block decodes to %d bytes, header declares %d", n, declared)
	}
	return nil
}

func (a snappyAlgorithm) Decompress(dst, payload []byte) error {
	if err := a.checkSize(len(dst), payload); err != nil {
		return err
	}
	out, err := snappy.Decode(dst, payload)
	if err != nil {
		return corrupt("snappy block", err)
	}
	copy(dst, out)
	return nil
}

type zstdAlgorithm struct{}

func (zstdAlgorithm) Name() string { return "zstd" }

func (zstdAlgorithm) Compress(dst, src []byte, level int) ([]byte, error) {
	encLevel := zstd.SpeedDefault
	if level > 0 {
		encLevel = zstd.EncoderLevelFromZstd(level)
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(encLevel),
		zstd.WithEncoderConcurrency(1),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "zstd")
	}
	defer enc.Close()
	return enc.EncodeAll(src, dst), nil
}

// checkSize compares the frame content size recorded by the encoder with the
// declared size. Small inputs are encoded without one, so the expansion bound
// applies instead.
func (zstdAlgorithm) checkSize(declared int, payload []byte) error {
	var h zstd.Header
	if err := h.Decode(payload); err != nil {
		return corrupt("zstd frame header", err)
	}
	if h.HasFCS && h.FrameContentSize != uint64(declared) {
		return corruptf("zstd frame decodes to %d bytes, header declares %d", h.FrameContentSize, declared)
	}
	if uint64(declared) > uint64(len(payload))*maxZstdRatio {
		return corruptf("zstd payload of %d bytes cannot decode to %d", len(payload), declared)
	}
	return nil
}

func (zstdAlgorithm) Decompress(dst, payload []byte) error {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return errors.Wrap(err, "zstd")
	}
	defer dec.Close()

	out, err := dec.DecodeAll(payload, dst[:0])
	if err != nil {
		return corrupt("zstd frame", err)
	}
	if len(out) != len(dst) {
		return corruptf("zstd frame decodes to %d bytes, header declares %d", len(out), len(dst))
	}
	copy(dst, out)
	return nil
}

type s2Algorithm struct{}

func (s2Algorithm) Name() string { return "s2" }

func (s2Algorithm) Compress(dst, src []byte, level int) ([]byte, error) {
	var enc []byte
	switch {
	case level >= 3:
		enc = s2.EncodeBest(nil, src)
	case level == 2:
		enc = s2.EncodeBetter(nil, src)
	default:
		enc = s2.Encode(nil, src)
	}
	return append(dst, enc...), nil
}

func (s2Algorithm) checkSize(declared int, payload []byte) error {
	n, err := s2.DecodedLen(payload)
	if err != nil {
		return corrupt("s2 block header", err)
	}
	if n != declared {
		return corruptf("s2 block decodes to %d bytes, header declares %d", n, declared)
	}
	return nil
}

func (a s2Algorithm) Decompress(dst, payload []byte) error {
	if err := a.checkSize(len(dst), payload); err != nil {
		return err
	}
	out, err := s2.Decode(dst, payload)
	if err != nil {
		return corrupt("s2 block", err)
	}
	copy(dst, out)
	return nil
}
