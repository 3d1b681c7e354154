package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"testing"
)

func allAlgorithms() []Algorithm {
	return []Algorithm{Zlib, Snappy, Zstd, S2}
}

func sequentialInts(n int) []byte {
	buf := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(int32(i)))
	}
	return buf
}

func randomBytes(n int, seed int64) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}

func TestBufferCodec_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "single byte", data: []byte{0x42}},
		{name: "short string", data: []byte("hello")},
		{name: "binary data", data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{name: "repeated", data: bytes.Repeat([]byte("v"), 10240)},
		{name: "sequential ints", data: sequentialInts(1000)},
		{name: "random", data: randomBytes(64*1024, 1)},
		{name: "unicode data", data: []byte("🔑 unicode key 🎯 unicode value with émojis")},
	}

	for _, alg := range allAlgorithms() {
		c := NewBufferCodec(WithAlgorithm(alg))
		for _, tc := range testCases {
			t.Run(alg.Name()+"/"+tc.name, func(t *testing.T) {
				in := BufferFrom(tc.data)

				frame, err := c.Compress(in)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				if frame.Size() < HeaderSize+1 {
					t.Fatalf("frame too small: %d bytes", frame.Size())
				}

				h, _, err := ReadHeader(frame.Bytes())
				if err != nil {
					t.Fatalf("ReadHeader failed: %v", err)
				}
				if int(h.OriginalSize) != len(tc.data) {
					t.Errorf("header size mismatch: got %d, want %d", h.OriginalSize, len(tc.data))
				}

				out, err := c.Decompress(frame)
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if out.Size() != len(tc.data) {
					t.Fatalf("size mismatch: got %d, want %d", out.Size(), len(tc.data))
				}
				if !bytes.Equal(out.Bytes(), tc.data) {
					t.Errorf("content mismatch after round trip")
				}
			})
		}
	}
}

func TestCompress_SequentialInts(t *testing.T) {
	var sum uint32
	for i := 0; i < 1000; i++ {
		sum += uint32(i)
	}

	b := BufferFrom(sequentialInts(1000))
	compressed, err := Compress(b)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if compressed.Size() >= b.Size() {
		t.Errorf("expected compression: %d >= %d", compressed.Size(), b.Size())
	}

	decompressed, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if decompressed.Size() != 4*1000 {
		t.Fatalf("size mismatch: got %d, want %d", decompressed.Size(), 4*1000)
	}

	var dSum uint32
	data := decompressed.Bytes()
	for i := 0; i < 1000; i++ {
		dSum += binary.LittleEndian.Uint32(data[4*i:])
	}
	if dSum != sum {
		t.Errorf("checksum mismatch: got %d, want %d", dSum, sum)
	}
}

func TestCompress_ShrinksRedundantInput(t *testing.T) {
	in := BufferFrom(bytes.Repeat([]byte("user:123 john@example.com "), 200))
	for _, alg := range allAlgorithms() {
		t.Run(alg.Name(), func(t *testing.T) {
			frame, err := NewBufferCodec(WithAlgorithm(alg)).Compress(in)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			if frame.Size() >= in.Size() {
				t.Errorf("expected %d < %d", frame.Size(), in.Size())
			}
		})
	}
}

func TestCompress_Levels(t *testing.T) {
	in := BufferFrom(sequentialInts(4096))
	testCases := []struct {
		alg   Algorithm
		level int
	}{
		{Zlib, 0},
		{Zlib, 1},
		{Zlib, 9},
		{Zstd, 1},
		{Zstd, 19},
		{S2, 2},
		{S2, 3},
	}

	for _, tc := range testCases {
		c := NewBufferCodec(WithAlgorithm(tc.alg), WithLevel(tc.level))
		frame, err := c.Compress(in)
		if err != nil {
			t.Fatalf("%s level %d: Compress failed: %v", tc.alg.Name(), tc.level, err)
		}
		out, err := c.Decompress(frame)
		if err != nil {
			t.Fatalf("%s level %d: Decompress failed: %v", tc.alg.Name(), tc.level, err)
		}
		if !out.Equal(in) {
			t.Errorf("%s level %d: content mismatch", tc.alg.Name(), tc.level)
		}
	}

	if _, err := NewBufferCodec(WithLevel(42)).Compress(in); err == nil {
		t.Error("expected invalid zlib level to fail")
	}
}

func TestCompress_InputUntouched(t *testing.T) {
	data := sequentialInts(256)
	orig := bytes.Clone(data)

	frame, err := Compress(WrapBuffer(data))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if !bytes.Equal(data, orig) {
		t.Fatal("Compress modified its input")
	}

	out, err := Decompress(frame)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	out.Bytes()[0] ^= 0xFF
	if !bytes.Equal(data, orig) {
		t.Fatal("decompressed buffer aliases the input")
	}
}

func TestDecompress_Corruption(t *testing.T) {
	data := sequentialInts(1000)

	for _, alg := range allAlgorithms() {
		c := NewBufferCodec(WithAlgorithm(alg))
		frame, err := c.Compress(BufferFrom(data))
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
		good := frame.Bytes()

		tamperSize := func(delta int) []byte {
			b := bytes.Clone(good)
			binary.LittleEndian.PutUint32(b, uint32(len(data)+delta))
			return b
		}

		testCases := []struct {
			name  string
			frame []byte
		}{
			{name: "empty frame", frame: nil},
			{name: "truncated header", frame: good[:HeaderSize-1]},
			{name: "header only", frame: good[:HeaderSize]},
			{name: "truncated payload", frame: good[:len(good)-1]},
			{name: "half payload", frame: good[:HeaderSize+(len(good)-HeaderSize)/2]},
			{name: "size too large", frame: tamperSize(1)},
			{name: "size too small", frame: tamperSize(-1)},
			{name: "size zero", frame: tamperSize(-len(data))},
		}

		for _, tc := range testCases {
			t.Run(alg.Name()+"/"+tc.name, func(t *testing.T) {
				out, err := c.Decompress(WrapBuffer(tc.frame))
				if err == nil {
					t.Fatalf("expected error, got %d byte buffer", out.Size())
				}
				if !errors.Is(err, ErrCorruptData) {
					t.Errorf("expected ErrCorruptData, got %v", err)
				}
				var cde *CorruptDataError
				if !errors.As(err, &cde) {
					t.Errorf("expected *CorruptDataError, got %T", err)
				}
				if out.Size() != 0 {
					t.Errorf("expected empty buffer on error, got %d bytes", out.Size())
				}
			})
		}
	}
}

func TestDecompress_ChecksummedPayloads(t *testing.T) {
	data := randomBytes(4096, 7)
	for _, alg := range []Algorithm{Zlib, Zstd} {
		t.Run(alg.Name(), func(t *testing.T) {
			c := NewBufferCodec(WithAlgorithm(alg))
			frame, err := c.Compress(BufferFrom(data))
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			b := frame.Clone().Bytes()
			b[len(b)/2] ^= 0x01

			if _, err := c.Decompress(WrapBuffer(b)); !errors.Is(err, ErrCorruptData) {
				t.Errorf("expected ErrCorruptData for flipped bit, got %v", err)
			}
		})
	}
}

func TestDecompress_TrailingBytes(t *testing.T) {
	for _, alg := range []Algorithm{Zlib, Snappy} {
		t.Run(alg.Name(), func(t *testing.T) {
			c := NewBufferCodec(WithAlgorithm(alg))
			frame, err := c.Compress(BufferFrom([]byte("hello, world")))
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			b := append(frame.Clone().Bytes(), 0x00)

			if _, err := c.Decompress(WrapBuffer(b)); !errors.Is(err, ErrCorruptData) {
				t.Errorf("expected ErrCorruptData for trailing byte, got %v", err)
			}
		})
	}
}

func TestDecompress_WrongAlgorithm(t *testing.T) {
	frame, err := NewBufferCodec(WithAlgorithm(Zstd)).Compress(BufferFrom([]byte("hello, world")))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if _, err := NewBufferCodec(WithAlgorithm(Zlib)).Decompress(frame); !errors.Is(err, ErrCorruptData) {
		t.Errorf("expected ErrCorruptData, got %v", err)
	}
}

func TestDecompress_ImplausibleSize(t *testing.T) {
	// A valid zlib stream for empty input under a header declaring 2 GiB.
	hugeZlib := []byte{0x00, 0x00, 0x00, 0x80, 0x78, 0x9c, 0x03, 0x00}
	if _, err := Decompress(WrapBuffer(hugeZlib)); !errors.Is(err, ErrCorruptData) {
		t.Errorf("expected ErrCorruptData for 0x80000000 header, got %v", err)
	}

	for _, alg := range allAlgorithms() {
		t.Run(alg.Name(), func(t *testing.T) {
			c := NewBufferCodec(WithAlgorithm(alg))
			frame, err := c.Compress(BufferFrom([]byte("tiny")))
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}

			for _, size := range []uint32{0x80000000, math.MaxUint32} {
				b := frame.Clone().Bytes()
				binary.LittleEndian.PutUint32(b, size)

				var before, after runtime.MemStats
				runtime.ReadMemStats(&before)
				_, err := c.Decompress(WrapBuffer(b))
				runtime.ReadMemStats(&after)

				if !errors.Is(err, ErrCorruptData) {
					t.Errorf("expected ErrCorruptData for size %#x, got %v", size, err)
				}
				if grown := after.TotalAlloc - before.TotalAlloc; grown > 64<<20 {
					t.Errorf("allocated %d bytes before rejecting size %#x", grown, size)
				}
			}
		})
	}
}

func TestBufferCodec_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 8
	framesPerGoroutine := 20

	for _, alg := range allAlgorithms() {
		c := NewBufferCodec(WithAlgorithm(alg))
		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(c *BufferCodec, id int) {
				defer wg.Done()
				for j := 0; j < framesPerGoroutine; j++ {
					data := randomBytes(1024+j, int64(id*framesPerGoroutine+j))
					frame, err := c.Compress(WrapBuffer(data))
					if err != nil {
						t.Errorf("%s: Compress failed: %v", c.Algorithm().Name(), err)
						return
					}
					out, err := c.Decompress(frame)
					if err != nil {
						t.Errorf("%s: Decompress failed: %v", c.Algorithm().Name(), err)
						return
					}
					if !bytes.Equal(out.Bytes(), data) {
						t.Errorf("%s: round trip mismatch in goroutine %d", c.Algorithm().Name(), id)
						return
					}
				}
			}(c, i)
		}
	}

	// The package-level codec is shared too.
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			data := sequentialInts(100 + id)
			frame, err := Compress(BufferFrom(data))
			if err != nil {
				t.Errorf("Compress failed: %v", err)
				return
			}
			out, err := Decompress(frame)
			if err != nil || !bytes.Equal(out.Bytes(), data) {
				t.Errorf("default codec round trip failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
}

func TestBufferCodec_MaxSize(t *testing.T) {
	c := NewBufferCodec(WithMaxSize(16))

	if _, err := c.Compress(NewBuffer(17)); !errors.Is(err, ErrBufferTooLarge) {
		t.Errorf("expected ErrBufferTooLarge, got %v", err)
	}

	frame, err := Compress(NewBuffer(17))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if _, err := c.Decompress(frame); !errors.Is(err, ErrCorruptData) {
		t.Errorf("expected ErrCorruptData for oversized header, got %v", err)
	}

	frame, err = c.Compress(NewBuffer(16))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if _, err := c.Decompress(frame); err != nil {
		t.Errorf("Decompress failed: %v", err)
	}
}

func TestAlgorithmByName(t *testing.T) {
	for _, name := range AlgorithmNames() {
		alg, err := AlgorithmByName(name)
		if err != nil {
			t.Fatalf("AlgorithmByName(%q) failed: %v", name, err)
		}
		if alg.Name() != name {
			t.Errorf("got %q, want %q", alg.Name(), name)
		}
	}

	if _, err := AlgorithmByName("lz4"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}

	names := AlgorithmNames()
	want := []string{"s2", "snappy", "zlib", "zstd"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("got %v, want %v", names, want)
		}
	}
}

func TestBufferCodec_Defaults(t *testing.T) {
	c := NewBufferCodec(WithAlgorithm(nil))
	if c.Algorithm() != Zlib {
		t.Errorf("expected zlib default, got %s", c.Algorithm().Name())
	}
}
