package codec

import (
	"bytes"
	"testing"
)

func TestBuffer_Construction(t *testing.T) {
	b := NewBuffer(8)
	if b.Size() != 8 || b.Cap() < b.Size() {
		t.Fatalf("unexpected size/cap: %d/%d", b.Size(), b.Cap())
	}
	if !bytes.Equal(b.Bytes(), make([]byte, 8)) {
		t.Error("NewBuffer is not zero-filled")
	}

	b = NewBufferCapacity(4, 16)
	if b.Size() != 4 || b.Cap() != 16 {
		t.Errorf("expected 4/16, got %d/%d", b.Size(), b.Cap())
	}

	b = NewBufferCapacity(4, 1)
	if b.Cap() < b.Size() {
		t.Errorf("capacity %d below size %d", b.Cap(), b.Size())
	}

	var zero Buffer
	if zero.Size() != 0 || zero.Bytes() != nil {
		t.Error("zero Buffer should be empty")
	}
}

func TestBufferFrom_Copies(t *testing.T) {
	src := []byte("hello")
	b := BufferFrom(src)
	src[0] = 'j'

	if string(b.Bytes()) != "hello" {
		t.Errorf("BufferFrom did not copy: %q", b.Bytes())
	}
	if BufferFrom(nil).Size() != 0 {
		t.Error("BufferFrom(nil) should be empty")
	}
}

func TestWrapBuffer_Views(t *testing.T) {
	src := []byte("hello")
	b := WrapBuffer(src)
	src[0] = 'j'

	if string(b.Bytes()) != "jello" {
		t.Errorf("WrapBuffer should alias its input: %q", b.Bytes())
	}
}

func TestBuffer_Clone(t *testing.T) {
	b := BufferFrom([]byte{1, 2, 3})
	c := b.Clone()
	c.Bytes()[0] = 9

	if b.Bytes()[0] != 1 {
		t.Error("Clone shares memory with the original")
	}
	if b.Equal(c) {
		t.Error("modified clone should differ")
	}
}

func TestBuffer_Take(t *testing.T) {
	b := BufferFrom([]byte{1, 2, 3})
	moved := b.Take()

	if b.Size() != 0 || b.Bytes() != nil {
		t.Errorf("source not empty after Take: %d bytes", b.Size())
	}
	if !moved.Equal(BufferFrom([]byte{1, 2, 3})) {
		t.Errorf("moved buffer has wrong content: %v", moved.Bytes())
	}
}
