// Package asset moves buffers and strings between the codec layer and the
// filesystem or any other byte stream.
package asset

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/bytekit/pkg/codec"
)

// LoadFile reads the whole file at path into a buffer.
func LoadFile(path string) (codec.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return codec.Buffer{}, errors.Wrapf(err, "failed to read %s", path)
	}
	return codec.WrapBuffer(data), nil
}

// LoadReader reads r to EOF into a buffer.
func LoadReader(r io.Reader) (codec.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return codec.Buffer{}, errors.Wrap(err, "failed to read source")
	}
	return codec.WrapBuffer(data), nil
}

// LoadString reads r to EOF as a string.
func LoadString(r io.Reader) (string, error) {
	b, err := LoadReader(r)
	if err != nil {
		return "", err
	}
	return string(b.Bytes()), nil
}

// WriteFile writes b to path, creating parent directories as needed.
func WriteFile(path string, b codec.Buffer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, b.Bytes(), 0600); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// WriteString writes s to path, creating parent directories as needed.
func WriteString(path, s string) error {
	return WriteFile(path, codec.WrapBuffer([]byte(s)))
}
