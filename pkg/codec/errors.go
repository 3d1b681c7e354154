package codec

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrCorruptData is matched by every *CorruptDataError.
	ErrCorruptData = errors.New("codec: corrupt data")

	// ErrBufferTooLarge is returned when a buffer cannot be described by the
	// frame header, or exceeds the codec's configured maximum.
	ErrBufferTooLarge = errors.New("codec: buffer too large")

	// ErrUnknownAlgorithm is returned by AlgorithmByName.
	ErrUnknownAlgorithm = errors.New("codec: unknown algorithm")
)

// CorruptDataError reports a frame whose header and payload are inconsistent.
type CorruptDataError struct {
	Reason string
	Err    error
}

func (e *CorruptDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("codec: corrupt data: %s: %v", e.Reason, e.Err)
	}
	return "codec: corrupt data: " + e.Reason
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// Is reports whether target is ErrCorruptData.
func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }

func corrupt(reason string, err error) error {
	return &CorruptDataError{Reason: reason, Err: err}
}

func corruptf(format string, args ...interface{}) error {
	return &CorruptDataError{Reason: fmt.Sprintf(format, args...)}
}
