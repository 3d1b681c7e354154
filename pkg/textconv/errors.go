package textconv

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("textconv: parse error")

	// ErrUnsupportedType is wrapped by a *ParseError when the target type
	// has no way to be read from text.
	ErrUnsupportedType = errors.New("type cannot be parsed from text")

	errTrailingInput = errors.New("unexpected trailing input")
	errEmptyInput    = errors.New("empty input")
)

// ParseError reports text that does not denote a value of the requested type.
type ParseError struct {
	Type string // Go type name of the requested value
	Text string // input that failed to parse
	Err  error  // underlying cause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("textconv: cannot parse %q as %s: %v", e.Text, e.Type, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func newParseError[T any](text string, err error) *ParseError {
	return &ParseError{Type: typeName[T](), Text: text, Err: err}
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
