package textconv

import (
	"encoding"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ToText renders v in its canonical text form.
//
// A TextMarshaler whose MarshalText fails is rendered with fmt's %v verb;
// use FormatText to observe the error instead.
func ToText[T any](v T) string {
	s, err := FormatText(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// FormatText renders v like ToText but reports MarshalText failures.
func FormatText[T any](v T) (string, error) {
	switch x := any(v).(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case uintptr:
		return strconv.FormatUint(uint64(x), 10), nil
	case float32:
		return formatFloat(float64(x), 32), nil
	case float64:
		return formatFloat(x, 64), nil
	}

	// Methods may be declared on either T or *T; v is a local copy so its
	// address can be taken.
	for _, candidate := range []any{v, &v} {
		if m, ok := candidate.(encoding.TextMarshaler); ok {
			b, err := m.MarshalText()
			if err != nil {
				return "", errors.Wrapf(err, "textconv: marshal %s", typeName[T]())
			}
			return string(b), nil
		}
	}
	for _, candidate := range []any{v, &v} {
		if s, ok := candidate.(fmt.Stringer); ok {
			return s.String(), nil
		}
	}
	if s, ok := formatKind(reflect.ValueOf(v)); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// FromText parses s as a value of type T.
func FromText[T any](s string) (T, error) {
	var v T
	if err := parseInto(&v, s); err != nil {
		var zero T
		return zero, newParseError[T](s, err)
	}
	return v, nil
}

// WriteText writes the text form of v to w.
func WriteText[T any](w io.Writer, v T) error {
	s, err := FormatText(v)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return errors.Wrap(err, "textconv: write")
	}
	return nil
}

// ReadText reads r to EOF and parses the whole input as a value of type T.
func ReadText[T any](r io.Reader) (T, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "textconv: read")
	}
	return FromText[T](string(b))
}

func parseInto(dst any, s string) error {
	switch p := dst.(type) {
	case *string:
		*p = s
		return nil
	case *[]byte:
		*p = []byte(s)
		return nil
	case encoding.TextUnmarshaler:
		return p.UnmarshalText([]byte(s))
	case fmt.Scanner:
		return scan(p, s)
	}

	// Named types without text methods parse by their underlying kind.
	v := reflect.ValueOf(dst).Elem()
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
		return nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			v.SetBytes([]byte(s))
			return nil
		}
	}

	if s == "" {
		return errEmptyInput
	}

	switch v.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return ErrUnsupportedType
	}
	return nil
}

// formatKind renders named types without text methods by their underlying
// kind, matching how parseInto reads them back.
func formatKind(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(v.Float(), v.Type().Bits()), true
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes()), true
		}
	}
	return "", false
}

// scan runs a fmt.Scanner over the whole of text. Anything left unread is an
// error.
func scan(dst fmt.Scanner, text string) error {
	r := strings.NewReader(text)
	if _, err := fmt.Fscan(r, dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyInput
		}
		return err
	}
	if r.Len() != 0 {
		return errTrailingInput
	}
	return nil
}

// formatFloat emits the shortest decimal that round-trips at bitSize,
// switching to exponent notation for very small or very large magnitudes.
func formatFloat(f float64, bitSize int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bitSize == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bitSize == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}

	b := strconv.AppendFloat(nil, f, format, -1, bitSize)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}
