// Package textconv converts values to and from their canonical text form.
//
// ToText and FromText are generic over the value type. Built-in strings,
// booleans, integers and floats are handled directly. Any other type takes
// part by implementing the usual Go text capabilities:
//
//	encoding.TextMarshaler / encoding.TextUnmarshaler
//	fmt.Stringer / fmt.Scanner
//
// There is no registry of supported types; a new type is convertible as soon
// as it has the methods.
//
// # Floating point
//
// Floats are rendered with the shortest decimal that parses back to the same
// value at the type's own precision, so ToText(123.45) and
// ToText(float32(123.45)) are both "123.45". Values whose decimal exponent is
// below -6 or at least 21 use exponent notation ("1e-07" becomes "1e-7").
//
// # Errors
//
// FromText never returns a partial value. Empty numeric input, malformed
// syntax, out-of-range numbers and trailing input all produce a *ParseError,
// which matches ErrParse with errors.Is.
package textconv
