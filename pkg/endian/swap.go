package endian

import (
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Swap reverses the bytes of x according to the size of T.
func Swap[T constraints.Integer](x T) T {
	switch unsafe.Sizeof(x) {
	case 1:
		return x
	case 2:
		return T(bits.ReverseBytes16(uint16(x)))
	case 4:
		return T(bits.ReverseBytes32(uint32(x)))
	default:
		return T(bits.ReverseBytes64(uint64(x)))
	}
}

// SwapInt8 returns x unchanged.
func SwapInt8(x int8) int8 { return x }

// SwapUint8 returns x unchanged.
func SwapUint8(x uint8) uint8 { return x }

// SwapInt16 reverses the 2 bytes of x.
func SwapInt16(x int16) int16 { return int16(bits.ReverseBytes16(uint16(x))) }

// SwapUint16 reverses the 2 bytes of x.
func SwapUint16(x uint16) uint16 { return bits.ReverseBytes16(x) }

// SwapInt32 reverses the 4 bytes of x.
func SwapInt32(x int32) int32 { return int32(bits.ReverseBytes32(uint32(x))) }

// SwapUint32 reverses the 4 bytes of x.
func SwapUint32(x uint32) uint32 { return bits.ReverseBytes32(x) }

// SwapInt64 reverses the 8 bytes of x.
func SwapInt64(x int64) int64 { return int64(bits.ReverseBytes64(uint64(x))) }

// SwapUint64 reverses the 8 bytes of x.
func SwapUint64(x uint64) uint64 { return bits.ReverseBytes64(x) }
