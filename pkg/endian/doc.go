// Package endian reverses the byte order of fixed-width integers.
//
// Every function operates on the two's complement bit pattern only, so the
// signed and unsigned variants of a width produce the same permutation:
//
//	SwapUint32(0xBBAAFFEF) == 0xEFFFAABB
//	SwapInt16(-129)        == 0x7FFF
//
// The 8-bit variants are the identity. Applying any swap twice returns the
// original value.
//
// Swap is the generic entry point. It resolves the width from the type
// argument at the call site, which makes it usable with named integer types
// and with the platform-width int, uint and uintptr.
package endian
