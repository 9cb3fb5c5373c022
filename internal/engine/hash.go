package engine

import "github.com/segmentio/fasthash/fnv1a"

// hash computes a stable 32-bit hash over b, seedless and
// allocation-free, using FNV-1a (see DESIGN.md for why this function was
// chosen).
func hash(b []byte) uint32 {
	return fnv1a.HashBytes32(b)
}

// reverseBits32 reverses the bit order of x using the classic five-stage
// swap-and-mask technique. The split-ordered list is kept sorted by this
// reversed value so that every modulo-T bucket is a contiguous span of the
// list: reversing a hash moves its low-order bits — the ones a power-of-two
// modulus depends on — into the high-order position, so sorting by reversed
// hash sorts primarily by bucket index.
func reverseBits32(x uint32) uint32 {
	x = (x&0x55555555)<<1 | (x&0xAAAAAAAA)>>1
	x = (x&0x33333333)<<2 | (x&0xCCCCCCCC)>>2
	x = (x&0x0F0F0F0F)<<4 | (x&0xF0F0F0F0)>>4
	x = (x&0x00FF00FF)<<8 | (x&0xFF00FF00)>>8
	x = x<<16 | x>>16
	return x
}

// bucketOf returns the logical bucket index for h under a table of size t
// (a power of two).
func bucketOf(h uint32, t int) int {
	return int(h) & (t - 1)
}
