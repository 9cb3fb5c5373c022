// Package handle defines the value type callers hold for an interned
// string: a small, copyable, comparable reference to an address-stable
// node, cheap enough to pass by value and compare by identity.
package handle

import (
	"bytes"
	"unsafe"

	"github.com/bibmaster/dictstring/internal/node"
)

// Handle is a reference to one entry in a dictionary. The zero value is a
// valid handle for the empty string — it never needs to be constructed
// through a dictionary to be usable.
//
// Two handles obtained from the same dictionary compare equal with Equal
// if and only if they were interned from equal byte content: interning is
// deduplicating, so equal content always yields the same underlying node.
// Handles obtained from different dictionaries are never comparable this
// way, since each dictionary owns a disjoint set of nodes.
type Handle struct {
	n *node.Node
}

// From wraps n in a Handle. n must not be nil; use the zero Handle for the
// empty string instead.
func From(n *node.Node) Handle {
	return Handle{n: n}
}

func (h Handle) target() *node.Node {
	if h.n == nil {
		return node.Empty
	}
	return h.n
}

// IsEmpty reports whether h refers to the empty string.
func (h Handle) IsEmpty() bool {
	return h.Size() == 0
}

// Size returns the length of the referenced string in bytes.
func (h Handle) Size() int {
	return h.target().Size()
}

// Hash returns the stored 32-bit hash of the referenced string.
func (h Handle) Hash() uint32 {
	return h.target().Hash()
}

// Bytes returns the referenced string's content, excluding the trailing
// NUL. The returned slice aliases arena-owned memory and must not be
// mutated by the caller; it remains valid for as long as the owning
// dictionary is open.
func (h Handle) Bytes() []byte {
	return h.target().Bytes()
}

// String returns the referenced string's content as a string, copying it.
func (h Handle) String() string {
	return string(h.Bytes())
}

// Data returns a pointer to the first byte of the NUL-terminated payload —
// size()+1 bytes, including the trailing NUL — mirroring the raw-pointer
// view a native caller would see. The pointer remains valid for as long as
// the owning dictionary is open.
func (h Handle) Data() *byte {
	return unsafe.SliceData(h.target().Data())
}

// Equal reports whether h and other refer to the same node. Because
// interning deduplicates by content within a dictionary, this is
// equivalent to content equality for handles drawn from the same
// dictionary, and is an O(1) pointer comparison rather than a byte
// comparison.
func (h Handle) Equal(other Handle) bool {
	return h.target() == other.target()
}

// Less reports whether h's content sorts lexicographically before
// other's. Unlike Equal, this always performs a byte comparison — handle
// identity says nothing about byte order.
func (h Handle) Less(other Handle) bool {
	return bytes.Compare(h.Bytes(), other.Bytes()) < 0
}
