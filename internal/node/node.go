// Package node defines the split-ordered list's element type: an
// immutable, address-stable record carrying a byte string's hash, length,
// and NUL-terminated payload, threaded into the list via an atomically
// published next pointer.
package node

import "sync/atomic"

// Node is one entry in the split-ordered list. Content is written in full
// before a Node is ever published to another goroutine — via a bucket head
// or another Node's next pointer — and is never modified afterward. Only
// next changes post-publication, during insertion and bucket splits, and
// always through an atomic release-store.
type Node struct {
	hash uint32
	size uint32
	next atomic.Pointer[Node]
	data []byte // size+1 bytes: the string followed by a trailing NUL.
}

// emptyData backs the package-level empty sentinel; it is never linked into
// any list and never mutated.
var emptyData = []byte{0}

// Empty is the statically allocated empty node used as the target for
// default-constructed handles. size==0, hash==0, a single NUL byte. It is
// never linked into any dictionary's list.
var Empty = &Node{data: emptyData}

// New constructs a Node whose payload is exactly size+1 bytes: content
// followed by a trailing NUL. payload must already be that length and must
// have been obtained from an arena allocation (or equivalent address-stable
// storage) — New does not copy it. The returned Node's next pointer is the
// zero value (nil); callers splice it into the list themselves as part of
// the insertion protocol.
func New(hash uint32, size int, payload []byte) *Node {
	return &Node{hash: hash, size: uint32(size), data: payload}
}

// Hash returns the node's stored 32-bit hash.
func (n *Node) Hash() uint32 {
	return n.hash
}

// Size returns the byte length of the interned string, excluding the
// trailing NUL.
func (n *Node) Size() int {
	return int(n.size)
}

// Data returns the NUL-terminated byte payload: size()+1 bytes, the last of
// which is always 0.
func (n *Node) Data() []byte {
	return n.data
}

// Bytes returns just the content bytes, excluding the trailing NUL.
func (n *Node) Bytes() []byte {
	return n.data[:n.size]
}

// Next returns the next node in the split-ordered list via an acquire-load,
// matching the release-store used to publish it.
func (n *Node) Next() *Node {
	return n.next.Load()
}

// StoreNext publishes next as this node's successor via a release-store.
// Callers must hold the engine's insertion lock.
func (n *Node) StoreNext(next *Node) {
	n.next.Store(next)
}

// NextPointer exposes the atomic next pointer directly, for callers (bucket
// heads during growth) that need to seed a new head with exactly the node a
// predecessor already points to, without an intermediate load/store.
func (n *Node) NextPointer() *atomic.Pointer[Node] {
	return &n.next
}

// Equal reports whether n's content matches b byte-for-byte. It does not
// consult hash; callers that already matched on hash should call this only
// to rule out collisions.
func (n *Node) Equal(b []byte) bool {
	return string(n.Bytes()) == string(b)
}
