package engine

import (
	"github.com/bibmaster/dictstring/internal/node"
	"github.com/bibmaster/dictstring/internal/segtable"
)

// Iterator walks every node reachable from a single segment snapshot, in
// ascending bucket order and, within a bucket, in ascending reversed-hash
// order. The segment itself is fixed at construction time — a table growth
// started afterward installs a new segment the iterator never sees — but
// each bucket's head is (re)loaded only when the walk first reaches that
// bucket, so a concurrent insertion into a not-yet-visited bucket of the
// same segment can still be observed. Iteration is not synchronized with
// insertion; every node visible at any point during the walk remains safe to
// read regardless, since nothing the allocator handed out is ever freed or
// moved while the dictionary is open.
//
// An Iterator is not safe for concurrent use by multiple goroutines.
type Iterator struct {
	seg     *segtable.Segment
	started bool

	position       int // logical bucket index currently being walked
	bucketPosition int // nodes yielded so far within the current bucket

	cur *node.Node
}

// Begin constructs an Iterator over seg. A nil seg (no segment installed
// yet) produces an iterator whose first Next call immediately reports
// exhaustion.
func Begin(seg *segtable.Segment) *Iterator {
	return &Iterator{seg: seg}
}

// Position returns the logical bucket index the iterator is currently
// positioned at.
func (it *Iterator) Position() int {
	return it.position
}

// BucketPosition returns how many nodes have been yielded from the current
// bucket so far.
func (it *Iterator) BucketPosition() int {
	return it.bucketPosition
}

// Next advances the iterator and returns the next node in traversal order,
// or (nil, false) once every bucket in the snapshot has been exhausted.
func (it *Iterator) Next() (*node.Node, bool) {
	if it.seg == nil {
		return nil, false
	}
	t := it.seg.TableSize()

	var candidate *node.Node
	if !it.started {
		it.started = true
		candidate = it.seg.Head(it.position).Load()
	} else {
		candidate = it.cur.Next()
	}

	for {
		if candidate != nil && bucketOf(candidate.Hash(), t) == it.position {
			it.cur = candidate
			it.bucketPosition++
			return candidate, true
		}

		// candidate is nil, or belongs to a later bucket: the current
		// bucket is exhausted. Move to the next one and reload its head
		// directly rather than assuming the chain continues into it —
		// correct regardless of which segment actually owns that bucket.
		it.position++
		it.bucketPosition = 0
		if it.position >= t {
			return nil, false
		}
		candidate = it.seg.Head(it.position).Load()
	}
}
