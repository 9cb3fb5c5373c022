// Package segtable implements the segmented bucket array: a logical bucket
// vector that grows by appending a new segment rather than reallocating, so
// every bucket head address handed to a reader remains valid for as long as
// that reader holds its snapshot.
package segtable

import (
	stdErrors "errors"
	"sync/atomic"

	"github.com/bibmaster/dictstring/internal/node"
)

// ErrMaxSegments is returned by Grow once the table has already installed
// as many segments as configured. This is not a fatal condition — the
// caller simply stops growing the table.
var ErrMaxSegments = stdErrors.New("segtable: maximum segment count reached")

// Segment is a contiguous vector of atomic bucket-head pointers, covering
// logical bucket indices [prevTableSize, tableSize). Segments are chained
// back to segment 0 via prev so Head can walk backward to find whichever
// segment owns a given bucket index, without ever needing to touch a
// segment above the reader's snapshot.
type Segment struct {
	heads         []atomic.Pointer[node.Node]
	tableSize     int
	prevTableSize int
	prev          *Segment
}

// TableSize returns the logical bucket count once this segment is
// installed — i.e. the T a reader holding this snapshot computes buckets
// modulo.
func (s *Segment) TableSize() int {
	return s.tableSize
}

// PrevTableSize returns the logical bucket count before this segment was
// installed.
func (s *Segment) PrevTableSize() int {
	return s.prevTableSize
}

// Head returns the atomic bucket-head pointer for the given logical bucket
// index, walking backward through the segment chain as needed. bucketIdx
// must be less than s.TableSize().
func (s *Segment) Head(bucketIdx int) *atomic.Pointer[node.Node] {
	for seg := s; seg != nil; seg = seg.prev {
		if bucketIdx >= seg.prevTableSize && bucketIdx < seg.tableSize {
			return &seg.heads[bucketIdx-seg.prevTableSize]
		}
	}
	return nil
}

// Table is the segmented array itself: an atomically published pointer to
// the most recently installed segment, plus the bookkeeping (touched only
// under the engine's insertion lock) needed to decide when to grow.
type Table struct {
	current     atomic.Pointer[Segment]
	initialSize int
	maxSegments int
	installed   int // number of segments installed; lock-only, never read lock-free.
}

// New creates a Table that will install segment 0 with initialSize buckets
// on first use, and refuse to grow past maxSegments installed segments.
func New(initialSize, maxSegments int) *Table {
	return &Table{initialSize: initialSize, maxSegments: maxSegments}
}

// Current returns a snapshot of the most recently published segment via an
// acquire-load. It is nil until Init has been called. Safe to call without
// the insertion lock.
func (t *Table) Current() *Segment {
	return t.current.Load()
}

// Installed returns how many segments have been installed so far. Callers
// must hold the insertion lock.
func (t *Table) Installed() int {
	return t.installed
}

// CanGrow reports whether another segment may still be installed. Callers
// must hold the insertion lock.
func (t *Table) CanGrow() bool {
	return t.installed < t.maxSegments
}

// Init installs segment 0 with every head nil. Callers must hold the
// insertion lock and must only call Init once, before any Grow.
func (t *Table) Init() *Segment {
	seg := &Segment{tableSize: t.initialSize, heads: make([]atomic.Pointer[node.Node], t.initialSize)}
	t.current.Store(seg)
	t.installed = 1
	return seg
}

// Grow installs a new segment doubling cur's table size. split is called
// once per old bucket index i in [0, cur.TableSize()) and must return the
// node that becomes the head of new bucket i+cur.TableSize() — the first
// node in the shared list whose hash, modulo the new table size, lands in
// that bucket — or nil if there is none.
//
// The new segment is fully built, including every split head, before its
// pointer is ever published: the current segment only changes via one
// release-store at the very end, so no reader can observe a partially
// initialized segment.
//
// Callers must hold the insertion lock. Grow returns ErrMaxSegments without
// changing any state if the table has already installed maxSegments
// segments.
func (t *Table) Grow(cur *Segment, split func(oldBucket int) *node.Node) (*Segment, error) {
	if !t.CanGrow() {
		return nil, ErrMaxSegments
	}

	oldSize := cur.tableSize
	newSize := oldSize * 2
	seg := &Segment{
		tableSize:     newSize,
		prevTableSize: oldSize,
		prev:          cur,
		heads:         make([]atomic.Pointer[node.Node], oldSize),
	}
	for i := 0; i < oldSize; i++ {
		seg.heads[i].Store(split(i))
	}

	t.current.Store(seg)
	t.installed++
	return seg, nil
}
