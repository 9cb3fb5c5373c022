// Package arena provides a bump-pointer allocator over fixed-size byte
// pages. It hands out address-stable regions of memory for interned string
// payloads: once a region is returned, its address never changes and the
// page it lives in is never reused or freed until the arena itself is
// released.
//
// The allocator carries no internal locking of its own: it is only ever
// safe to call while the caller already holds a serializing lock (here,
// the interning engine's insertion mutex).
package arena

import (
	stdErrors "errors"
	"fmt"

	"github.com/bibmaster/dictstring/pkg/errors"
)

// ErrInvalidChunkSize is returned when an arena is constructed with a page
// size too small to ever satisfy a single allocation request.
var ErrInvalidChunkSize = stdErrors.New("arena: chunk size must be positive")

// page is a single fixed-size region of backing memory plus a bump cursor.
// Pages are linked together from the arena's head so every page stays
// reachable until Release drops the whole list at once; the list is never
// traversed for allocation.
type page struct {
	buf    []byte
	cursor int
	next   *page
}

func newPage(chunkSize int) *page {
	return &page{buf: make([]byte, chunkSize)}
}

func (p *page) remaining() int {
	return len(p.buf) - p.cursor
}

// alignUp rounds cursor up to the next multiple of align (align must be a
// power of two).
func alignUp(cursor, align int) int {
	if align <= 1 {
		return cursor
	}
	return (cursor + align - 1) &^ (align - 1)
}

// Arena is a bump-pointer page allocator. The zero value is not usable; use
// New.
type Arena struct {
	chunkSize int
	current   *page
	head      *page // oldest page, for Release
	pages     int
}

// New creates an arena that allocates chunkSize-byte pages on demand. The
// first page is not allocated until the first Allocate call.
func New(chunkSize int) (*Arena, error) {
	if chunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	return &Arena{chunkSize: chunkSize}, nil
}

// ChunkSize returns the configured page size.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Pages returns the number of pages allocated so far, for diagnostics.
func (a *Arena) Pages() int {
	return a.pages
}

// Allocate returns an address-stable, zero-initialized region of size bytes
// aligned to align (a power of two). The region remains valid — and its
// address unchanged — for the lifetime of the arena. Allocate fails with
// OutOfMemory if size (after alignment padding) cannot fit in a single page
// of the arena's chunk size, since pages are never chained to serve one
// oversized request.
//
// Allocate must only be called while the caller holds the engine's
// insertion lock; it performs no synchronization of its own.
func (a *Arena) Allocate(size, align int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("arena: negative allocation size %d", size)
	}
	if align < 1 {
		align = 1
	}
	if size > a.chunkSize {
		// Reject before ever touching a page: growing first would burn a
		// fresh page that this request could never have fit into anyway.
		return nil, errors.NewOutOfMemoryError(
			nil, "requested allocation exceeds arena chunk size",
		).WithRequested(size).WithChunkSize(a.chunkSize)
	}

	if a.current == nil {
		if err := a.grow(); err != nil {
			return nil, err
		}
	}

	start := alignUp(a.current.cursor, align)
	if size > a.current.remaining()-(start-a.current.cursor) {
		// Current page can't serve this request; a fresh page always starts
		// at offset 0, which is aligned for any power-of-two align up to the
		// runtime's allocation alignment.
		if err := a.grow(); err != nil {
			return nil, err
		}
		start = 0
	}

	region := a.current.buf[start : start+size : start+size]
	a.current.cursor = start + size
	return region, nil
}

// grow acquires a fresh page and links it as the new current page.
func (a *Arena) grow() error {
	p := newPage(a.chunkSize)
	if a.head == nil {
		a.head = p
	} else {
		a.current.next = p
	}
	a.current = p
	a.pages++
	return nil
}

// Release drops every page allocated by the arena. After Release, any bytes
// previously returned by Allocate must no longer be dereferenced — this is
// only safe to call once the owning dictionary itself is being destroyed;
// nothing is reclaimed before then.
func (a *Arena) Release() {
	a.current = nil
	a.head = nil
	a.pages = 0
}
