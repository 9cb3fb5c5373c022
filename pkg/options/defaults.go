package options

import "github.com/bibmaster/dictstring/pkg/logger"

const (
	// DefaultChunkSize is the default page size for the byte-payload arena.
	DefaultChunkSize = 65536

	// MinChunkSize is the smallest chunk size WithChunkSize will accept.
	// Below this, per-page overhead dominates and growth would thrash pages.
	MinChunkSize = 4096

	// DefaultInitialTableSize is segment 0's bucket count: chunk_size
	// divided by the size of a pointer, 8192 on a 64-bit machine with
	// 8-byte pointers.
	DefaultInitialTableSize = 8192

	// DefaultMaxSegments is the default cap on how many segments the bucket
	// table may hold, segment 0 included, so the table doubles at most
	// DefaultMaxSegments-1 times.
	DefaultMaxSegments = 16

	// AbsoluteMaxSegments is the hard ceiling on MaxSegments: the segmented
	// array never holds more than this many segments.
	AbsoluteMaxSegments = 16

	// reservedPageOverhead and reservedNodeOverhead model fixed per-page and
	// per-node bookkeeping purely for computing DefaultMaxStringSize (and the
	// MaxStringSize WithChunkSize lowers to) as a conservative fraction of
	// chunk size; this port's internal/node and
	// internal/arena carry no such fixed header inside the payload bytes
	// themselves, so these constants exist only to keep the default budget
	// comfortably below a single page.
	reservedPageOverhead = 16
	reservedNodeOverhead = 16

	// DefaultMaxStringSize is the default longest string the dictionary
	// will intern.
	DefaultMaxStringSize = DefaultChunkSize - reservedPageOverhead - reservedNodeOverhead
)

// NewDefaultOptions returns the default configuration for a Dictionary.
func NewDefaultOptions() Options {
	return Options{
		ChunkSize:        DefaultChunkSize,
		InitialTableSize: DefaultInitialTableSize,
		MaxSegments:      DefaultMaxSegments,
		MaxStringSize:    DefaultMaxStringSize,
		Logger:           logger.NewNop(),
	}
}
