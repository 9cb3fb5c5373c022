// Package options provides data structures and functions for configuring
// the dictionary. It defines the parameters that control the engine's
// memory layout and growth behavior: page size, initial and maximum table
// size, and the longest string the dictionary will ever intern.
package options

import (
	"go.uber.org/zap"

	"github.com/bibmaster/dictstring/pkg/errors"
)

// Options defines the configuration parameters for a Dictionary.
type Options struct {
	// ChunkSize is the size in bytes of each page the byte-payload arena
	// allocates. A larger chunk size amortizes allocation overhead across
	// more interned strings at the cost of more unused tail space per page.
	//
	// Default: 65536 (64 KiB)
	ChunkSize int `json:"chunkSize"`

	// InitialTableSize is the logical bucket count of segment 0, installed
	// on the first insertion. Must be a power of two.
	//
	// Default: 8192
	InitialTableSize int `json:"initialTableSize"`

	// MaxSegments bounds how many segments the bucket table may hold,
	// segment 0 included, so the table doubles at most MaxSegments-1 times.
	// Once reached, the table stops growing; load factor climbs and bucket
	// chains lengthen, but no runtime error occurs.
	//
	// Default: 16
	MaxSegments int `json:"maxSegments"`

	// MaxStringSize is the longest byte sequence the dictionary will
	// accept. Interning anything longer fails with TooLargeError.
	//
	// Default: ChunkSize - reserved per-page/per-node overhead.
	MaxStringSize int `json:"maxStringSize"`

	// Logger receives structured diagnostics about growth and allocation.
	//
	// Default: a no-op zap logger.
	Logger *zap.SugaredLogger `json:"-"`
}

// Option is a function that modifies a dictionary's configuration.
type Option func(*Options)

// WithDefaultOptions resets every field to its default value.
func WithDefaultOptions() Option {
	return func(o *Options) {
		opts := NewDefaultOptions()
		*o = opts
	}
}

// WithChunkSize sets the byte-payload arena's page size. Values below
// MinChunkSize are rejected. If the current MaxStringSize no longer fits
// within the new chunk size, it is lowered to match — callers that want a
// specific MaxStringSize should apply WithMaxStringSize after WithChunkSize.
func WithChunkSize(size int) Option {
	return func(o *Options) {
		if size < MinChunkSize {
			return
		}
		o.ChunkSize = size
		if max := size - reservedPageOverhead - reservedNodeOverhead; o.MaxStringSize >= size && max > 0 {
			o.MaxStringSize = max
		}
	}
}

// WithInitialTableSize sets segment 0's logical bucket count.
func WithInitialTableSize(size int) Option {
	return func(o *Options) {
		if size > 0 && isPowerOfTwo(size) {
			o.InitialTableSize = size
		}
	}
}

// WithMaxSegments sets the maximum number of segments the bucket table may
// hold, segment 0 included. Values outside [1, AbsoluteMaxSegments] are
// ignored.
func WithMaxSegments(n int) Option {
	return func(o *Options) {
		if n > 0 && n <= AbsoluteMaxSegments {
			o.MaxSegments = n
		}
	}
}

// WithMaxStringSize sets the longest string the dictionary will intern.
func WithMaxStringSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.MaxStringSize = size
		}
	}
}

// WithLogger sets the logger used for growth and allocation diagnostics.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *Options) {
		if log != nil {
			o.Logger = log
		}
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Validate checks that Options describes a usable dictionary: the initial
// table size must be a power of two, MaxStringSize must actually fit inside
// one chunk, and MaxSegments must be within the absolute bound the
// segmented array can ever address.
func Validate(o *Options) error {
	if o == nil {
		return errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "options must not be nil",
		).WithField("options").WithRule("required")
	}
	if !isPowerOfTwo(o.InitialTableSize) {
		return errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "initial table size must be a power of two",
		).WithField("initialTableSize").WithRule("power_of_two").WithProvided(o.InitialTableSize)
	}
	if o.MaxSegments <= 0 || o.MaxSegments > AbsoluteMaxSegments {
		return errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "max segments out of range",
		).WithField("maxSegments").WithRule("range").WithProvided(o.MaxSegments)
	}
	if o.MaxStringSize <= 0 || o.MaxStringSize >= o.ChunkSize {
		return errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "max string size must fit within one chunk",
		).WithField("maxStringSize").WithRule("range").WithProvided(o.MaxStringSize)
	}
	return nil
}
