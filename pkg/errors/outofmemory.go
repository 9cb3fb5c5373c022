package errors

// OutOfMemoryError is returned when the page or segment allocator cannot
// satisfy a request. Because allocation always happens before any store a
// reader could observe, an OutOfMemoryError never leaves the dictionary in
// a partially published state.
type OutOfMemoryError struct {
	*baseError
	requested int // Size in bytes that was requested from the allocator.
	chunkSize int // The allocator's configured page/chunk size.
}

// NewOutOfMemoryError creates a new OutOfMemoryError.
func NewOutOfMemoryError(err error, msg string) *OutOfMemoryError {
	return &OutOfMemoryError{baseError: NewBaseError(err, ErrorCodeOutOfMemory, msg)}
}

// WithRequested records the size that could not be allocated.
func (oe *OutOfMemoryError) WithRequested(size int) *OutOfMemoryError {
	oe.requested = size
	return oe
}

// WithChunkSize records the allocator's page size at the time of failure.
func (oe *OutOfMemoryError) WithChunkSize(size int) *OutOfMemoryError {
	oe.chunkSize = size
	return oe
}

// Requested returns the size that could not be allocated.
func (oe *OutOfMemoryError) Requested() int {
	return oe.requested
}

// ChunkSize returns the allocator's page size at the time of failure.
func (oe *OutOfMemoryError) ChunkSize() int {
	return oe.chunkSize
}
