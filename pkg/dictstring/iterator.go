package dictstring

import (
	"github.com/bibmaster/dictstring/internal/engine"
	"github.com/bibmaster/dictstring/pkg/handle"
)

// Iterator walks every string interned in a dictionary before the iterator
// was created; strings interned while it walks may or may not be visited.
// It is not safe for concurrent use by multiple goroutines.
type Iterator struct {
	it *engine.Iterator
}

// Next advances the iterator and returns the next handle, or a zero Handle
// and false once every entry has been visited.
func (it *Iterator) Next() (handle.Handle, bool) {
	n, ok := it.it.Next()
	if !ok {
		return handle.Handle{}, false
	}
	return handle.From(n), true
}
