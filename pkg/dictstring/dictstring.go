// Package dictstring is the public entry point for the interning
// dictionary: a concurrent, address-stable store that deduplicates byte
// strings and hands callers small, copyable handles instead of raw byte
// slices.
package dictstring

import (
	"context"
	"sync"

	"github.com/bibmaster/dictstring/internal/engine"
	"github.com/bibmaster/dictstring/pkg/handle"
	"github.com/bibmaster/dictstring/pkg/options"
)

// Dictionary is a process-local interning table. The zero value is not
// usable; construct one with New, or use Global for the process-wide
// shared instance.
type Dictionary struct {
	eng *engine.Engine
}

// New constructs a Dictionary. With no options, it uses
// options.NewDefaultOptions.
func New(opts ...options.Option) (*Dictionary, error) {
	o := options.NewDefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	eng, err := engine.New(context.Background(), &engine.Config{Options: &o})
	if err != nil {
		return nil, err
	}
	return &Dictionary{eng: eng}, nil
}

// Intern deduplicates b against every string already interned in d,
// returning a Handle that refers to either the existing entry or a newly
// allocated one. The returned Handle remains valid for as long as d is
// open; b is never retained or mutated.
func (d *Dictionary) Intern(b []byte) (handle.Handle, error) {
	n, err := d.eng.Intern(b)
	if err != nil {
		return handle.Handle{}, err
	}
	return handle.From(n), nil
}

// InternString is a convenience wrapper around Intern for string callers.
func (d *Dictionary) InternString(s string) (handle.Handle, error) {
	return d.Intern([]byte(s))
}

// Len returns the number of distinct strings currently interned.
func (d *Dictionary) Len() int {
	return d.eng.Len()
}

// Iterator returns a new Iterator over the bucket table as it stands at
// this call. Every string interned before this call is visited once.
// Iteration is not synchronized with insertion: a string interned after
// this call may or may not be visited.
func (d *Dictionary) Iterator() *Iterator {
	return &Iterator{it: d.eng.Iterator()}
}

// Close releases every page the dictionary's allocator holds. After Close,
// no Handle obtained from d may be dereferenced.
func (d *Dictionary) Close() error {
	return d.eng.Close()
}

var (
	globalOnce sync.Once
	globalDict *Dictionary
	globalErr  error
)

// Global returns the process-wide dictionary, constructing it with default
// options on first use. Every call after the first returns the same
// instance; construction errors (which only default options cannot
// produce) are cached and returned on every call.
func Global() (*Dictionary, error) {
	globalOnce.Do(func() {
		globalDict, globalErr = New()
	})
	return globalDict, globalErr
}

// InternGlobal interns b into the process-wide dictionary returned by
// Global.
func InternGlobal(b []byte) (handle.Handle, error) {
	d, err := Global()
	if err != nil {
		return handle.Handle{}, err
	}
	return d.Intern(b)
}
