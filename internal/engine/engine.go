// Package engine implements the concurrent interning engine: the
// lookup-or-insert protocol over the split-ordered list, with a lock-free
// read path and a single mutex serializing insertion, allocation, and
// bucket-table growth.
package engine

import (
	"context"
	stdErrors "errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/bibmaster/dictstring/internal/arena"
	"github.com/bibmaster/dictstring/internal/node"
	"github.com/bibmaster/dictstring/internal/segtable"
	"github.com/bibmaster/dictstring/pkg/errors"
	"github.com/bibmaster/dictstring/pkg/logger"
	"github.com/bibmaster/dictstring/pkg/options"
)

// ErrEngineClosed is returned when attempting to use a closed engine.
var ErrEngineClosed = stdErrors.New("engine: operation failed, dictionary is closed")

// Engine is the concurrent interning engine. The zero value is not usable;
// construct one with New.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger

	arena *arena.Arena
	table *segtable.Table

	mu     sync.Mutex    // Serializes insertion, allocation, and growth.
	size   atomic.Uint64 // Number of interned nodes. Written only under mu; never consulted by the lock-free lookup path.
	closed atomic.Bool
}

// Config holds the parameters needed to construct an Engine.
type Config struct {
	Options *options.Options
}

// New validates cfg and constructs a ready-to-use Engine. No segment is
// installed yet — segment 0 is created lazily on the first insertion, so a
// freshly constructed, never-used Engine allocates nothing beyond its own
// bookkeeping.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	if cfg == nil || cfg.Options == nil {
		return nil, errors.NewConfigurationValidationError("config", "engine configuration is required")
	}
	if err := options.Validate(cfg.Options); err != nil {
		return nil, err
	}

	log := cfg.Options.Logger
	if log == nil {
		log = logger.NewNop()
	}

	a, err := arena.New(cfg.Options.ChunkSize)
	if err != nil {
		return nil, err
	}

	log.Infow(
		"initializing interning engine",
		"chunkSize", cfg.Options.ChunkSize,
		"initialTableSize", cfg.Options.InitialTableSize,
		"maxSegments", cfg.Options.MaxSegments,
		"maxStringSize", cfg.Options.MaxStringSize,
	)

	return &Engine{
		options: cfg.Options,
		log:     log,
		arena:   a,
		table:   segtable.New(cfg.Options.InitialTableSize, cfg.Options.MaxSegments),
	}, nil
}

// Close releases the engine's allocator pages. Nothing is reclaimed before
// this point; after Close, no previously returned node may be dereferenced.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.arena.Release()
	return nil
}

// Len returns the number of distinct strings currently interned.
func (e *Engine) Len() int {
	return int(e.size.Load())
}

// Iterator returns a new Iterator fixed to the current segment: a table
// growth started after this call installs a segment the iterator never
// sees. Within that segment, iteration is not synchronized with insertion —
// a string interned after this call into a bucket the walk hasn't reached
// yet can still surface. See Iterator's doc comment for the precise
// guarantee.
func (e *Engine) Iterator() *Iterator {
	return Begin(e.table.Current())
}

// Intern returns a node whose content equals b, allocating and publishing a
// new one if no equal content has been interned yet. Interning the empty
// byte sequence returns the package-level empty sentinel without taking the
// lock. Interning a sequence longer than MaxStringSize fails with a
// TooLargeError and leaves the dictionary unchanged.
func (e *Engine) Intern(b []byte) (*node.Node, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	if len(b) == 0 {
		return node.Empty, nil
	}
	if len(b) > e.options.MaxStringSize {
		return nil, errors.NewTooLargeError(nil, "string exceeds configured maximum size").
			WithRequested(len(b)).WithMax(e.options.MaxStringSize)
	}

	h := hash(b)
	if n := e.lookup(h, b); n != nil {
		return n, nil
	}
	return e.insert(h, b)
}

// lookup is the lock-free search path: a snapshot of the current segment,
// one acquire-load of a bucket head, and a walk of acquire-loaded next
// pointers bounded by the bucket's span. It performs no synchronization
// beyond those loads and never blocks.
func (e *Engine) lookup(h uint32, b []byte) *node.Node {
	seg := e.table.Current()
	if seg == nil {
		return nil
	}

	t := seg.TableSize()
	bucket := bucketOf(h, t)
	headPtr := seg.Head(bucket)
	if headPtr == nil {
		return nil
	}

	target := reverseBits32(h)
	for n := headPtr.Load(); n != nil; n = n.Next() {
		if bucketOf(n.Hash(), t) != bucket {
			return nil
		}
		nr := reverseBits32(n.Hash())
		if nr == target && n.Hash() == h && n.Equal(b) {
			return n
		}
		if nr > target {
			// The list is sorted by reversed hash within a bucket; once we
			// pass where an equal node would sit, it isn't present.
			return nil
		}
	}
	return nil
}

// insert is the mutex-guarded insertion path. It re-checks for the content
// under the lock — another goroutine may have interned it while the
// caller's lock-free lookup missed — before allocating and splicing a new
// node. It also re-checks closed under the lock: Close takes the same lock
// before releasing the arena, so losing that race here means the arena is
// gone and nothing may be allocated from it.
func (e *Engine) insert(h uint32, b []byte) (*node.Node, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	seg := e.ensureCapacity()
	t := seg.TableSize()
	bucket := bucketOf(h, t)
	headPtr := seg.Head(bucket)

	target := reverseBits32(h)
	var prev *node.Node
	next := headPtr.Load()
	for next != nil {
		if bucketOf(next.Hash(), t) != bucket {
			break
		}
		nr := reverseBits32(next.Hash())
		if nr == target && next.Hash() == h && next.Equal(b) {
			return next, nil
		}
		if nr > target {
			break
		}
		prev = next
		next = next.Next()
	}

	payload, err := e.arena.Allocate(len(b)+1, 1)
	if err != nil {
		return nil, err
	}
	copy(payload, b)
	payload[len(b)] = 0

	n := node.New(h, len(b), payload)
	n.StoreNext(next) // Written before publication: safe for readers that acquire-load n later.

	if prev != nil {
		prev.StoreNext(n)
	} else {
		headPtr.Store(n)
	}

	e.size.Add(1)
	return n, nil
}

// ensureCapacity installs segment 0 on first use, or installs the next
// segment once load factor has reached 1. Callers must hold mu.
func (e *Engine) ensureCapacity() *segtable.Segment {
	seg := e.table.Current()
	if seg == nil {
		return e.table.Init()
	}

	if int(e.size.Load()) < seg.TableSize() || !e.table.CanGrow() {
		return seg
	}

	oldSize := seg.TableSize()
	newSize := oldSize * 2
	grown, err := e.table.Grow(seg, func(oldBucket int) *node.Node {
		return e.splitHead(seg, oldBucket, oldSize, newSize)
	})
	if err != nil {
		// ErrMaxSegments: not fatal — keep using seg, load factor climbs
		// and bucket chains lengthen.
		return seg
	}

	e.log.Debugw("grew bucket table", "oldSize", oldSize, "newSize", newSize)
	return grown
}

// splitHead finds the node that becomes the head of new bucket
// oldBucket+oldSize: the first node in old bucket oldBucket's span whose
// hash, modulo the doubled table size, lands in the sibling bucket. Nodes
// before that point stay reachable from the unchanged old head; the shared
// list itself is never relinked.
func (e *Engine) splitHead(seg *segtable.Segment, oldBucket, oldSize, newSize int) *node.Node {
	headPtr := seg.Head(oldBucket)
	for n := headPtr.Load(); n != nil; n = n.Next() {
		if bucketOf(n.Hash(), oldSize) != oldBucket {
			break
		}
		if bucketOf(n.Hash(), newSize) != oldBucket {
			return n
		}
	}
	return nil
}
