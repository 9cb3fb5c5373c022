package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/bibmaster/dictstring/pkg/errors"
	"github.com/bibmaster/dictstring/pkg/options"
)

func newTestEngine(t *testing.T, opts ...options.Option) *Engine {
	t.Helper()
	o := options.NewDefaultOptions()
	o.Logger = zaptest.NewLogger(t).Sugar()
	for _, apply := range opts {
		apply(&o)
	}

	eng, err := New(context.Background(), &Config{Options: &o})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func TestInternIsIdempotent(t *testing.T) {
	eng := newTestEngine(t)

	a, err := eng.Intern([]byte("foo"))
	require.NoError(t, err)
	require.Equal(t, 3, a.Size())
	require.Equal(t, byte(0), a.Data()[3])

	b, err := eng.Intern([]byte("foo"))
	require.NoError(t, err)
	require.Same(t, a, b)
	require.Equal(t, 1, eng.Len())
}

func TestInternEmptyReturnsSentinelWithoutAllocating(t *testing.T) {
	eng := newTestEngine(t)

	n, err := eng.Intern(nil)
	require.NoError(t, err)
	require.Equal(t, 0, n.Size())
	require.Equal(t, 0, eng.Len())
	require.Equal(t, 0, eng.arena.Pages())
}

func TestInternRejectsOversizedString(t *testing.T) {
	eng := newTestEngine(t, options.WithMaxStringSize(4))

	_, err := eng.Intern([]byte("toolong"))
	require.Error(t, err)
	require.True(t, errors.IsTooLarge(err))
	require.Equal(t, 0, eng.Len())
}

func TestInternDistinguishesDistinctContent(t *testing.T) {
	eng := newTestEngine(t)

	a, err := eng.Intern([]byte("alpha"))
	require.NoError(t, err)
	b, err := eng.Intern([]byte("beta"))
	require.NoError(t, err)

	require.NotSame(t, a, b)
	require.Equal(t, 2, eng.Len())
}

func TestInternGrowsAcrossSegments(t *testing.T) {
	eng := newTestEngine(t, options.WithInitialTableSize(4), options.WithMaxSegments(4))

	const n = 200
	for i := 0; i < n; i++ {
		_, err := eng.Intern([]byte(fmt.Sprintf("key-%d", i)))
		require.NoError(t, err)
	}
	require.Equal(t, n, eng.Len())
	require.Greater(t, eng.table.Installed(), 1)

	// Everything inserted earlier must still be found after growth.
	for i := 0; i < n; i++ {
		want := fmt.Sprintf("key-%d", i)
		got, err := eng.Intern([]byte(want))
		require.NoError(t, err)
		require.Equal(t, want, string(got.Bytes()))
	}
}

func TestInternAfterCloseFails(t *testing.T) {
	eng := newTestEngine(t, options.WithDefaultOptions())
	require.NoError(t, eng.Close())

	_, err := eng.Intern([]byte("x"))
	require.ErrorIs(t, err, ErrEngineClosed)

	require.ErrorIs(t, eng.Close(), ErrEngineClosed)
}

func TestInternConcurrentRefillConverges(t *testing.T) {
	eng := newTestEngine(t, options.WithInitialTableSize(4), options.WithMaxSegments(6))

	n := 5000
	workers := 16
	if testing.Short() {
		n = 200
		workers = 4
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < n; i++ {
				key := fmt.Sprintf("shared-%d", i%(n/2))
				if _, err := eng.Intern([]byte(key)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, n/2, eng.Len())
}

func TestIteratorVisitsEveryNodeOnce(t *testing.T) {
	eng := newTestEngine(t, options.WithInitialTableSize(4), options.WithMaxSegments(4))

	want := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := fmt.Sprintf("item-%d", i)
		_, err := eng.Intern([]byte(s))
		require.NoError(t, err)
		want[s] = false
	}

	it := eng.Iterator()
	count := 0
	for {
		n, ok := it.Next()
		if !ok {
			break
		}
		s := string(n.Bytes())
		_, known := want[s]
		require.True(t, known, "unexpected string %q", s)
		require.False(t, want[s], "string %q visited twice", s)
		want[s] = true
		count++
	}
	require.Equal(t, 50, count)
}

func TestIteratorOverEmptyEngineYieldsNothing(t *testing.T) {
	eng := newTestEngine(t)
	it := eng.Iterator()
	_, ok := it.Next()
	require.False(t, ok)
}
