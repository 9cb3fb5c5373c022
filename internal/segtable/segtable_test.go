package segtable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bibmaster/dictstring/internal/node"
)

func TestCurrentIsNilBeforeInit(t *testing.T) {
	table := New(4, 4)
	require.Nil(t, table.Current())
}

func TestInitInstallsEmptyHeads(t *testing.T) {
	table := New(4, 4)
	seg := table.Init()

	require.Same(t, seg, table.Current())
	require.Equal(t, 4, seg.TableSize())
	require.Equal(t, 1, table.Installed())

	for i := 0; i < 4; i++ {
		require.Nil(t, seg.Head(i).Load())
	}
}

func TestCanGrowRespectsMaxSegments(t *testing.T) {
	table := New(2, 1)
	table.Init()
	require.False(t, table.CanGrow())

	_, err := table.Grow(table.Current(), func(int) *node.Node { return nil })
	require.ErrorIs(t, err, ErrMaxSegments)
}

func TestGrowDoublesTableSizeAndPreservesOldHeads(t *testing.T) {
	table := New(2, 4)
	seg0 := table.Init()

	a := node.New(0, 1, []byte("a\x00")) // bucket 0 under size 2
	seg0.Head(0).Store(a)

	seg1, err := table.Grow(seg0, func(oldBucket int) *node.Node {
		if oldBucket == 0 {
			return nil // "a" stays in bucket 0 after doubling in this scenario
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 4, seg1.TableSize())
	require.Equal(t, 2, seg1.PrevTableSize())

	// Bucket 0 is still reachable and still owned by the old segment's head.
	require.Same(t, a, seg1.Head(0).Load())
	// Bucket 2 (the split sibling of 0) got whatever split() returned — nil here.
	require.Nil(t, seg1.Head(2).Load())
}

func TestGrowPublishesFullyBuiltSegment(t *testing.T) {
	table := New(2, 4)
	seg0 := table.Init()

	n0 := node.New(0, 1, []byte("x\x00"))
	n2 := node.New(2, 1, []byte("y\x00")) // hash 2 -> bucket 0 mod 2, bucket 2 mod 4
	seg0.Head(0).Store(n0)
	n0.StoreNext(n2)

	seg1, err := table.Grow(seg0, func(oldBucket int) *node.Node {
		if oldBucket == 0 {
			return n2
		}
		return nil
	})
	require.NoError(t, err)
	require.Same(t, n0, seg1.Head(0).Load())
	require.Same(t, n2, seg1.Head(2).Load())
	require.Same(t, seg1, table.Current())
}
