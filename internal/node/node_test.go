package node

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptySentinel(t *testing.T) {
	require.Equal(t, 0, Empty.Size())
	require.Equal(t, uint32(0), Empty.Hash())
	require.Equal(t, []byte{0}, Empty.Data())
	require.Nil(t, Empty.Next())
}

func TestNewStoresContentAndTrailingNUL(t *testing.T) {
	payload := []byte("foo\x00")
	n := New(123, 3, payload)

	require.Equal(t, uint32(123), n.Hash())
	require.Equal(t, 3, n.Size())
	require.Equal(t, []byte("foo"), n.Bytes())
	require.Equal(t, byte(0), n.Data()[n.Size()])
}

func TestEqualComparesContentOnly(t *testing.T) {
	n := New(1, 3, []byte("bar\x00"))
	require.True(t, n.Equal([]byte("bar")))
	require.False(t, n.Equal([]byte("baz")))
	require.False(t, n.Equal([]byte("ba")))
}

func TestNextRoundTripsThroughStoreNext(t *testing.T) {
	a := New(1, 1, []byte("a\x00"))
	b := New(2, 1, []byte("b\x00"))

	require.Nil(t, a.Next())
	a.StoreNext(b)
	require.Same(t, b, a.Next())
}
