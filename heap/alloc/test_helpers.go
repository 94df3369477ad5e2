package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

// newTestHeap creates a slice-backed region of the given capacity with a
// fresh allocator over it, cleaned up with the test.
func newTestHeap(t *testing.T, capacity int) *FreeList {
	t.Helper()

	r, err := heap.New(capacity)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	fl, err := New(r)
	require.NoError(t, err)
	return fl
}

// requireIntact asserts that the block chain passes all invariant checks.
func requireIntact(t *testing.T, fl *FreeList) {
	t.Helper()
	require.NoError(t, fl.Check())
}

// fillPattern writes a recognizable byte pattern into a payload.
func fillPattern(buf []byte, seed byte) {
	for i := range buf {
		buf[i] = seed + byte(i)
	}
}

// requirePattern asserts a payload still carries the pattern from fillPattern.
func requirePattern(t *testing.T, buf []byte, seed byte) {
	t.Helper()
	for i := range buf {
		require.Equal(t, seed+byte(i), buf[i], "payload corrupted at offset %d", i)
	}
}
