package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// requireAccounting asserts the identity
// used + free + headers*HeaderSize == capacity.
func requireAccounting(t *testing.T, fl *FreeList) {
	t.Helper()
	s := fl.Stats()
	require.Equal(t, s.Capacity, s.Used+s.Free+s.Blocks*format.HeaderSize,
		"accounting identity violated: %+v", s)
}

func Test_Stats_FreshRegion(t *testing.T) {
	fl := newTestHeap(t, 1024)

	s := fl.Stats()
	require.Equal(t, 1024, s.Capacity)
	require.Zero(t, s.Used)
	require.Equal(t, 1024-format.HeaderSize, s.Free)
	require.Equal(t, 1, s.Blocks)
	require.Equal(t, 1, s.FreeBlocks)
	require.Equal(t, s.Free, s.LargestFree)
	requireAccounting(t, fl)
}

func Test_Stats_TracksOperations(t *testing.T) {
	fl := newTestHeap(t, 4096)

	p1, _, err := fl.Alloc(100)
	require.NoError(t, err)
	requireAccounting(t, fl)

	p2, _, err := fl.Alloc(200)
	require.NoError(t, err)
	requireAccounting(t, fl)

	s := fl.Stats()
	require.Equal(t, 300, s.Used)
	require.Equal(t, 3, s.Blocks)

	fl.Free(p1)
	requireAccounting(t, fl)

	s = fl.Stats()
	require.Equal(t, 200, s.Used)
	require.Equal(t, 2, s.FreeBlocks)

	_, _, err = fl.Realloc(p2, 500)
	require.NoError(t, err)
	requireAccounting(t, fl)
}

func Test_Stats_ReadOnly(t *testing.T) {
	fl := newTestHeap(t, 1024)

	_, _, err := fl.Alloc(64)
	require.NoError(t, err)

	first := fl.Stats()
	for i := 0; i < 5; i++ {
		require.Equal(t, first, fl.Stats(), "Stats must not mutate the heap")
	}
	requireIntact(t, fl)
}

func Test_Counters_LifetimeTotals(t *testing.T) {
	fl := newTestHeap(t, 4096)

	p1, _, err := fl.Alloc(100)
	require.NoError(t, err)
	p2, _, err := fl.Alloc(100)
	require.NoError(t, err)

	fl.Free(p1)
	fl.Free(p2)
	fl.Free(Ref(999999))

	_, _, err = fl.Alloc(1 << 30)
	require.ErrorIs(t, err, ErrNoSpace)

	c := fl.Counters()
	require.Equal(t, 3, c.AllocCalls)
	require.Equal(t, 3, c.FreeCalls)
	require.Equal(t, 1, c.FailedAllocs)
	require.Equal(t, 1, c.RejectedFrees)
	require.Equal(t, 2, c.SplitCount)
	require.Positive(t, c.CoalesceForward+c.CoalesceBackward)
}

func Test_Blocks_Snapshot(t *testing.T) {
	fl := newTestHeap(t, 2048)

	p1, _, err := fl.Alloc(100)
	require.NoError(t, err)
	_, _, err = fl.Alloc(200)
	require.NoError(t, err)
	fl.Free(p1)

	blocks := fl.Blocks()
	require.Len(t, blocks, 3)

	// Address order, refs strictly increasing.
	for i := 1; i < len(blocks); i++ {
		require.Greater(t, blocks[i].Ref, blocks[i-1].Ref)
	}

	require.True(t, blocks[0].Free)
	require.Equal(t, int32(100), blocks[0].Size)
	require.False(t, blocks[1].Free)
	require.Equal(t, int32(200), blocks[1].Size)
	require.True(t, blocks[2].Free)
}
