package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// carveExact leaves the allocator with a single free block of exactly
// payload bytes followed by a pinned tail, so split behavior can be
// observed in isolation.
func carveExact(t *testing.T, fl *FreeList, payload int32) Ref {
	t.Helper()

	hole, _, err := fl.Alloc(payload)
	require.NoError(t, err)

	// Pin the rest of the heap so the hole is the only free block.
	s := fl.Stats()
	if s.Free > 0 {
		_, _, err = fl.Alloc(int32(s.Free))
		require.NoError(t, err)
	}

	fl.Free(hole)
	return hole
}

func Test_Split_RemainderBecomesFreeBlock(t *testing.T) {
	fl := newTestHeap(t, 4096)

	hole := carveExact(t, fl, 256)
	splitsBefore := fl.Counters().SplitCount

	// 256 - 200 = 56 of slack, plenty for a remainder block.
	ref, buf, err := fl.Alloc(200)
	require.NoError(t, err)
	require.Equal(t, hole, ref)
	require.Equal(t, 200, len(buf), "split trims the block to the request")
	require.Equal(t, splitsBefore+1, fl.Counters().SplitCount)

	// The remainder is free, adjacent, and correctly sized.
	blocks := fl.Blocks()
	var rem *Block
	for i := range blocks {
		if blocks[i].Ref == ref+200+format.HeaderSize {
			rem = &blocks[i]
		}
	}
	require.NotNil(t, rem, "remainder block missing")
	require.True(t, rem.Free)
	require.Equal(t, int32(256-200-format.HeaderSize), rem.Size)
	requireIntact(t, fl)
}

func Test_Split_SlackBelowThresholdIsAbsorbed(t *testing.T) {
	fl := newTestHeap(t, 4096)

	hole := carveExact(t, fl, 256)
	splitsBefore := fl.Counters().SplitCount
	blocksBefore := len(fl.Blocks())

	// 256 - 248 = 8 of slack: too small to host a header plus a word, so
	// the whole block is handed out (internal fragmentation).
	ref, buf, err := fl.Alloc(248)
	require.NoError(t, err)
	require.Equal(t, hole, ref)
	require.Equal(t, 256, len(buf), "slack below threshold stays in the block")
	require.Equal(t, splitsBefore, fl.Counters().SplitCount)
	require.Len(t, fl.Blocks(), blocksBefore)
	requireIntact(t, fl)
}

func Test_Split_ExactFitNeverSplits(t *testing.T) {
	fl := newTestHeap(t, 4096)

	hole := carveExact(t, fl, 256)
	blocksBefore := len(fl.Blocks())

	ref, buf, err := fl.Alloc(256)
	require.NoError(t, err)
	require.Equal(t, hole, ref)
	require.Equal(t, 256, len(buf))
	require.Len(t, fl.Blocks(), blocksBefore)
	requireIntact(t, fl)
}

func Test_Split_ThresholdBoundary(t *testing.T) {
	fl := newTestHeap(t, 4096)

	// Slack of exactly MinSplitRemainder must split.
	hole := carveExact(t, fl, 256)
	ref, buf, err := fl.Alloc(256 - format.MinSplitRemainder)
	require.NoError(t, err)
	require.Equal(t, hole, ref)
	require.Equal(t, 256-format.MinSplitRemainder, len(buf))
	require.Positive(t, fl.Counters().SplitCount)

	// And the carved remainder must be the minimum representable block.
	blocks := fl.Blocks()
	var rem *Block
	for i := range blocks {
		if blocks[i].Ref == ref+Ref(len(buf))+format.HeaderSize {
			rem = &blocks[i]
		}
	}
	require.NotNil(t, rem)
	require.True(t, rem.Free)
	require.Equal(t, int32(format.WordAlignment), rem.Size)
	requireIntact(t, fl)
}
