package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_BlockHeader_RoundTrip(t *testing.T) {
	b := make([]byte, 64)

	SetBlockNext(b, 0, 40)
	SetBlockFree(b, 0, 32)

	require.Equal(t, uint32(40), BlockNext(b, 0))
	require.True(t, BlockFree(b, 0))
	require.Equal(t, int32(32), BlockPayload(b, 0))
	require.Equal(t, int32(32), BlockSizeRaw(b, 0))

	// Flip to allocated: payload magnitude survives, sign changes.
	SetBlockAllocated(b, 0, 32)
	require.False(t, BlockFree(b, 0))
	require.Equal(t, int32(32), BlockPayload(b, 0))
	require.Equal(t, int32(-32), BlockSizeRaw(b, 0))
}

func Test_BlockHeader_LittleEndianLayout(t *testing.T) {
	b := make([]byte, HeaderSize)

	SetBlockNext(b, 0, 0x01020304)
	SetBlockFree(b, 0, 0x0A0B0C0D)

	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b[0:4], "next field is little-endian")
	require.Equal(t, []byte{0x0D, 0x0C, 0x0B, 0x0A}, b[4:8], "size field is little-endian")
}

func Test_BlockHeader_TailSentinel(t *testing.T) {
	b := make([]byte, HeaderSize)

	SetBlockNext(b, 0, NextNone)
	require.Equal(t, NextNone, BlockNext(b, 0))
}
