// Package format houses the low-level block header layout used across
// heapkit regions. The goal is to keep the byte-level encoding focused and
// independent from the public API so the allocator can orchestrate the data
// in a more ergonomic form.
package format

const (
	// HeaderSize is the size of a block header in bytes.
	// Layout (little-endian):
	//   0x00  next  uint32  region offset of the following block header
	//   0x04  size  int32   payload size; sign encodes state (see below)
	HeaderSize = 8

	// BlockNextOffset is the offset of the next field within a header.
	BlockNextOffset = 0

	// BlockSizeOffset is the offset of the size field within a header.
	//
	// The size field is sign-encoded: a positive value is the payload size
	// of a free block, a negative value the payload size of an allocated
	// block. The magnitude never includes the header itself.
	BlockSizeOffset = 4

	// WordAlignment is the natural word alignment for payload sizes.
	// Every payload size is rounded up to this boundary.
	WordAlignment = 4

	// MinPayload is the smallest payload an allocation may carry. Requests
	// below it (including zero) are promoted so that every live block can
	// later host a header during a split.
	MinPayload = HeaderSize

	// MinSplitRemainder is the smallest leftover (header plus payload) worth
	// carving into its own free block. Below this the whole block is
	// absorbed and the slack becomes internal fragmentation.
	MinSplitRemainder = HeaderSize + WordAlignment

	// MaxRegionSize caps region capacity. Offsets are stored as uint32 and
	// sizes as int32, so a region must fit in an int32.
	MaxRegionSize = 0x7FFFFFFF

	alignmentMask = WordAlignment - 1
)

// NextNone is the next-field sentinel for the last block in a region.
// Offset 0 is the first header, which no block can ever follow, so the zero
// value doubles as "no next block".
const NextNone = uint32(0)
