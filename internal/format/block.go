package format

// Block header accessors. All functions take the region byte slice and the
// absolute offset of a block header; callers are responsible for bounds
// checking the offset against the region before calling.

// BlockNext returns the header offset of the block following the one at off,
// or NextNone for the last block.
func BlockNext(b []byte, off int) uint32 {
	return ReadU32(b, off+BlockNextOffset)
}

// SetBlockNext writes the next-header offset for the block at off.
func SetBlockNext(b []byte, off int, next uint32) {
	PutU32(b, off+BlockNextOffset, next)
}

// BlockSizeRaw returns the sign-encoded size field of the block at off.
// Positive means free, negative means allocated.
func BlockSizeRaw(b []byte, off int) int32 {
	return ReadI32(b, off+BlockSizeOffset)
}

// BlockPayload returns the payload size of the block at off regardless of
// its allocation state.
func BlockPayload(b []byte, off int) int32 {
	sz := ReadI32(b, off+BlockSizeOffset)
	if sz < 0 {
		return -sz
	}
	return sz
}

// BlockFree reports whether the block at off is free.
func BlockFree(b []byte, off int) bool {
	return ReadI32(b, off+BlockSizeOffset) > 0
}

// SetBlockFree writes the size field marking the block at off as free with
// the given payload size.
func SetBlockFree(b []byte, off int, payload int32) {
	PutI32(b, off+BlockSizeOffset, payload)
}

// SetBlockAllocated writes the size field marking the block at off as
// allocated with the given payload size.
func SetBlockAllocated(b []byte, off int, payload int32) {
	PutI32(b, off+BlockSizeOffset, -payload)
}
