package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrTooLarge indicates a request whose size arithmetic would overflow.
	// Surfaced instead of wrapping silently.
	ErrTooLarge = errors.New("alloc: request size not representable")

	// ErrBadCount indicates a negative count or element size passed to
	// AllocZeroed.
	ErrBadCount = errors.New("alloc: negative count or element size")

	// ErrBadRef indicates a ref that does not name a live allocation.
	ErrBadRef = errors.New("alloc: ref is not a live allocation")

	// ErrRegionTooSmall indicates a region that cannot hold even one block.
	ErrRegionTooSmall = errors.New("alloc: region too small for a block")

	// ErrCorrupt indicates the block chain failed an integrity check.
	ErrCorrupt = errors.New("alloc: block chain corrupted")
)
