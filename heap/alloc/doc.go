// Package alloc provides block allocation and free-list management for
// heapkit regions.
//
// # Overview
//
// This package implements a fixed-region memory manager using an intrusive,
// address-ordered list of block headers written directly into the region
// bytes. It provides first-fit allocation with block splitting, deallocation
// with bidirectional coalescing, zeroed and resizing allocation, and usage
// statistics.
//
// # Allocator
//
// The core type is FreeList, constructed over a heap.Region:
//
//	r, err := heap.New(1 << 20)
//	if err != nil {
//	    return err
//	}
//	fl, err := alloc.New(r)
//	if err != nil {
//	    return err
//	}
//
//	// Allocate a 256-byte payload
//	ref, buf, err := fl.Alloc(256)
//	if err != nil {
//	    return err
//	}
//
//	// Write into buf...
//
//	// Later, release it
//	fl.Free(ref)
//
// New formats the region as a single free block spanning the whole capacity.
// There is no separate initialization step and therefore no way to observe
// an uninitialized allocator. Constructing a second FreeList over the same
// region reformats it and invalidates every ref handed out by the first;
// never do that while refs are live.
//
// # Block model
//
// Every block is an 8-byte header followed by its payload. Headers form a
// singly-linked list in address order covering the region exactly: no gaps,
// no overlaps. The size field is sign-encoded (positive = free, negative =
// allocated). New headers appear only when a free block is split during
// allocation; headers disappear only when adjacent free blocks merge during
// deallocation. Blocks never relocate.
//
// # Allocation strategy
//
// Allocation is first-fit: the list is walked in address order and the
// first free block large enough wins. Payload sizes are rounded up to the
// word size, and a found block is split only when the remainder can carry
// its own header plus at least one aligned word; smaller slack is absorbed
// as internal fragmentation.
//
// Freeing coalesces with the following block and then with the preceding
// one, so no two adjacent blocks are ever both free. The predecessor is
// located by a linear walk from the region start - O(n) in the block count,
// which is fine for session-scoped heaps. An end-offset index would make it
// O(1) if a use case ever needs it.
//
// # Refs
//
// Allocations are identified by Ref, the uint32 region offset of the
// payload (header offset + 8). NilRef is the null ref; Free(NilRef) is a
// no-op, and refs that do not name a live allocation are silently ignored
// by Free and rejected with ErrBadRef by Realloc.
//
// # Thread safety
//
// FreeList instances are not thread-safe. The execution model is a single
// sequential writer; callers sharing an allocator across goroutines must
// serialize access externally.
package alloc
