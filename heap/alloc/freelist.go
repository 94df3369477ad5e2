package alloc

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugAlloc = false

// Runtime debug flag for allocation logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// maxRequest is the largest payload size whose alignment round-up and
// header sum still fit in an int32.
const maxRequest = format.MaxRegionSize - format.HeaderSize - format.WordAlignment

// FreeList is a first-fit allocator over a fixed heap.Region. All block
// bookkeeping lives inside the region bytes as an address-ordered chain of
// intrusive headers. Not safe for concurrent use.
type FreeList struct {
	r        *heap.Region
	counters Counters
}

// New formats the region as one free block spanning its whole capacity and
// returns the allocator owning it.
//
// Formatting discards any previous bookkeeping in the region, so refs from
// an earlier FreeList over the same region become dangling. Construct at
// most one live allocator per region.
func New(r *heap.Region) (*FreeList, error) {
	data := r.Bytes()
	if len(data) < format.HeaderSize+format.MinPayload {
		return nil, ErrRegionTooSmall
	}

	format.SetBlockNext(data, 0, format.NextNone)
	format.SetBlockFree(data, 0, int32(len(data)-format.HeaderSize))

	return &FreeList{r: r}, nil
}

// Region returns the region this allocator manages.
func (fl *FreeList) Region() *heap.Region {
	return fl.r
}

// Alloc reserves a payload of at least size bytes and returns its ref along
// with the payload slice. The slice aliases the region; it stays valid until
// the ref is freed.
//
// size is rounded up to the word alignment, and requests below the minimum
// block size are promoted so the resulting block can always be split or
// merged later. Returns ErrNoSpace when no free block qualifies and
// ErrTooLarge when the size arithmetic would wrap; the heap is unchanged in
// either case.
func (fl *FreeList) Alloc(size int32) (Ref, []byte, error) {
	fl.counters.AllocCalls++

	need, err := roundRequest(size)
	if err != nil {
		fl.counters.FailedAllocs++
		return NilRef, nil, err
	}

	data := fl.r.Bytes()

	// First-fit walk in address order.
	off := 0
	for {
		payload := format.BlockPayload(data, off)
		if format.BlockFree(data, off) && payload >= need {
			if payload-need >= format.MinSplitRemainder {
				// Split: keep the head at the requested size, carve the
				// slack into a new free block spliced in after it.
				remOff := off + format.HeaderSize + int(need)
				remPayload := payload - need - format.HeaderSize
				format.SetBlockNext(data, remOff, format.BlockNext(data, off))
				format.SetBlockFree(data, remOff, remPayload)
				format.SetBlockNext(data, off, uint32(remOff))
				payload = need
				fl.counters.SplitCount++

				if logAlloc {
					fmt.Fprintf(os.Stderr, "[ALLOC] split at %d: need=%d remainder=%d\n",
						off, need, remPayload)
				}
			}

			format.SetBlockAllocated(data, off, payload)

			ref := Ref(off + format.HeaderSize)
			return ref, data[int(ref) : int(ref)+int(payload)], nil
		}

		next := format.BlockNext(data, off)
		if next == format.NextNone {
			break
		}
		off = int(next)
	}

	fl.counters.FailedAllocs++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] no space: need=%d\n", need)
	}
	return NilRef, nil, ErrNoSpace
}

// Free releases the allocation named by ref and merges it with any adjacent
// free block.
//
// NilRef is a no-op. A ref that does not name a live allocation (out of
// range, misaligned, mid-block, or already free) is silently ignored: the
// heap is left untouched and subsequent operations are unaffected.
func (fl *FreeList) Free(ref Ref) {
	fl.counters.FreeCalls++

	if ref == NilRef {
		return
	}

	off, prev, ok := fl.locate(ref)
	if !ok {
		fl.counters.RejectedFrees++
		debugLogf("Free(%d): not a block boundary", ref)
		return
	}

	data := fl.r.Bytes()
	if format.BlockFree(data, off) {
		// Double free - absorb without touching the chain.
		fl.counters.RejectedFrees++
		debugLogf("Free(%d): block already free", ref)
		return
	}

	payload := format.BlockPayload(data, off)
	format.SetBlockFree(data, off, payload)

	// Forward coalesce: absorb the following block when free.
	next := format.BlockNext(data, off)
	if next != format.NextNone && format.BlockFree(data, int(next)) {
		payload += format.HeaderSize + format.BlockPayload(data, int(next))
		format.SetBlockFree(data, off, payload)
		format.SetBlockNext(data, off, format.BlockNext(data, int(next)))
		fl.counters.CoalesceForward++
	}

	// Backward coalesce: absorb this block into a free predecessor. The
	// predecessor came for free out of the locate walk.
	if prev >= 0 && format.BlockFree(data, prev) {
		merged := format.BlockPayload(data, prev) + format.HeaderSize + payload
		format.SetBlockFree(data, prev, merged)
		format.SetBlockNext(data, prev, format.BlockNext(data, off))
		fl.counters.CoalesceBackward++
	}
}

// Realloc resizes the allocation named by ref to at least size bytes.
//
//   - ref == NilRef behaves as Alloc(size).
//   - size == 0 behaves as Free(ref) and returns NilRef.
//   - If the current block already has capacity, the same ref is returned
//     unchanged (no shrink-split; the slack stays internal fragmentation).
//   - Otherwise a new block is allocated, the old payload copied over, and
//     the old block freed.
//
// On allocation failure during growth the original ref remains valid and
// allocated; callers must keep using it.
func (fl *FreeList) Realloc(ref Ref, size int32) (Ref, []byte, error) {
	fl.counters.ReallocCalls++

	if ref == NilRef {
		return fl.Alloc(size)
	}
	if size == 0 {
		fl.Free(ref)
		return NilRef, nil, nil
	}
	if size < 0 {
		return NilRef, nil, ErrTooLarge
	}

	off, _, ok := fl.locate(ref)
	if !ok {
		return NilRef, nil, ErrBadRef
	}

	data := fl.r.Bytes()
	if format.BlockFree(data, off) {
		return NilRef, nil, ErrBadRef
	}

	old := format.BlockPayload(data, off)
	if old >= size {
		return ref, data[int(ref) : int(ref)+int(old)], nil
	}

	newRef, newBuf, err := fl.Alloc(size)
	if err != nil {
		// Growth failed; the original block is untouched.
		return NilRef, nil, err
	}

	copy(newBuf, data[int(ref):int(ref)+int(old)])
	fl.Free(ref)

	return newRef, newBuf, nil
}

// AllocZeroed reserves count*elemSize bytes and zero-fills the full payload
// (including any alignment slack) before returning it. The product is
// checked for overflow and rejected with ErrTooLarge rather than wrapping.
func (fl *FreeList) AllocZeroed(count, elemSize int32) (Ref, []byte, error) {
	if count < 0 || elemSize < 0 {
		return NilRef, nil, ErrBadCount
	}

	total := int64(count) * int64(elemSize)
	if total > maxRequest {
		return NilRef, nil, ErrTooLarge
	}

	ref, buf, err := fl.Alloc(int32(total))
	if err != nil {
		return NilRef, nil, err
	}

	// The block may carry stale bytes from an earlier tenant.
	clear(buf)

	return ref, buf, nil
}

// roundRequest normalizes a payload request: word alignment round-up and
// promotion to the minimum block size, with an overflow guard ahead of both.
func roundRequest(size int32) (int32, error) {
	if size < 0 || size > maxRequest {
		return 0, ErrTooLarge
	}
	need := format.AlignWordI32(size)
	if need < format.MinPayload {
		need = format.MinPayload
	}
	return need, nil
}

// locate resolves ref to its header offset by walking the chain from the
// region start, verifying that ref lands exactly on a block boundary.
// Returns the header offset, the predecessor's header offset (-1 for the
// first block), and whether ref named a real block.
func (fl *FreeList) locate(ref Ref) (off, prev int, ok bool) {
	data := fl.r.Bytes()

	if int64(ref) < format.HeaderSize || int(ref) > len(data) {
		return 0, 0, false
	}
	target := int(ref) - format.HeaderSize

	prev = -1
	cur := 0
	for cur < target {
		next := format.BlockNext(data, cur)
		if next == format.NextNone || int(next) <= cur {
			return 0, 0, false
		}
		prev = cur
		cur = int(next)
	}
	if cur != target {
		// Walked past it: ref points into the middle of a block.
		return 0, 0, false
	}
	return cur, prev, true
}

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(msg string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] "+msg+"\n", args...)
	}
}
