package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// walk visits every block in address order. fn returns false to stop early.
func (fl *FreeList) walk(fn func(off int, payload int32, free bool) bool) {
	data := fl.r.Bytes()

	off := 0
	for {
		payload := format.BlockPayload(data, off)
		if !fn(off, payload, format.BlockFree(data, off)) {
			return
		}
		next := format.BlockNext(data, off)
		if next == format.NextNone {
			return
		}
		off = int(next)
	}
}

// Stats traverses the whole chain and returns aggregate usage counts.
// Read-only; O(block count).
func (fl *FreeList) Stats() Stats {
	s := Stats{Capacity: fl.r.Capacity()}

	fl.walk(func(_ int, payload int32, free bool) bool {
		s.Blocks++
		if free {
			s.FreeBlocks++
			s.Free += int(payload)
			if int(payload) > s.LargestFree {
				s.LargestFree = int(payload)
			}
		} else {
			s.Used += int(payload)
		}
		return true
	})

	return s
}

// Counters returns the lifetime operation counters.
func (fl *FreeList) Counters() Counters {
	return fl.counters
}

// Blocks returns an address-ordered snapshot of every block in the region.
func (fl *FreeList) Blocks() []Block {
	var blocks []Block
	fl.walk(func(off int, payload int32, free bool) bool {
		blocks = append(blocks, Block{
			Ref:  Ref(off + format.HeaderSize),
			Size: payload,
			Free: free,
		})
		return true
	})
	return blocks
}

// Check validates the block chain invariants in one pass:
//
//   - tiling: headers partition the region exactly, in increasing address
//     order, with the last block's next empty
//   - no two address-adjacent blocks are both free
//   - accounting: used + free + headers*HeaderSize == capacity
//
// Returns an error wrapping ErrCorrupt describing the first violation.
func (fl *FreeList) Check() error {
	data := fl.r.Bytes()
	capacity := fl.r.Capacity()

	var (
		used, free int
		headers    int
		prevFree   bool
	)

	off := 0
	for {
		if off < 0 || off+format.HeaderSize > capacity {
			return fmt.Errorf("%w: header at %d out of bounds", ErrCorrupt, off)
		}

		payload := format.BlockPayload(data, off)
		if payload <= 0 {
			return fmt.Errorf("%w: block at %d has payload %d", ErrCorrupt, off, payload)
		}
		end := off + format.HeaderSize + int(payload)
		if end > capacity {
			return fmt.Errorf("%w: block at %d ends at %d past capacity %d",
				ErrCorrupt, off, end, capacity)
		}

		isFree := format.BlockFree(data, off)
		if headers > 0 && prevFree && isFree {
			return fmt.Errorf("%w: adjacent free blocks ending at %d", ErrCorrupt, off)
		}
		prevFree = isFree

		headers++
		if isFree {
			free += int(payload)
		} else {
			used += int(payload)
		}

		next := format.BlockNext(data, off)
		if next == format.NextNone {
			if end != capacity {
				return fmt.Errorf("%w: chain ends at %d, capacity %d", ErrCorrupt, end, capacity)
			}
			break
		}
		if int(next) != end {
			return fmt.Errorf("%w: block at %d has next %d, expected %d",
				ErrCorrupt, off, next, end)
		}
		off = int(next)
	}

	if used+free+headers*format.HeaderSize != capacity {
		return fmt.Errorf("%w: accounting used=%d free=%d headers=%d capacity=%d",
			ErrCorrupt, used, free, headers, capacity)
	}
	return nil
}
