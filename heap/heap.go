package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Region is a fixed-capacity byte range for an allocator to manage.
// The zero value is not usable; construct with New or Map.
type Region struct {
	data    []byte
	cleanup func() error
	closed  bool
}

// New returns a slice-backed Region of exactly capacity bytes.
func New(capacity int) (*Region, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return &Region{data: make([]byte, capacity)}, nil
}

// Map returns a Region backed by an anonymous memory mapping where the
// platform supports it, releasing the pages on Close. On other platforms it
// behaves like New.
func Map(capacity int) (*Region, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	data, cleanup, err := mapAnon(capacity)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, cleanup: cleanup}, nil
}

func checkCapacity(capacity int) error {
	if capacity < format.HeaderSize+format.MinPayload {
		return fmt.Errorf("heap: capacity %d below minimum %d",
			capacity, format.HeaderSize+format.MinPayload)
	}
	if capacity > format.MaxRegionSize {
		return fmt.Errorf("heap: capacity %d exceeds maximum %d",
			capacity, format.MaxRegionSize)
	}
	return nil
}

// Bytes returns the raw region contents. The slice aliases the region's
// backing storage; it is invalid after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Capacity returns the fixed region size in bytes.
func (r *Region) Capacity() int {
	return len(r.data)
}

// Close releases the backing storage. Safe to call more than once. Any
// slices previously returned by Bytes (or handed out by an allocator over
// this region) must not be used afterwards.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.data = nil
	if r.cleanup != nil {
		return r.cleanup()
	}
	return nil
}
