// Package heap provides the Region type: a fixed-address, fixed-capacity
// byte range that a heapkit allocator owns exclusively.
//
// A Region is nothing more than backing storage plus bounds. All block
// bookkeeping lives inside the region bytes and is managed by the alloc
// package; the Region itself never interprets its contents.
//
// Two backings are available:
//
//   - New: an ordinary Go slice. Cheapest, and the right choice for tests
//     and small session heaps.
//   - Map: an anonymous memory mapping on unix platforms, so large regions
//     stay out of the Go heap and are released eagerly on Close. Falls back
//     to a slice elsewhere.
//
// Regions are transient: their contents exist only for the lifetime of the
// owning process and are never persisted.
package heap
