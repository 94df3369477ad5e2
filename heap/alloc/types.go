package alloc

// Ref identifies an allocation: the uint32 region offset of its payload
// (header offset + format.HeaderSize).
type Ref = uint32

// NilRef is the null ref. No payload can start at offset 0 (the first
// header lives there), so the zero value is unambiguous.
const NilRef Ref = 0

// Block describes one block of the region in an address-order walk.
type Block struct {
	Ref  Ref   // payload offset
	Size int32 // payload size in bytes, header excluded
	Free bool
}

// Stats is a point-in-time usage summary produced by a full traversal.
//
// The accounting identity Used + Free + Blocks*format.HeaderSize == Capacity
// holds after every public operation.
type Stats struct {
	Capacity    int // fixed region capacity in bytes
	Used        int // payload bytes in allocated blocks
	Free        int // payload bytes in free blocks
	Blocks      int // total number of block headers
	FreeBlocks  int // number of free blocks
	LargestFree int // largest single free payload
}

// Counters holds lifetime operation counts for instrumentation and tests.
type Counters struct {
	AllocCalls       int // total Alloc calls (including via Realloc/AllocZeroed)
	FreeCalls        int // total Free calls
	ReallocCalls     int // total Realloc calls
	SplitCount       int // blocks split during allocation
	CoalesceForward  int // merges with the following block
	CoalesceBackward int // merges into the preceding block
	FailedAllocs     int // Alloc calls that returned an error
	RejectedFrees    int // Free calls ignored as invalid
}
