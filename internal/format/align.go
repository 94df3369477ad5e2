package format

// Alignment utilities for block payload sizes. The allocator rounds every
// payload up to the platform word size so split remainders stay mergeable.

// AlignWord returns n aligned up to the next word boundary.
//
// Example:
//
//	AlignWord(1) = 4
//	AlignWord(4) = 4
//	AlignWord(5) = 8
func AlignWord(n int) int {
	return (n + alignmentMask) & ^alignmentMask
}

// AlignWordI32 returns n aligned up to the next word boundary.
// int32 version for use in allocator code to avoid G115 warnings.
func AlignWordI32(n int32) int32 {
	return (n + alignmentMask) & ^alignmentMask
}
