package memkit

import "unsafe"

// ptrSize is the pointer size of the target architecture, used as the
// default internal alignment of the arena allocators.
const ptrSize = unsafe.Sizeof(uintptr(0))

// maxAlignment is the largest alignment AllocateAligned accepts. The pad
// record written in front of an aligned region is a single byte, which caps
// the recoverable pad distance.
const maxAlignment = 128

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// alignUp rounds n up to the next multiple of align. align must be a power
// of two.
func alignUp(n, align uintptr) uintptr {
	mask := align - 1
	return (n + mask) &^ mask
}

// alignPad returns how many bytes must be skipped after addr to reach align.
func alignPad(addr, align uintptr) uintptr {
	return alignUp(addr, align) - addr
}
