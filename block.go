package memkit

import (
	"os"
	"unsafe"
)

// NewBlock returns a zeroed memory block of the given size, suitable for
// handing to any of the allocator constructors. For very large blocks,
// MapBlock acquires memory straight from the OS instead of the Go heap.
func NewBlock(size int) []byte {
	return make([]byte, size)
}

// memoryBlock is the contiguous byte range owned by a block allocator. It is
// embedded by every allocator constructed over one block and carries the
// pointer bookkeeping they all share.
type memoryBlock struct {
	block []byte
}

// Size returns the total size of the owned block in bytes.
func (m *memoryBlock) Size() int {
	return len(m.block)
}

func (m *memoryBlock) base() uintptr {
	return uintptr(unsafe.Pointer(&m.block[0]))
}

// offsetOf converts a payload slice previously handed out by this allocator
// back into its byte offset within the owned block.
func (m *memoryBlock) offsetOf(b []byte) int {
	return int(uintptr(unsafe.Pointer(&b[0])) - m.base())
}

// checkOwned panics if b does not point into the owned block.
// Deallocating nil is always safe.
func (m *memoryBlock) checkOwned(b []byte) {
	if b == nil {
		return
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	if addr < m.base() || addr >= m.base()+uintptr(len(m.block)) {
		panic("memkit: pointer does not belong to this allocator's block")
	}
}

// debugWipe enables stamping of handed-out memory and alignment padding with
// recognizable signatures, making stale reads jump out in a debugger.
// Controlled by the MEMKIT_DEBUG_WIPE environment variable.
var debugWipe = os.Getenv("MEMKIT_DEBUG_WIPE") != ""

const (
	debugSignatureAlloc = 0xCD
	debugSignaturePad   = 0xFE
)

func wipe(b []byte, signature byte) {
	if !debugWipe {
		return
	}
	for i := range b {
		b[i] = signature
	}
}
