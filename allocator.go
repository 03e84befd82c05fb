package memkit

import "unsafe"

// Allocator is the capability every memory strategy in this package provides.
// Higher-level components depend only on this interface, never on a concrete
// allocator.
type Allocator interface {
	// Allocate returns a block of size bytes, or nil if the request cannot
	// be satisfied. Exhaustion is an expected outcome, not an error.
	Allocate(size int) []byte

	// Deallocate releases a block previously returned by Allocate. size must
	// equal the value passed to the matching Allocate call: these allocators
	// are not self-describing, tracking the size is the caller's obligation.
	// Deallocating nil is safe.
	Deallocate(b []byte, size int)
}

// AllocateAligned returns a block of size bytes whose first byte sits on an
// address aligned to alignment. alignment must be a power of two no larger
// than 128. Returns nil on exhaustion.
//
// The block must be released with DeallocateAligned using the same size and
// alignment.
func AllocateAligned(a Allocator, size, alignment int) []byte {
	return allocateAligned(a, 0, size, alignment)
}

// DeallocateAligned releases a block returned by AllocateAligned.
// Deallocating nil is safe.
func DeallocateAligned(a Allocator, b []byte, size, alignment int) {
	if b == nil {
		return
	}
	deallocateAligned(a, 0, unsafe.Pointer(&b[0]), size, alignment)
}

// allocateAligned over-allocates so that a header of headerSize bytes can sit
// immediately in front of the aligned payload, with a one-byte pad record in
// front of the header:
//
//	[ padding ... ][ pad record ][ header ][ payload (aligned) ]
//
// The pad record stores the distance from the raw block start to the header
// start, which is all deallocateAligned needs to recover the raw allocation.
func allocateAligned(a Allocator, headerSize, size, alignment int) []byte {
	if !isPowerOfTwo(alignment) || alignment > maxAlignment {
		panic("memkit: alignment must be a power of two between 1 and 128")
	}
	if size <= 0 {
		return nil
	}

	total := 1 + headerSize + (alignment - 1) + size
	raw := a.Allocate(total)
	if raw == nil {
		return nil
	}

	base := uintptr(unsafe.Pointer(&raw[0]))
	payload := alignUp(base+uintptr(1+headerSize), uintptr(alignment))
	headerStart := payload - uintptr(headerSize)
	pad := headerStart - base // 1 .. 1+headerSize+alignment-1, fits in a byte

	raw[pad-1] = byte(pad)
	wipe(raw[:pad-1], debugSignaturePad)

	out := raw[headerStart-base+uintptr(headerSize):]
	out = out[:size:size]
	wipe(out, debugSignatureAlloc)
	return out
}

// deallocateAligned undoes allocateAligned given the payload pointer and the
// original size/alignment pair.
func deallocateAligned(a Allocator, headerSize int, payload unsafe.Pointer, size, alignment int) {
	headerStart := unsafe.Add(payload, -headerSize)
	pad := int(*(*byte)(unsafe.Add(headerStart, -1)))
	raw := unsafe.Add(headerStart, -pad)

	total := 1 + headerSize + (alignment - 1) + size
	a.Deallocate(unsafe.Slice((*byte)(raw), total), total)
}

// NewObject allocates a zeroed T from the allocator. The returned pointer is
// valid until FreeObject or until the allocator reclaims its block.
// Returns nil on exhaustion.
func NewObject[T any](a Allocator) *T {
	b := AllocateAligned(a, objectByteSize[T](), objectAlign[T]())
	if b == nil {
		return nil
	}
	clear(b)
	return (*T)(unsafe.Pointer(&b[0]))
}

// NewObjectUninit is NewObject without the zeroing. The contents of the
// returned object are undefined; initialize every field before use.
func NewObjectUninit[T any](a Allocator) *T {
	b := AllocateAligned(a, objectByteSize[T](), objectAlign[T]())
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(&b[0]))
}

// FreeObject releases an object allocated with NewObject or NewObjectUninit.
// Freeing nil is safe.
func FreeObject[T any](a Allocator, p *T) {
	if p == nil {
		return
	}
	deallocateAligned(a, 0, unsafe.Pointer(p), objectByteSize[T](), objectAlign[T]())
}

// objectByteSize is the allocation size for one T. Never zero, so that even
// zero-size types get a distinct address.
func objectByteSize[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		size = 1
	}
	return size
}

func objectAlign[T any]() int {
	var zero T
	return int(unsafe.Alignof(zero))
}

// arrayHeader precedes every array allocation so that the element count and
// the alignment are recoverable from the array pointer alone.
type arrayHeader struct {
	count     uintptr
	alignment uintptr
}

const arrayHeaderSize = int(unsafe.Sizeof(arrayHeader{}))

func grabArrayHeader[T any](first *T) *arrayHeader {
	return (*arrayHeader)(unsafe.Add(unsafe.Pointer(first), -arrayHeaderSize))
}

// arrayByteSize is the payload size reserved for n elements of T. Never zero,
// so that even arrays of zero-size types have a distinct address.
func arrayByteSize[T any](n int) int {
	var zero T
	size := int(unsafe.Sizeof(zero)) * n
	if size == 0 {
		size = 1
	}
	return size
}

// arrayAlignFor widens the requested alignment so that both the elements and
// the pointer-sized header fields in front of them are properly aligned.
func arrayAlignFor[T any](alignment int) int {
	var zero T
	if alignment < int(unsafe.Alignof(zero)) {
		alignment = int(unsafe.Alignof(zero))
	}
	if alignment < int(ptrSize) {
		alignment = int(ptrSize)
	}
	return alignment
}

// AllocateArray allocates a zeroed array of n elements of T, aligned to at
// least alignment. Returns nil if n <= 0 or on exhaustion.
func AllocateArray[T any](a Allocator, n, alignment int) []T {
	arr := AllocateArrayUninit[T](a, n, alignment)
	clear(arr)
	return arr
}

// AllocateArrayUninit is AllocateArray without the zeroing.
func AllocateArrayUninit[T any](a Allocator, n, alignment int) []T {
	if n <= 0 {
		return nil
	}
	alignment = arrayAlignFor[T](alignment)

	b := allocateAligned(a, arrayHeaderSize, arrayByteSize[T](n), alignment)
	if b == nil {
		return nil
	}

	first := (*T)(unsafe.Pointer(&b[0]))
	hdr := grabArrayHeader(first)
	hdr.count = uintptr(n)
	hdr.alignment = uintptr(alignment)
	return unsafe.Slice(first, n)
}

// ArrayLen returns the element count recorded when arr was allocated.
// arr must come from AllocateArray, AllocateArrayUninit or ResizeArray.
func ArrayLen[T any](arr []T) int {
	if arr == nil {
		return 0
	}
	return int(grabArrayHeader(&arr[0]).count)
}

// ArrayAlignment returns the alignment recorded when arr was allocated.
func ArrayAlignment[T any](arr []T) int {
	if arr == nil {
		return 0
	}
	return int(grabArrayHeader(&arr[0]).alignment)
}

// ResizeArray grows or shrinks an array, with realloc semantics:
//
//   - nil old acts as AllocateArray
//   - n == 0 frees old and returns nil
//   - n larger than the current count allocates new storage, copies the
//     existing elements, zeroes the added tail and frees the old storage
//   - n not larger than the current count is a no-op returning old
//
// Returns nil if a required allocation fails; the old array is untouched in
// that case.
func ResizeArray[T any](a Allocator, old []T, n, alignment int) []T {
	if old == nil {
		return AllocateArray[T](a, n, alignment)
	}
	if n == 0 {
		FreeArray(a, old)
		return nil
	}

	oldCount := ArrayLen(old)
	if n <= oldCount {
		return old
	}

	next := AllocateArrayUninit[T](a, n, alignment)
	if next == nil {
		return nil
	}
	copy(next, old[:oldCount])
	clear(next[oldCount:])
	FreeArray(a, old)
	return next
}

// FreeArray releases an array allocated through the array API.
// Freeing nil is safe.
func FreeArray[T any](a Allocator, arr []T) {
	if arr == nil {
		return
	}
	hdr := grabArrayHeader(&arr[0])
	size := arrayByteSize[T](int(hdr.count))
	deallocateAligned(a, arrayHeaderSize, unsafe.Pointer(&arr[0]), size, int(hdr.alignment))
}

// TempBuffer couples one raw allocation with the allocator that produced it,
// so short-lived buffers can be released with a single deferred Close.
type TempBuffer struct {
	alloc Allocator
	buf   []byte
}

// NewTempBuffer allocates size bytes from a. Check Bytes() for nil before
// use; Close on a failed buffer is a no-op.
func NewTempBuffer(a Allocator, size int) TempBuffer {
	return TempBuffer{alloc: a, buf: a.Allocate(size)}
}

// Bytes returns the owned buffer, nil if allocation failed or after Close.
func (t *TempBuffer) Bytes() []byte {
	return t.buf
}

// Close returns the buffer to its allocator. Safe to call more than once.
func (t *TempBuffer) Close() {
	if t.alloc != nil && t.buf != nil {
		t.alloc.Deallocate(t.buf, len(t.buf))
	}
	t.alloc = nil
	t.buf = nil
}
