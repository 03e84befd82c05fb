package memkit

// BumpAllocator is a monotonic bump allocator over one fixed block: a single
// offset advances on every allocation and individual frees are not supported.
// That is a design choice, not an oversight; reclaim memory in bulk with
// Reset, or use a Scope for bounded temporary allocations.
type BumpAllocator struct {
	memoryBlock
	offset uintptr
}

// NewBumpAllocator creates a bump allocator over block. The allocator owns
// the block for its lifetime; nothing else may write into it.
func NewBumpAllocator(block []byte) *BumpAllocator {
	if len(block) == 0 {
		panic("memkit: allocator needs a non-empty memory block")
	}
	return &BumpAllocator{memoryBlock: memoryBlock{block: block}}
}

// Allocate returns the next size bytes of the block, or nil once the block
// is exhausted. The internal offset is kept pointer-aligned.
func (a *BumpAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	off := alignUp(a.offset, ptrSize)
	end := off + uintptr(size)
	if end > uintptr(len(a.block)) {
		return nil
	}
	a.offset = end

	out := a.block[off:end:end]
	wipe(out, debugSignatureAlloc)
	return out
}

// Deallocate is a no-op: a bump arena only supports bulk reclamation.
func (a *BumpAllocator) Deallocate(b []byte, size int) {
	a.checkOwned(b)
}

// UsedMemory returns the number of block bytes consumed so far, including
// internal alignment padding.
func (a *BumpAllocator) UsedMemory() int {
	return int(a.offset)
}

// Reset rewinds the offset to zero, invalidating every prior allocation.
// Callers are responsible for not touching memory handed out before a Reset.
func (a *BumpAllocator) Reset() {
	a.offset = 0
}

// Scope captures the current offset. Closing the scope rewinds to it,
// releasing everything allocated since in one step:
//
//	scope := scratch.Scope()
//	// ... temporary allocations ...
//	scope.Close()
type Scope struct {
	arena  *BumpAllocator
	offset uintptr
}

// Scope returns a scope anchored at the current offset.
func (a *BumpAllocator) Scope() Scope {
	return Scope{arena: a, offset: a.offset}
}

// Close rewinds the arena to the offset captured when the scope was taken.
func (s Scope) Close() {
	s.arena.offset = s.offset
}

var _ Allocator = (*BumpAllocator)(nil)
