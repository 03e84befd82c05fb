package memkit

// sparseRecord manages one fixed position of the sparse side. It is a free
// list node embedded in an array.
type sparseRecord struct {
	id    uint32 // current handle value; low bits are this record's position
	index uint16 // dense position of the element, indexMask when free
	next  uint16 // next free sparse slot when index == indexMask
}

// proxy is one dense-side entry. id mirrors the owning sparse record so a
// relocated entry can repair the sparse side.
type proxy[T any] struct {
	data T
	id   uint32
}

// DenseMap issues stable generational handles to elements kept in a densely
// packed array, giving O(1) insert, lookup and removal with cache-friendly
// iteration over the dense side.
//
// Removal swaps the last dense entry into the vacated position, so element
// addresses are not stable; handles are. A handle dies permanently when its
// element is removed: reusing the slot bumps the generation, and the stale
// handle is rejected forever after.
type DenseMap[T any] struct {
	dense    *Store[proxy[T]]
	sparse   *Store[sparseRecord]
	nextFree uint16 // head of the sparse free chain, indexMask when empty
}

// NewDenseMap creates an empty map whose dense and sparse sides draw from
// mem.
func NewDenseMap[T any](mem Allocator) *DenseMap[T] {
	return &DenseMap[T]{
		dense:    NewStore[proxy[T]](mem),
		sparse:   NewStore[sparseRecord](mem),
		nextFree: indexMask,
	}
}

// Len returns the number of live elements.
func (m *DenseMap[T]) Len() int {
	return m.dense.Len()
}

// Reserve sizes both internal arrays for at least n elements so Add does not
// allocate at random times. n must stay below the 65535-slot index space.
func (m *DenseMap[T]) Reserve(n int) {
	if n >= indexMask {
		panic("memkit: dense map cannot hold 65535 or more elements")
	}
	m.dense.Reserve(n)
	m.sparse.Reserve(n)
}

// Add stores v and returns its handle. Amortized O(1).
//
// Running out of index space (65535 live elements) or of backing memory is a
// sizing error by the caller and panics; no partial mutation survives the
// panic.
func (m *DenseMap[T]) Add(v T) Handle {
	if m.dense.Len() >= indexMask {
		panic("memkit: dense map index space exhausted")
	}

	slot := m.takeSlot()
	rec := m.sparse.At(slot)
	id := rec.id + generationOne

	if !m.dense.Push(proxy[T]{data: v, id: id}) {
		// Return the slot before failing so the map is exactly as it was.
		rec.next = m.nextFree
		m.nextFree = uint16(slot)
		panic("memkit: dense map backing allocator exhausted")
	}

	rec.id = id
	rec.index = uint16(m.dense.Len() - 1)
	return Handle(id)
}

// Has reports whether h refers to a live element of this map.
func (m *DenseMap[T]) Has(h Handle) bool {
	slot := h.Slot()
	if slot >= m.sparse.Len() {
		return false
	}
	rec := m.sparse.At(slot)
	return rec.id == uint32(h) && rec.index != indexMask
}

// Find returns the element h refers to. Callers must establish Has(h) first;
// the double indirection is deliberately unchecked to keep the hot path flat.
// The pointer is invalidated by the next Add or Remove.
func (m *DenseMap[T]) Find(h Handle) *T {
	rec := m.sparse.At(h.Slot())
	return &m.dense.At(int(rec.index)).data
}

// Remove deletes the element h refers to in O(1), relocating the last dense
// entry into the hole and repairing its sparse record. h must be live.
func (m *DenseMap[T]) Remove(h Handle) {
	if !m.Has(h) {
		panic("memkit: remove of an invalid dense map handle")
	}

	slot := h.Slot()
	rec := m.sparse.At(slot)
	hole := int(rec.index)
	last := m.dense.Len() - 1

	if hole != last {
		moved := *m.dense.At(last)
		*m.dense.At(hole) = moved
		m.sparse.At(int(moved.id & indexMask)).index = uint16(hole)
	}
	m.dense.Pop()

	rec.index = indexMask
	rec.next = m.nextFree
	m.nextFree = uint16(slot)
}

// Clear drops every element and sparse slot in one pass. Every handle issued
// so far becomes invalid.
func (m *DenseMap[T]) Clear() {
	m.dense.Clear()
	m.sparse.Clear()
	m.nextFree = indexMask
}

// At returns a pointer to the element at dense position i, 0 <= i < Len().
// Iteration over dense positions visits every live element exactly once, in
// storage order.
func (m *DenseMap[T]) At(i int) *T {
	return &m.dense.At(i).data
}

// Release returns both internal arrays to the allocator. The map is empty
// and reusable afterwards; all handles are invalid.
func (m *DenseMap[T]) Release() {
	m.dense.Release()
	m.sparse.Release()
	m.nextFree = indexMask
}

// takeSlot pops the free chain, or creates a fresh sparse record whose id is
// its own fixed position, so the low handle bits never change afterwards.
func (m *DenseMap[T]) takeSlot() int {
	if m.nextFree != indexMask {
		slot := int(m.nextFree)
		m.nextFree = m.sparse.At(slot).next
		return slot
	}

	slot := m.sparse.Len()
	if !m.sparse.Push(sparseRecord{id: uint32(slot), index: indexMask, next: indexMask}) {
		panic("memkit: dense map backing allocator exhausted")
	}
	return slot
}
