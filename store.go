package memkit

import "unsafe"

// storeMinCapacity is the first capacity a growing Store jumps to.
const storeMinCapacity = 8

// Store is a growable, densely packed array whose backing memory comes from
// an Allocator through the array API. Growth at least doubles the capacity
// and preserves element order and positions.
//
// Like every type in this package, memory handed to a Store is not scanned by
// the garbage collector: element types holding Go pointers must be kept
// reachable by the caller.
type Store[T any] struct {
	mem    Allocator
	data   []T // full capacity window
	length int
}

// NewStore creates an empty store drawing from mem.
func NewStore[T any](mem Allocator) *Store[T] {
	return &Store[T]{mem: mem}
}

// Len returns the number of live elements.
func (s *Store[T]) Len() int {
	return s.length
}

// Cap returns the current capacity.
func (s *Store[T]) Cap() int {
	return len(s.data)
}

// At returns a pointer to the element at dense position i, 0 <= i < Len().
// The pointer is invalidated by the next growth.
func (s *Store[T]) At(i int) *T {
	return &s.data[:s.length][i]
}

// Set overwrites the element at dense position i.
func (s *Store[T]) Set(i int, v T) {
	s.data[:s.length][i] = v
}

// Slice returns a view of the live elements in dense order. The view is
// invalidated by the next growth.
func (s *Store[T]) Slice() []T {
	return s.data[:s.length]
}

// Reserve grows the capacity to at least n. Reports false when the backing
// allocator cannot satisfy the growth; the store is untouched in that case.
func (s *Store[T]) Reserve(n int) bool {
	if n <= len(s.data) {
		return true
	}
	var zero T
	next := ResizeArray(s.mem, s.data, n, int(unsafe.Alignof(zero)))
	if next == nil {
		return false
	}
	s.data = next
	return true
}

// Push appends v, growing the backing array when full. Reports false on
// allocator exhaustion, leaving the store exactly as it was.
func (s *Store[T]) Push(v T) bool {
	if s.length == len(s.data) {
		next := len(s.data) * 2
		if next < storeMinCapacity {
			next = storeMinCapacity
		}
		if !s.Reserve(next) {
			return false
		}
	}
	s.data[s.length] = v
	s.length++
	return true
}

// Pop removes and returns the last element.
func (s *Store[T]) Pop() T {
	if s.length == 0 {
		panic("memkit: pop from an empty store")
	}
	s.length--
	out := s.data[s.length]
	var zero T
	s.data[s.length] = zero
	return out
}

// Clear drops all elements but keeps the capacity.
func (s *Store[T]) Clear() {
	clear(s.data[:s.length])
	s.length = 0
}

// Release returns the backing array to the allocator. The store is empty and
// reusable afterwards.
func (s *Store[T]) Release() {
	FreeArray(s.mem, s.data)
	s.data = nil
	s.length = 0
}
