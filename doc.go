// Package memkit implements a small family of manual memory allocators and a
// generational slot map ("dense map") built on top of them.
//
// # Overview
//
// Every allocator in this package partitions one contiguous memory block that
// it is given at construction time. The block is never resized by the
// allocator; when it runs out, Allocate returns nil and the caller decides
// whether to retry against a different allocator, acquire a bigger block, or
// fail the operation that needed memory. Four strategies are provided:
//
//   - BumpAllocator: monotonic offset, bulk Reset only. Ideal for
//     per-frame / per-request scratch memory.
//   - StackAllocator: like the bump allocator, but individual frees are
//     allowed in strict reverse-of-allocation (LIFO) order.
//   - PoolAllocator: N equal, aligned slots with an embedded free list.
//     O(1) allocate and free, no search.
//   - FreeListAllocator: a general malloc/free replacement. First-fit
//     allocation, address-ordered deallocation with neighbor coalescing.
//
// All of them satisfy the two-method Allocator interface, and everything else
// in the package (aligned allocation, typed object and array helpers, the
// Store container, the DenseMap) is written against that interface, never
// against a concrete strategy.
//
// # Basic Usage
//
//	block := memkit.NewBlock(1 << 20)
//	heap := memkit.NewFreeListAllocator(block)
//
//	buf := heap.Allocate(1024)
//	if buf == nil {
//		// out of memory: the block is exhausted or too fragmented
//	}
//	heap.Deallocate(buf, 1024)
//
//	// Typed helpers work with any Allocator.
//	p := memkit.NewObject[Player](heap)
//	defer memkit.FreeObject(heap, p)
//
// # Dense Map
//
// DenseMap hands out stable 32-bit generational handles to elements that live
// in a densely packed backing array. Elements may be relocated internally
// (removal swaps the last element into the hole) but handles stay valid until
// their element is removed, and a removed handle is never accepted again:
//
//	players := memkit.NewDenseMap[Player](heap)
//	h := players.Add(Player{Name: "knight"})
//	if players.Has(h) {
//		players.Find(h).HP -= 10
//	}
//	players.Remove(h) // h is permanently dead from here on
//
// # Thread Safety
//
// Nothing in this package is goroutine-safe. Exactly one logical owner may
// call into a given allocator or dense map at a time; concurrent callers must
// serialize externally, or use one allocator instance per goroutine.
//
// # Error Handling
//
// Capacity exhaustion is reported with a nil result, never a panic. Contract
// violations (freeing with the wrong size, freeing out of LIFO order, passing
// a pointer the allocator does not own) panic: they are programmer errors,
// not runtime conditions to recover from.
package memkit
