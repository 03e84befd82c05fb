package memkit

import (
	"fmt"
)

// Example demonstrates the general-purpose allocator with typed helpers.
func Example() {
	// All memory comes from one pre-sized block; nothing here touches the
	// Go heap after this line.
	f := NewFreeListAllocator(NewBlock(64 * 1024))

	// Raw bytes.
	buf := f.Allocate(1024)
	fmt.Printf("Buffer: %d bytes\n", len(buf))

	// A typed value (zeroed).
	ptr := NewObject[int64](f)
	*ptr = 42
	fmt.Printf("Value: %d\n", *ptr)

	// A typed array.
	arr := AllocateArray[int32](f, 5, 4)
	for i := range arr {
		arr[i] = int32(i * 2)
	}
	fmt.Printf("Slice: %v\n", arr)

	fmt.Printf("In use: %d bytes\n", f.UsedMemory())

	// Individual frees, any order.
	FreeArray(f, arr)
	FreeObject(f, ptr)
	f.Deallocate(buf, 1024)
	fmt.Printf("After release: %d bytes\n", f.UsedMemory())

	// Output:
	// Buffer: 1024 bytes
	// Value: 42
	// Slice: [0 2 4 6 8]
	// In use: 1108 bytes
	// After release: 0 bytes
}

// ExampleBumpAllocator demonstrates scoped temporary allocation.
func ExampleBumpAllocator() {
	a := NewBumpAllocator(NewBlock(1024))

	a.Allocate(100)
	fmt.Printf("In use: %d bytes\n", a.UsedMemory())

	// Everything allocated inside the scope is reclaimed by Close.
	scope := a.Scope()
	a.Allocate(200)
	fmt.Printf("Inside scope: %d bytes\n", a.UsedMemory())
	scope.Close()
	fmt.Printf("After scope: %d bytes\n", a.UsedMemory())

	a.Reset()
	fmt.Printf("After reset: %d bytes\n", a.UsedMemory())

	// Output:
	// In use: 100 bytes
	// Inside scope: 304 bytes
	// After scope: 100 bytes
	// After reset: 0 bytes
}

// ExampleDenseMap demonstrates generational handles surviving relocation.
func ExampleDenseMap() {
	f := NewFreeListAllocator(NewBlock(64 * 1024))
	m := NewDenseMap[string](f)

	h1 := m.Add("alpha")
	h2 := m.Add("beta")
	fmt.Println(*m.Find(h2))

	// Removing invalidates h1 forever, even though its slot is reused.
	m.Remove(h1)
	fmt.Printf("Has(h1): %v\n", m.Has(h1))

	h3 := m.Add("gamma")
	fmt.Printf("%s at slot %d, generation %d\n", *m.Find(h3), h3.Slot(), h3.Generation())

	// The dense side iterates without gaps.
	fmt.Print("Live:")
	for i := 0; i < m.Len(); i++ {
		fmt.Printf(" %s", *m.At(i))
	}
	fmt.Println()

	// Output:
	// beta
	// Has(h1): false
	// gamma at slot 0, generation 2
	// Live: beta gamma
}

// ExamplePoolAllocator demonstrates fixed-size slot allocation.
func ExamplePoolAllocator() {
	p := NewPoolAllocator(NewBlock(256), 32, 8)
	fmt.Printf("Capacity: %d slots\n", p.Capacity())

	s1 := p.Allocate(32)
	s2 := p.Allocate(32)
	fmt.Printf("Slot indices: %d, %d\n", p.IndexOf(s1), p.IndexOf(s2))
	fmt.Printf("In use: %d bytes\n", p.UsedMemory())

	p.Deallocate(s1, 32)
	p.Deallocate(s2, 32)
	fmt.Printf("After release: %d bytes\n", p.UsedMemory())

	// Output:
	// Capacity: 8 slots
	// Slot indices: 0, 1
	// In use: 64 bytes
	// After release: 0 bytes
}
