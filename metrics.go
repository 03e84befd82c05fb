package memkit

// Metrics is a point-in-time snapshot of an allocator's block usage.
type Metrics struct {
	Used        int     // bytes currently allocated, headers and padding included
	Capacity    int     // total size of the owned block
	Utilization float64 // ratio of used to capacity (0.0-1.0)
}

func snapshot(used, capacity int) Metrics {
	m := Metrics{Used: used, Capacity: capacity}
	if capacity > 0 {
		m.Utilization = float64(used) / float64(capacity)
	}
	return m
}

// Metrics returns a snapshot of the arena's usage.
func (a *BumpAllocator) Metrics() Metrics {
	return snapshot(a.UsedMemory(), a.Size())
}

// Metrics returns a snapshot of the arena's usage.
func (a *StackAllocator) Metrics() Metrics {
	return snapshot(a.UsedMemory(), a.Size())
}

// Metrics returns a snapshot of the pool's usage. Used counts live slots at
// full stride.
func (p *PoolAllocator) Metrics() Metrics {
	return snapshot(p.UsedMemory(), p.Size())
}

// Metrics returns a snapshot of the allocator's usage. Used counts live
// allocations including their headers; the rest of the block is free or lost
// to fragmentation.
func (f *FreeListAllocator) Metrics() Metrics {
	return snapshot(f.UsedMemory(), f.Size())
}
