package memkit

// Handle is an opaque reference into a DenseMap. The bottom sixteen bits hold
// the home slot of the sparse record that backs it (fixed for the slot's
// lifetime); the top sixteen bits hold a generation counter bumped every time
// the slot is reused, so a handle to a removed element is never accepted
// again.
type Handle uint32

const (
	// InvalidHandle is reserved and never issued by any DenseMap. It is the
	// value to use for "no handle".
	InvalidHandle Handle = 0xFFFFFFFF

	// indexMask extracts a handle's home slot. It doubles as the sentinel
	// marking a sparse slot free and as the free chain terminator.
	indexMask = 0xFFFF

	// generationOne is one generation step in the combined handle value.
	generationOne = 0x10000
)

// IsValid reports whether h could ever have been issued. A valid handle may
// still refer to a removed element; DenseMap.Has is the authoritative check.
func (h Handle) IsValid() bool {
	return h != InvalidHandle
}

// Slot returns the handle's home position in the sparse array.
func (h Handle) Slot() int {
	return int(h & indexMask)
}

// Generation returns how many times the home slot had been reused when the
// handle was issued.
func (h Handle) Generation() int {
	return int(h >> 16)
}
