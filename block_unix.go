//go:build linux || darwin

package memkit

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MappedBlock is a backing block acquired straight from the OS with an
// anonymous mapping, bypassing the Go heap. Useful for the large blocks a
// long-lived FreeListAllocator sits on.
type MappedBlock struct {
	data []byte
}

// MapBlock maps size bytes of zeroed anonymous memory.
func MapBlock(size int) (*MappedBlock, error) {
	if size <= 0 {
		return nil, errors.New("memkit: mapped block size must be positive")
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, errors.Wrap(err, "memkit: anonymous mmap")
	}
	return &MappedBlock{data: data}, nil
}

// Bytes returns the mapped block, nil after Unmap. Hand this to an allocator
// constructor; the mapping must outlive the allocator.
func (m *MappedBlock) Bytes() []byte {
	return m.data
}

// Unmap returns the block to the OS. Every allocation carved from it becomes
// invalid. Safe to call more than once.
func (m *MappedBlock) Unmap() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return errors.Wrap(unix.Munmap(data), "memkit: munmap")
}
