//go:build !linux && !darwin

package memkit

import "github.com/pkg/errors"

// MappedBlock falls back to Go-heap memory on platforms where the anonymous
// mmap path is not wired up.
type MappedBlock struct {
	data []byte
}

// MapBlock allocates size bytes of zeroed memory.
func MapBlock(size int) (*MappedBlock, error) {
	if size <= 0 {
		return nil, errors.New("memkit: mapped block size must be positive")
	}
	return &MappedBlock{data: make([]byte, size)}, nil
}

// Bytes returns the block, nil after Unmap.
func (m *MappedBlock) Bytes() []byte {
	return m.data
}

// Unmap drops the block. Safe to call more than once.
func (m *MappedBlock) Unmap() error {
	m.data = nil
	return nil
}
