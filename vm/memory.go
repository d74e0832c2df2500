package vm

import (
	"iter"
	"slices"
)

// Memory is the addressable data segment. Cells are allocated by AMEM and
// released by DMEM; new cells are zero.
type Memory struct {
	Data []int
}

// Allocate extends memory by count zeroed cells.
func (mem *Memory) Allocate(count int) (err error) {
	if count < 0 {
		err = ErrMemoryBounds{Address: len(mem.Data) + count, Size: len(mem.Data)}
		return
	}

	mem.Data = append(mem.Data, make([]int, count)...)
	return
}

// Deallocate releases the last count cells.
func (mem *Memory) Deallocate(count int) (err error) {
	if count < 0 || count > len(mem.Data) {
		err = ErrMemoryBounds{Address: len(mem.Data) - count, Size: len(mem.Data)}
		return
	}

	mem.Data = mem.Data[:len(mem.Data)-count]
	return
}

// Read returns the cell at address.
func (mem *Memory) Read(address int) (value int, err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	value = mem.Data[address]
	return
}

// Write sets the cell at address.
func (mem *Memory) Write(address int, value int) (err error) {
	err = mem.check(address)
	if err != nil {
		return
	}

	mem.Data[address] = value
	return
}

func (mem *Memory) check(address int) error {
	if address < 0 || address >= len(mem.Data) {
		return ErrMemoryBounds{Address: address, Size: len(mem.Data)}
	}
	return nil
}

func (mem *Memory) Len() int {
	return len(mem.Data)
}

func (mem *Memory) Reset() {
	if len(mem.Data) > 0 {
		mem.Data = mem.Data[:0]
	}
}

// All iterates over memory from address 0.
func (mem *Memory) All() iter.Seq[int] {
	return slices.Values(mem.Data)
}
