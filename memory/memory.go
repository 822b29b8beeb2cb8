// Package memory provides APEX's two address spaces: the code memory
// the loader populates once and Fetch reads from, and the flat data
// memory STORE/STR write and LOAD/LDR read.
//
// Data memory is addressed directly by the value Execute2 computes
// (rs-plus-immediate), not scaled by a word size — the original
// source indexes data_memory[mem_address] as a plain C array, and this
// port keeps that rather than inventing a byte/word distinction the
// ISA never had.
package memory

import (
	"fmt"

	"github.com/sarchlab/apex/insts"
)

// Code holds the assembled instruction stream the loader produced,
// addressable by PC. Instructions are 4 bytes wide regardless of
// operand shape — APEX has no variable-width encoding (an explicit
// Non-goal) — so instruction i sits at byte base+4i.
type Code struct {
	base  uint32
	words []*insts.Instruction
}

// NewCode wraps a loaded instruction stream as code memory.
func NewCode(base uint32, words []*insts.Instruction) *Code {
	return &Code{base: base, words: words}
}

// Base returns the byte address of the first instruction.
func (c *Code) Base() uint32 {
	return c.base
}

// Len returns the number of instructions.
func (c *Code) Len() int {
	return len(c.words)
}

// Index converts a PC into a code-memory slot index.
func (c *Code) Index(pc uint32) int {
	return int((pc - c.base) / 4)
}

// At returns the instruction fetched at pc, or false if pc is outside
// the loaded program (a runtime condition per spec.md §7).
func (c *Code) At(pc uint32) (*insts.Instruction, bool) {
	i := c.Index(pc)
	if i < 0 || i >= len(c.words) {
		return nil, false
	}
	return c.words[i], true
}

// Data is APEX's flat data memory.
type Data struct {
	cells []int32
}

// DefaultDataSize is the size used when a program doesn't need a
// larger data segment than the classic APEX course assignment assumed
// (100 locations are dumped in the final report; headroom is kept for
// programs that index further).
const DefaultDataSize = 4096

// NewData returns a zeroed data memory of the given size.
func NewData(size int) *Data {
	return &Data{cells: make([]int32, size)}
}

// OutOfRangeError reports an access outside the data memory's bounds —
// a runtime condition per spec.md §7, surfaced rather than silently
// ignored or allowed to panic.
type OutOfRangeError struct {
	Address int32
	Size    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("memory: address %d out of range [0,%d)", e.Address, e.Size)
}

// Read returns data_memory[addr].
func (d *Data) Read(addr int32) (int32, error) {
	if addr < 0 || int(addr) >= len(d.cells) {
		return 0, &OutOfRangeError{Address: addr, Size: len(d.cells)}
	}
	return d.cells[addr], nil
}

// Write stores value at data_memory[addr].
func (d *Data) Write(addr int32, value int32) error {
	if addr < 0 || int(addr) >= len(d.cells) {
		return &OutOfRangeError{Address: addr, Size: len(d.cells)}
	}
	d.cells[addr] = value
	return nil
}

// Len reports the number of addressable cells.
func (d *Data) Len() int {
	return len(d.cells)
}

// Dump returns the first n cells, for the final-state report.
func (d *Data) Dump(n int) []int32 {
	if n > len(d.cells) {
		n = len(d.cells)
	}
	out := make([]int32, n)
	copy(out, d.cells[:n])
	return out
}
