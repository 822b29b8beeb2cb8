// Package trace defines the per-cycle structured event stream the
// engine emits (spec.md §6). Formatting those events into the
// original simulator's printed stage dump is the report package's
// job; this package only defines the event shape.
package trace

// Event describes one pipeline stage's activity during one cycle.
type Event struct {
	// Cycle is the 1-based clock cycle this event belongs to.
	Cycle uint64

	// Stage names the pipeline stage, e.g. "Fetch", "Decode/RF",
	// "Execute1", "Execute2", "Memory1", "Memory2", "Writeback".
	Stage string

	// Empty reports whether the stage had no instruction to report.
	Empty bool

	// InstructionIndex is (PC-base)/4, the program-order index of the
	// instruction in the stage. Only meaningful when !Empty.
	InstructionIndex int

	// PC is the fetch address of the instruction in the stage.
	PC uint32

	// Text is the disassembled instruction, per insts.Instruction.Disassemble.
	Text string
}
