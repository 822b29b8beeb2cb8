// Package latch defines the pipeline latch: the record carried across
// one inter-stage boundary, plus the four-way state it can be in.
//
// The original source encodes this with three overlapping booleans
// (busy, stalled, flushed) per CPU_Stage, a combination spec.md §9
// calls out as a known source of bugs in the C source. This package
// follows the spec's Design Note and models the same four meaningful
// combinations as one State enum instead: Empty, Valid, Stalled,
// Squashed.
package latch

import "github.com/sarchlab/apex/insts"

// State is the tagged state of a pipeline latch.
type State uint8

const (
	// Empty means no instruction currently occupies this latch.
	Empty State = iota
	// Valid means the latch holds an instruction its stage has not yet
	// consumed.
	Valid
	// Stalled means the producer stage could not hand this latch off
	// last cycle and must retry.
	Stalled
	// Squashed means a branch/jump resolution invalidated this latch;
	// it must be consumed with no side effect, then cleared.
	Squashed
)

// Operand is one captured source-operand value, with the flag
// Variant B forwarding needs to tell a genuinely-zero forwarded value
// apart from "never captured".
type Operand struct {
	Value    int32
	Captured bool
}

// Latch is the single record type reused at every one of the six
// inter-stage boundaries (Fetch→Decode, Decode→Execute1,
// Execute1→Execute2, Execute2→Memory1, Memory1→Memory2,
// Memory2→Writeback). Each stage only reads the fields meaningful to
// it; a stage further upstream hasn't populated the later fields yet.
type Latch struct {
	State State

	Inst *insts.Instruction
	PC   uint32

	// Captured source-operand values, indexed the same way
	// insts.Instruction.Reads() would enumerate them: Rs1, Rs2, Rs3.
	Rs1, Rs2, Rs3 Operand

	// Result holds the ALU result, MOVC immediate, or loaded/forwarded
	// value, depending on which stage last wrote it.
	Result int32

	// MemAddress is the address Execute2 computed for LOAD/LDR/STORE/STR.
	MemAddress int32

	// BranchTarget is the redirect target Execute2 computed, valid only
	// when Inst.IsBranch() and the branch/jump was taken.
	BranchTarget uint32
	BranchTaken  bool
}

// Clear resets the latch to Empty, dropping its instruction.
func (l *Latch) Clear() {
	*l = Latch{State: Empty}
}

// Squash marks the latch Squashed, to be consumed with no side effect
// and cleared by its stage next cycle.
func (l *Latch) Squash() {
	l.State = Squashed
}

// IsEmpty reports whether the latch holds no instruction.
func (l *Latch) IsEmpty() bool {
	return l.State == Empty
}

// IsStalled reports whether the latch's producer must retry.
func (l *Latch) IsStalled() bool {
	return l.State == Stalled
}

// IsSquashed reports whether the latch was invalidated by a flush.
func (l *Latch) IsSquashed() bool {
	return l.State == Squashed
}

// HasWork reports whether the latch carries an instruction a stage
// should act on: present and neither empty nor already squashed away.
func (l *Latch) HasWork() bool {
	return l.State == Valid || l.State == Stalled
}
