package engine

import (
	"github.com/sarchlab/apex/insts"
	"github.com/sarchlab/apex/latch"
	"github.com/sarchlab/apex/trace"
)

// doExecute1 runs Execute1. The ALU, address, and branch-resolution
// work all happen one stage later in Execute2 — Execute1 exists only
// to give those two a two-cycle execute unit, per spec.md §4.3, so it
// is a pure pass-through.
func (e *Engine) doExecute1(emit func(trace.Event)) {
	in := e.de1
	if in.IsEmpty() || in.IsSquashed() {
		e.nextE1E2.Clear()
		emit(trace.Event{Stage: "Execute1", Empty: true})
		return
	}
	e.nextE1E2 = in
	e.nextE1E2.State = latch.Valid
	emit(trace.Event{
		Stage:            "Execute1",
		PC:               in.PC,
		InstructionIndex: e.code.Index(in.PC),
		Text:             in.Inst.Disassemble(),
	})
}

// doExecute2 runs Execute2: the ALU, effective-address computation
// for the memory opcodes, and branch/jump resolution. Returns whether
// a branch/jump was taken this cycle and its target, so Tick can
// drive the flush protocol.
func (e *Engine) doExecute2(emit func(trace.Event)) (bool, uint32, error) {
	in := e.e1e2
	if in.IsEmpty() || in.IsSquashed() {
		e.nextE2M1.Clear()
		emit(trace.Event{Stage: "Execute2", Empty: true})
		return false, 0, nil
	}

	inst := in.Inst
	out := latch.Latch{State: latch.Valid, Inst: inst, PC: in.PC}

	rs1, rs2, rs3 := in.Rs1.Value, in.Rs2.Value, in.Rs3.Value

	var taken bool
	var target uint32

	switch inst.Op {
	case insts.OpMOVC:
		out.Result = inst.Imm
	case insts.OpADD:
		out.Result = rs1 + rs2
	case insts.OpSUB:
		out.Result = rs1 - rs2
	case insts.OpMUL:
		out.Result = rs1 * rs2
	case insts.OpAND:
		out.Result = rs1 & rs2
	case insts.OpOR:
		out.Result = rs1 | rs2
	case insts.OpEXOR:
		out.Result = rs1 ^ rs2
	case insts.OpLOAD:
		out.MemAddress = rs1 + inst.Imm
	case insts.OpLDR:
		out.MemAddress = rs1 + rs2
	case insts.OpSTORE:
		out.MemAddress = rs2 + inst.Imm
		out.Result = rs1
	case insts.OpSTR:
		out.MemAddress = rs2 + rs3
		out.Result = rs1
	case insts.OpBZ:
		taken = rs1 == 0
		target = uint32(int64(in.PC) + int64(inst.Imm))
	case insts.OpBNZ:
		taken = rs1 != 0
		target = uint32(int64(in.PC) + int64(inst.Imm))
	case insts.OpJUMP:
		taken = true
		target = uint32(rs1 + inst.Imm)
	}

	if inst.IsBranch() {
		out.BranchTaken = taken
		out.BranchTarget = target
	}

	e.nextE2M1 = out
	emit(trace.Event{
		Stage:            "Execute2",
		PC:               in.PC,
		InstructionIndex: e.code.Index(in.PC),
		Text:             inst.Disassemble(),
	})

	return inst.IsBranch() && taken, target, nil
}
