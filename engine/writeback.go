package engine

import (
	"github.com/sarchlab/apex/insts"
	"github.com/sarchlab/apex/trace"
)

// doWriteback runs Writeback: the only stage allowed to commit
// architectural state. A writer instruction's register becomes valid
// again here, and HALT's retirement — not its fetch — is what stops
// the engine, so an in-flight HALT still lets the older instructions
// that entered the pipeline before it drain normally.
func (e *Engine) doWriteback(emit func(trace.Event)) error {
	in := e.m2wb
	if in.IsEmpty() || in.IsSquashed() {
		emit(trace.Event{Stage: "Writeback", Empty: true})
		return nil
	}

	inst := in.Inst
	if rd, ok := inst.Writes(); ok {
		e.regs.Commit(rd, in.Result)
	}
	e.retired++

	emit(trace.Event{
		Stage:            "Writeback",
		PC:               in.PC,
		InstructionIndex: e.code.Index(in.PC),
		Text:             inst.Disassemble(),
	})

	if inst.Op == insts.OpHALT {
		e.halted = true
	}

	return nil
}
