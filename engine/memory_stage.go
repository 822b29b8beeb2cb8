package engine

import (
	"github.com/sarchlab/apex/latch"
	"github.com/sarchlab/apex/trace"
)

// doMemory1 runs Memory1. Like Execute1, it exists only to make data
// memory a two-cycle unit; the actual access happens in Memory2 once
// Execute2 has already computed the effective address.
func (e *Engine) doMemory1(emit func(trace.Event)) {
	in := e.e2m1
	if in.IsEmpty() || in.IsSquashed() {
		e.nextM1M2.Clear()
		emit(trace.Event{Stage: "Memory1", Empty: true})
		return
	}
	e.nextM1M2 = in
	e.nextM1M2.State = latch.Valid
	emit(trace.Event{
		Stage:            "Memory1",
		PC:               in.PC,
		InstructionIndex: e.code.Index(in.PC),
		Text:             in.Inst.Disassemble(),
	})
}

// doMemory2 runs Memory2: the actual data memory access for LOAD/LDR
// (read) and STORE/STR (write). Every other opcode passes its Execute2
// result through unchanged.
func (e *Engine) doMemory2(emit func(trace.Event)) error {
	in := e.m1m2
	if in.IsEmpty() || in.IsSquashed() {
		e.nextM2WB.Clear()
		emit(trace.Event{Stage: "Memory2", Empty: true})
		return nil
	}

	inst := in.Inst
	out := in
	out.State = latch.Valid

	switch {
	case inst.IsLoad():
		v, err := e.data.Read(in.MemAddress)
		if err != nil {
			return &Fault{Cycle: e.cycle, Stage: "Memory2", Err: err}
		}
		out.Result = v
	case inst.IsStore():
		if err := e.data.Write(in.MemAddress, in.Result); err != nil {
			return &Fault{Cycle: e.cycle, Stage: "Memory2", Err: err}
		}
	}

	e.nextM2WB = out
	emit(trace.Event{
		Stage:            "Memory2",
		PC:               in.PC,
		InstructionIndex: e.code.Index(in.PC),
		Text:             inst.Disassemble(),
	})

	return nil
}
