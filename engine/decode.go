package engine

import (
	"fmt"

	"github.com/sarchlab/apex/insts"
	"github.com/sarchlab/apex/latch"
	"github.com/sarchlab/apex/trace"
)

// doDecode runs Decode/RF: the hazard core. It resolves every source
// operand the instruction reads, including BZ/BNZ's implicit
// condition operand (the destination register of the immediately
// preceding instruction in program order), stalling when an operand
// is neither valid in the register file nor forwardable. Returns
// whether it stalled, so Fetch can decide whether to hold its latch.
func (e *Engine) doDecode(emit func(trace.Event)) (bool, error) {
	in := e.fd
	if in.IsEmpty() || in.IsSquashed() {
		e.nextDE1.Clear()
		emit(trace.Event{Stage: "Decode/RF", Empty: true})
		return false, nil
	}

	inst := in.Inst

	reads := inst.Reads()

	var implicitReg int8 = insts.NoReg
	if inst.Op == insts.OpBZ || inst.Op == insts.OpBNZ {
		prev, ok := e.code.At(in.PC - 4)
		if !ok {
			return false, &Fault{Cycle: e.cycle, Stage: "Decode/RF",
				Err: fmt.Errorf("%s at pc %d has no preceding instruction to supply its condition", inst.Op, in.PC)}
		}
		rd, writes := prev.Writes()
		if !writes {
			return false, &Fault{Cycle: e.cycle, Stage: "Decode/RF",
				Err: fmt.Errorf("%s at pc %d: preceding instruction %s does not write a register", inst.Op, in.PC, prev.Op)}
		}
		implicitReg = rd
		reads = append(reads, rd)
	}

	operands := make(map[int8]int32, len(reads))
	stalled := false
	for _, r := range reads {
		if e.regs.IsValid(r) {
			operands[r] = e.regs.Read(r)
			continue
		}
		if e.cfg.Variant == VariantForwarding {
			if v, ok := e.forward(r); ok {
				operands[r] = v
				e.forwarded++
				continue
			}
		}
		stalled = true
	}

	if stalled {
		e.nextDE1.Clear()
		emit(trace.Event{Stage: "Decode/RF", Empty: true})
		return true, nil
	}

	out := latch.Latch{State: latch.Valid, Inst: inst, PC: in.PC}
	assign := func(slot *latch.Operand, r int8) {
		if r == insts.NoReg {
			return
		}
		if v, ok := operands[r]; ok {
			*slot = latch.Operand{Value: v, Captured: true}
		}
	}
	assign(&out.Rs1, inst.Rs1)
	assign(&out.Rs2, inst.Rs2)
	assign(&out.Rs3, inst.Rs3)
	if implicitReg != insts.NoReg {
		out.Rs1 = latch.Operand{Value: operands[implicitReg], Captured: true}
	}

	if rd, ok := inst.Writes(); ok {
		e.regs.Invalidate(rd)
	}

	e.nextDE1 = out
	emit(trace.Event{
		Stage:            "Decode/RF",
		PC:               in.PC,
		InstructionIndex: e.code.Index(in.PC),
		Text:             inst.Disassemble(),
	})

	return false, nil
}
