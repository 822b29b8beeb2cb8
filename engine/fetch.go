package engine

import (
	"fmt"

	"github.com/sarchlab/apex/insts"
	"github.com/sarchlab/apex/latch"
	"github.com/sarchlab/apex/trace"
)

// doFetch runs the Fetch stage. stalled reports whether Decode/RF
// could not consume its latch this cycle, in which case Fetch must
// hold the same instruction rather than advance the PC — the
// combinational stall signal reaching Fetch in the same cycle it was
// raised.
func (e *Engine) doFetch(emit func(trace.Event), stalled bool) error {
	if stalled {
		kept := e.fd
		kept.State = latch.Stalled
		e.nextFD = kept
		emit(trace.Event{Stage: "Fetch", Empty: true})
		return nil
	}

	if e.redirect {
		e.pc = e.target
		e.redirect = false
	}

	if e.halting {
		e.nextFD.Clear()
		emit(trace.Event{Stage: "Fetch", Empty: true})
		return nil
	}

	inst, ok := e.code.At(e.pc)
	if !ok {
		e.nextFD.Clear()
		emit(trace.Event{Stage: "Fetch", Empty: true})
		return &Fault{Cycle: e.cycle, Stage: "Fetch", Err: fmt.Errorf("pc %d outside loaded program", e.pc)}
	}

	e.nextFD = latch.Latch{State: latch.Valid, Inst: inst, PC: e.pc}
	emit(trace.Event{
		Stage:            "Fetch",
		PC:               e.pc,
		InstructionIndex: e.code.Index(e.pc),
		Text:             inst.Disassemble(),
	})

	if inst.Op == insts.OpHALT {
		e.halting = true
	}
	e.pc += 4

	return nil
}
