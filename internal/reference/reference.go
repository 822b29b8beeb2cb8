// Package reference implements a non-pipelined, one-instruction-at-a-
// time functional executor for APEX programs. It exists purely to
// check the cycle-accurate engine against: run a program through
// Execute and through engine.Engine and the final register/data state
// must agree, the way the teacher repo cross-checks its pipeline's
// timing model against its plain emu package on the same program.
package reference

import (
	"fmt"

	"github.com/sarchlab/apex/insts"
	"github.com/sarchlab/apex/loader"
	"github.com/sarchlab/apex/memory"
	"github.com/sarchlab/apex/register"
)

// Result is the final architectural state after a program runs to
// HALT (or exhausts the instruction budget without one).
type Result struct {
	Registers [register.Count]register.Entry
	Data      *memory.Data
	Retired   uint64
	Halted    bool
}

// Execute runs prog sequentially, one instruction fully completing
// before the next begins, for up to maxSteps instructions. There is
// no pipeline here — every opcode is read, computed, and committed in
// the same step — so the stall/forward distinction the engine package
// makes does not apply.
func Execute(prog *loader.Program, data *memory.Data, maxSteps uint64) (Result, error) {
	regs := register.New()
	if data == nil {
		data = memory.NewData(memory.DefaultDataSize)
	}
	code := memory.NewCode(prog.Base, prog.Instructions)

	pc := prog.Base
	var retired uint64

	for retired < maxSteps {
		in, ok := code.At(pc)
		if !ok {
			return Result{}, fmt.Errorf("reference: pc %d outside loaded program", pc)
		}

		next := pc + 4
		switch in.Op {
		case insts.OpMOVC:
			regs.Commit(in.Rd, in.Imm)
		case insts.OpADD:
			regs.Commit(in.Rd, regs.Read(in.Rs1)+regs.Read(in.Rs2))
		case insts.OpSUB:
			regs.Commit(in.Rd, regs.Read(in.Rs1)-regs.Read(in.Rs2))
		case insts.OpMUL:
			regs.Commit(in.Rd, regs.Read(in.Rs1)*regs.Read(in.Rs2))
		case insts.OpAND:
			regs.Commit(in.Rd, regs.Read(in.Rs1)&regs.Read(in.Rs2))
		case insts.OpOR:
			regs.Commit(in.Rd, regs.Read(in.Rs1)|regs.Read(in.Rs2))
		case insts.OpEXOR:
			regs.Commit(in.Rd, regs.Read(in.Rs1)^regs.Read(in.Rs2))
		case insts.OpLOAD:
			v, err := data.Read(regs.Read(in.Rs1) + in.Imm)
			if err != nil {
				return Result{}, fmt.Errorf("reference: %w", err)
			}
			regs.Commit(in.Rd, v)
		case insts.OpLDR:
			v, err := data.Read(regs.Read(in.Rs1) + regs.Read(in.Rs2))
			if err != nil {
				return Result{}, fmt.Errorf("reference: %w", err)
			}
			regs.Commit(in.Rd, v)
		case insts.OpSTORE:
			if err := data.Write(regs.Read(in.Rs2)+in.Imm, regs.Read(in.Rs1)); err != nil {
				return Result{}, fmt.Errorf("reference: %w", err)
			}
		case insts.OpSTR:
			if err := data.Write(regs.Read(in.Rs2)+regs.Read(in.Rs3), regs.Read(in.Rs1)); err != nil {
				return Result{}, fmt.Errorf("reference: %w", err)
			}
		case insts.OpBZ:
			prev, ok := code.At(pc - 4)
			if !ok {
				return Result{}, fmt.Errorf("reference: BZ at pc %d has no preceding instruction", pc)
			}
			rd, writes := prev.Writes()
			if !writes {
				return Result{}, fmt.Errorf("reference: BZ at pc %d: preceding instruction does not write a register", pc)
			}
			if regs.Read(rd) == 0 {
				next = uint32(int64(pc) + int64(in.Imm))
			}
		case insts.OpBNZ:
			prev, ok := code.At(pc - 4)
			if !ok {
				return Result{}, fmt.Errorf("reference: BNZ at pc %d has no preceding instruction", pc)
			}
			rd, writes := prev.Writes()
			if !writes {
				return Result{}, fmt.Errorf("reference: BNZ at pc %d: preceding instruction does not write a register", pc)
			}
			if regs.Read(rd) != 0 {
				next = uint32(int64(pc) + int64(in.Imm))
			}
		case insts.OpJUMP:
			next = uint32(regs.Read(in.Rs1) + in.Imm)
		case insts.OpHALT:
			retired++
			return Result{Registers: regs.Snapshot(), Data: data, Retired: retired, Halted: true}, nil
		}

		retired++
		pc = next
	}

	return Result{Registers: regs.Snapshot(), Data: data, Retired: retired, Halted: false}, nil
}
