// Package engine implements the APEX pipeline execution engine: the
// seven-stage datapath, its six inter-stage latches, the Decode/RF
// hazard core, the two-cycle Execute/Memory units, and the
// branch/jump flush protocol (spec.md §2-4). This is the part of the
// repository the rest of the tree exists to serve.
package engine

import (
	"github.com/sarchlab/apex/latch"
	"github.com/sarchlab/apex/loader"
	"github.com/sarchlab/apex/memory"
	"github.com/sarchlab/apex/register"
	"github.com/sarchlab/apex/trace"
)

// Engine runs one APEX program, one cycle at a time.
type Engine struct {
	cfg *Config

	regs *register.File
	data *memory.Data
	code *memory.Code

	pc uint32

	// Current latches, one per inter-stage boundary.
	fd, de1, e1e2, e2m1, m1m2, m2wb latch.Latch

	// Latches being written this cycle; committed to the current set
	// synchronously at the end of Tick.
	nextFD, nextDE1, nextE1E2, nextE2M1, nextM1M2, nextM2WB latch.Latch

	// Global control flags (spec.md §3), carried as engine fields
	// rather than package-level mutable globals — see Design Note §9
	// and DESIGN.md.
	halting  bool
	halted   bool
	redirect bool
	target   uint32

	cycle     uint64
	retired   uint64
	stalls    uint64
	flushes   uint64
	branches  uint64
	forwarded uint64
}

// New creates an Engine for prog using cfg. The program counter starts
// at cfg.CodeBase.
func New(prog *loader.Program, cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		cfg:  cfg,
		regs: register.New(),
		data: memory.NewData(cfg.DataMemorySize),
		code: memory.NewCode(prog.Base, prog.Instructions),
		pc:   prog.Base,
	}
}

// RegisterFile returns the architectural register file.
func (e *Engine) RegisterFile() *register.File {
	return e.regs
}

// DataMemory returns the data memory.
func (e *Engine) DataMemory() *memory.Data {
	return e.data
}

// PC returns the current program counter.
func (e *Engine) PC() uint32 {
	return e.pc
}

// Halted reports whether HALT has retired at Writeback.
func (e *Engine) Halted() bool {
	return e.halted
}

// Cycle returns the number of cycles ticked so far.
func (e *Engine) Cycle() uint64 {
	return e.cycle
}

// Stats summarizes engine activity, mirroring the teacher's
// Pipeline.Stats but over seven stages and this ISA's hazards.
type Stats struct {
	Cycles    uint64
	Retired   uint64
	Stalls    uint64
	Flushes   uint64
	Branches  uint64
	Forwarded uint64
}

// Stats returns the engine's run statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Cycles:    e.cycle,
		Retired:   e.retired,
		Stalls:    e.stalls,
		Flushes:   e.flushes,
		Branches:  e.branches,
		Forwarded: e.forwarded,
	}
}

// Tick advances the engine by one clock cycle, running all seven
// stages in reverse datapath order (spec.md §4): Writeback, Memory2,
// Memory1, Execute2, Execute1, Decode/RF, Fetch. Returns the cycle's
// trace events (empty unless cfg.Trace is set) and a Fault if a
// runtime condition (spec.md §7) was detected.
func (e *Engine) Tick() ([]trace.Event, error) {
	if e.halted {
		return nil, nil
	}

	e.cycle++

	var events []trace.Event
	emit := func(ev trace.Event) {
		if e.cfg.Trace {
			ev.Cycle = e.cycle
			events = append(events, ev)
		}
	}

	if err := e.doWriteback(emit); err != nil {
		return events, err
	}
	if err := e.doMemory2(emit); err != nil {
		return events, err
	}
	e.doMemory1(emit)

	branchTaken, branchTarget, err := e.doExecute2(emit)
	if err != nil {
		return events, err
	}
	e.doExecute1(emit)

	stalled, err := e.doDecode(emit)
	if err != nil {
		return events, err
	}
	if err := e.doFetch(emit, stalled); err != nil {
		return events, err
	}

	if branchTaken {
		e.branches++
		e.flushes++
		e.redirect = true
		e.target = branchTarget
		// Fetch stops after fetching HALT, so any in-flight HALT is behind
		// the branch and squashed with it; each squashed writer gives
		// back the destination register Decode/RF invalidated.
		e.halting = false
		for _, sq := range [...]latch.Latch{e.nextDE1, e.nextE1E2} {
			if sq.State != latch.Valid {
				continue
			}
			if rd, ok := sq.Inst.Writes(); ok {
				e.regs.Commit(rd, e.regs.Read(rd))
			}
		}
		e.nextFD.Squash()
		e.nextDE1.Squash()
		e.nextE1E2.Squash()
	}

	if stalled {
		e.stalls++
	}

	// Commit next-cycle latches synchronously.
	e.fd, e.de1, e.e1e2, e.e2m1, e.m1m2, e.m2wb =
		e.nextFD, e.nextDE1, e.nextE1E2, e.nextE2M1, e.nextM1M2, e.nextM2WB

	return events, nil
}

// InFlightWriters returns the number of writer instructions currently
// occupying a latch from Decode/RF (inclusive) through Writeback
// (exclusive) — one slot per inter-stage boundary from
// Decode/RF→Execute1 through Memory2→Writeback.
func (e *Engine) InFlightWriters() int {
	n := 0
	for _, l := range [...]latch.Latch{e.de1, e.e1e2, e.e2m1, e.m1m2, e.m2wb} {
		if l.State != latch.Valid {
			continue
		}
		if _, ok := l.Inst.Writes(); ok {
			n++
		}
	}
	return n
}

// InvalidRegisterCount returns how many architectural registers
// currently have an in-flight writer.
func (e *Engine) InvalidRegisterCount() int {
	n := 0
	for _, entry := range e.regs.Snapshot() {
		if !entry.Valid {
			n++
		}
	}
	return n
}

// Run ticks the engine until HALT retires or n cycles have run,
// whichever comes first. See SPEC_FULL.md §9 for why this does not
// reproduce the original C loop's off-by-one cycle-budget check.
func (e *Engine) Run(n uint64) ([]trace.Event, error) {
	var all []trace.Event
	for e.cycle < n && !e.halted {
		evs, err := e.Tick()
		all = append(all, evs...)
		if err != nil {
			return all, err
		}
	}
	return all, nil
}
