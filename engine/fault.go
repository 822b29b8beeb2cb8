package engine

import "fmt"

// Fault reports a runtime condition detected while the engine runs
// (spec.md §7): a data-memory address out of range, a PC outside the
// loaded program, or a BZ/BNZ whose preceding instruction writes no
// register. Unknown opcodes and out-of-range register operands are
// rejected by the loader before the engine starts; the engine itself
// does not check for them. Faults are returned from Tick/Run — library
// code never calls os.Exit; only cmd/apex does that, after inspecting
// a Fault.
type Fault struct {
	Cycle uint64
	Stage string
	Err   error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("engine: fault at cycle %d in %s: %v", f.Cycle, f.Stage, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
