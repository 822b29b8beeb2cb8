package engine

import "github.com/sarchlab/apex/latch"

// forward looks for a value Decode/RF can use for register r without
// stalling, under VariantForwarding: the closest completed producer
// wins. The Execute2→Memory1 latch is checked first since it is
// nearer in program order; the Memory2→Writeback latch second. A
// LOAD/LDR sitting in the Execute2→Memory1 latch is deliberately
// excluded — Execute2 never populates Result for a load, only
// MemAddress, so that value isn't ready until Memory2 — forcing a
// stall instead of forwarding garbage.
func (e *Engine) forward(r int8) (int32, bool) {
	if e.e2m1.State == latch.Valid {
		if rd, ok := e.e2m1.Inst.Writes(); ok && rd == r && !e.e2m1.Inst.IsLoad() {
			return e.e2m1.Result, true
		}
	}
	if e.m2wb.State == latch.Valid {
		if rd, ok := e.m2wb.Inst.Writes(); ok && rd == r {
			return e.m2wb.Result, true
		}
	}
	return 0, false
}
