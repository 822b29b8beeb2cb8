// Package report formats engine state the way the original simulator
// printed it: a fixed-width register dump, a fixed-length data memory
// dump, and — in display mode — one stage-content line per cycle.
package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/apex/register"
	"github.com/sarchlab/apex/trace"
)

// RegisterDumpLines is the number of registers the final report
// prints, regardless of how many the register file actually holds.
const RegisterDumpLines = register.Count

// DataDumpLines is the number of data memory cells the final report
// prints.
const DataDumpLines = 100

// FinalState writes the 16-line register dump followed by the
// 100-line data memory dump to w, matching the CLI surface in
// spec.md §6.
func FinalState(w io.Writer, regs [register.Count]register.Entry, data []int32) error {
	for i, r := range regs {
		status := "INVALID"
		if r.Valid {
			status = "VALID"
		}
		if _, err := fmt.Fprintf(w, "REG[%d]\t\tValue = %d\t\tStatus = %s\n", i, r.Value, status); err != nil {
			return err
		}
	}

	for i := 0; i < DataDumpLines; i++ {
		var v int32
		if i < len(data) {
			v = data[i]
		}
		if _, err := fmt.Fprintf(w, "MEM[%d]\t\tData Value = %d\n", i, v); err != nil {
			return err
		}
	}

	return nil
}

// Cycle writes one cycle's worth of trace events, grouped under a
// "--- Cycle N ---" heading, one line per stage.
func Cycle(w io.Writer, cycle uint64, events []trace.Event) error {
	if _, err := fmt.Fprintf(w, "--- Cycle %d ---\n", cycle); err != nil {
		return err
	}
	for _, ev := range events {
		if err := stageLine(w, ev); err != nil {
			return err
		}
	}
	return nil
}

func stageLine(w io.Writer, ev trace.Event) error {
	if ev.Empty {
		_, err := fmt.Fprintf(w, "%-12s --\n", ev.Stage)
		return err
	}
	_, err := fmt.Fprintf(w, "%-12s %s\n", ev.Stage, ev.Text)
	return err
}

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

// FinalStateTTY behaves like FinalState but, when color is true,
// highlights INVALID registers in red and VALID ones in green — for
// an interactive terminal, never for piped/redirected output.
func FinalStateTTY(w io.Writer, regs [register.Count]register.Entry, data []int32, color bool) error {
	for i, r := range regs {
		status := "INVALID"
		code := ansiRed
		if r.Valid {
			status = "VALID"
			code = ansiGreen
		}
		if color {
			status = code + status + ansiReset
		}
		if _, err := fmt.Fprintf(w, "REG[%d]\t\tValue = %d\t\tStatus = %s\n", i, r.Value, status); err != nil {
			return err
		}
	}

	for i := 0; i < DataDumpLines; i++ {
		var v int32
		if i < len(data) {
			v = data[i]
		}
		if _, err := fmt.Fprintf(w, "MEM[%d]\t\tData Value = %d\n", i, v); err != nil {
			return err
		}
	}

	return nil
}

// Stats writes the engine's run statistics as a short summary block.
func Stats(w io.Writer, cycles, retired, stalls, flushes, branches, forwarded uint64) error {
	_, err := fmt.Fprintf(w,
		"cycles=%d retired=%d stalls=%d flushes=%d branches=%d forwarded=%d\n",
		cycles, retired, stalls, flushes, branches, forwarded)
	return err
}
