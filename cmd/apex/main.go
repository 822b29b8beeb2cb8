// Command apex runs an assembled APEX program through the
// cycle-accurate pipeline simulator and prints its final state.
//
// Usage:
//
//	apex <input_file> <mode> <N>
//
// mode is "simulate" (no per-cycle trace) or "display" (a per-cycle
// stage trace). Both modes then print a one-line run-statistics
// summary followed by the final state. N is a positive cycle budget.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/sarchlab/apex/engine"
	"github.com/sarchlab/apex/loader"
	"github.com/sarchlab/apex/report"
)

var (
	variantFlag = flag.String("variant", "stall-only", "hazard resolution: stall-only or forwarding")
	configPath  = flag.String("config", "", "path to a JSON engine configuration file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <input_file> <mode> <N>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  mode: simulate | display\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(run())
}

func run() int {
	if flag.NArg() != 3 {
		flag.Usage()
		return 1
	}

	inputFile := flag.Arg(0)
	mode := flag.Arg(1)
	if mode != "simulate" && mode != "display" {
		fmt.Fprintf(os.Stderr, "apex: mode must be \"simulate\" or \"display\", got %q\n", mode)
		return 1
	}

	n, err := strconv.ParseUint(flag.Arg(2), 10, 64)
	if err != nil || n == 0 {
		fmt.Fprintf(os.Stderr, "apex: N must be a positive integer cycle budget, got %q\n", flag.Arg(2))
		return 1
	}

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		cfg, err = engine.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "apex: %v\n", err)
			return 1
		}
	}

	switch *variantFlag {
	case "stall-only":
		cfg.Variant = engine.VariantStallOnly
	case "forwarding":
		cfg.Variant = engine.VariantForwarding
	default:
		fmt.Fprintf(os.Stderr, "apex: unknown -variant %q\n", *variantFlag)
		return 1
	}
	cfg.Trace = mode == "display"

	prog, err := loader.LoadWithBase(inputFile, cfg.CodeBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apex: %v\n", err)
		return 1
	}

	e := engine.New(prog, cfg)

	if cfg.Trace {
		for i := uint64(1); i <= n && !e.Halted(); i++ {
			events, err := e.Tick()
			if err != nil {
				fmt.Fprintf(os.Stderr, "apex: %v\n", err)
				return 1
			}
			if err := report.Cycle(os.Stdout, i, events); err != nil {
				fmt.Fprintf(os.Stderr, "apex: %v\n", err)
				return 1
			}
		}
	} else {
		if _, err := e.Run(n); err != nil {
			fmt.Fprintf(os.Stderr, "apex: %v\n", err)
			return 1
		}
	}

	stats := e.Stats()
	if err := report.Stats(os.Stdout, stats.Cycles, stats.Retired, stats.Stalls, stats.Flushes, stats.Branches, stats.Forwarded); err != nil {
		fmt.Fprintf(os.Stderr, "apex: %v\n", err)
		return 1
	}

	color := term.IsTerminal(int(os.Stdout.Fd()))
	if err := report.FinalStateTTY(os.Stdout, e.RegisterFile().Snapshot(), e.DataMemory().Dump(report.DataDumpLines), color); err != nil {
		fmt.Fprintf(os.Stderr, "apex: %v\n", err)
		return 1
	}

	return 0
}
