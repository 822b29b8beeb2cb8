// Package main provides a banner entry point for Apex.
// Apex is a cycle-accurate simulator for a simplified in-order RISC
// pipeline, run over assembled programs rather than compiled binaries.
//
// For the full CLI, use: go run ./cmd/apex
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("Apex - APEX pipeline simulator")
	fmt.Println("")
	fmt.Println("Usage: apex [options] <input_file> <mode> <N>")
	fmt.Println("  mode: simulate | display")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -variant   stall-only or forwarding hazard resolution")
	fmt.Println("  -config    Path to engine configuration JSON file")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/apex' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/apex' instead.")
	}
}
