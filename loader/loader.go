// Package loader parses an assembled APEX program into the ordered
// instruction stream the engine executes. This is deliberately the
// thinnest collaborator in the repo: the loader contract (spec.md §6)
// treats assembly and loading as external to the pipeline, so this
// package owns only text parsing, not anything the pipeline cares
// about.
//
// The input format is the conventional APEX assignment format: one
// instruction per line, comma-separated fields, operands written the
// same way the original simulator disassembles them (e.g.
// "MOVC,R1,#10", "ADD,R3,R1,R2", "STORE,R1,R2,#4", "BZ,#8", "HALT").
// This is re-derived from cpu.c's print_instruction, whose per-opcode
// field order a loader must match for the format to round-trip.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/apex/insts"
)

// DefaultBase is the conventional code-memory base address: the PC of
// the first instruction in a freshly loaded program.
const DefaultBase = 4000

// Program is the loader's output: the ordered instruction stream plus
// the base address instruction 0 is located at.
type Program struct {
	Instructions []*insts.Instruction
	Base         uint32
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.Instructions)
}

// ParseError reports a malformed line of program text.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("loader: line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads path and parses it into a Program using the default code
// base address.
func Load(path string) (*Program, error) {
	return LoadWithBase(path, DefaultBase)
}

// LoadWithBase reads path and parses it into a Program whose
// instructions are considered to start at the given base address.
func LoadWithBase(path string, base uint32) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog := &Program{Base: base}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		inst, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: raw, Err: err}
		}
		prog.Instructions = append(prog.Instructions, inst)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}

	return prog, nil
}

// parseLine decodes one comma-separated assembly line into an
// Instruction. Register fields are written "R<n>", immediates
// "#<n>".
func parseLine(line string) (*insts.Instruction, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	mnemonic := fields[0]
	op, ok := insts.OpFromMnemonic(mnemonic)
	if !ok {
		return nil, fmt.Errorf("unknown opcode %q", mnemonic)
	}

	in := &insts.Instruction{
		Op:  op,
		Rd:  insts.NoReg,
		Rs1: insts.NoReg,
		Rs2: insts.NoReg,
		Rs3: insts.NoReg,
	}

	operands := fields[1:]

	parseReg := func(s string) (int8, error) {
		s = strings.TrimPrefix(s, "R")
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("bad register operand %q: %w", s, err)
		}
		if n < 0 || n > 15 {
			return 0, fmt.Errorf("register operand %d out of range [0,15]", n)
		}
		return int8(n), nil
	}

	parseImm := func(s string) (int32, error) {
		s = strings.TrimPrefix(s, "#")
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("bad immediate operand %q: %w", s, err)
		}
		return int32(n), nil
	}

	want := func(n int) error {
		if len(operands) != n {
			return fmt.Errorf("%s expects %d operand(s), got %d", mnemonic, n, len(operands))
		}
		return nil
	}

	var err error
	switch op {
	case insts.OpMOVC:
		if err = want(2); err != nil {
			return nil, err
		}
		if in.Rd, err = parseReg(operands[0]); err != nil {
			return nil, err
		}
		if in.Imm, err = parseImm(operands[1]); err != nil {
			return nil, err
		}

	case insts.OpADD, insts.OpSUB, insts.OpMUL, insts.OpAND, insts.OpOR, insts.OpEXOR, insts.OpLDR:
		if err = want(3); err != nil {
			return nil, err
		}
		if in.Rd, err = parseReg(operands[0]); err != nil {
			return nil, err
		}
		if in.Rs1, err = parseReg(operands[1]); err != nil {
			return nil, err
		}
		if in.Rs2, err = parseReg(operands[2]); err != nil {
			return nil, err
		}

	case insts.OpLOAD:
		if err = want(3); err != nil {
			return nil, err
		}
		if in.Rd, err = parseReg(operands[0]); err != nil {
			return nil, err
		}
		if in.Rs1, err = parseReg(operands[1]); err != nil {
			return nil, err
		}
		if in.Imm, err = parseImm(operands[2]); err != nil {
			return nil, err
		}

	case insts.OpSTORE:
		if err = want(3); err != nil {
			return nil, err
		}
		if in.Rs1, err = parseReg(operands[0]); err != nil {
			return nil, err
		}
		if in.Rs2, err = parseReg(operands[1]); err != nil {
			return nil, err
		}
		if in.Imm, err = parseImm(operands[2]); err != nil {
			return nil, err
		}

	case insts.OpSTR:
		if err = want(3); err != nil {
			return nil, err
		}
		if in.Rs1, err = parseReg(operands[0]); err != nil {
			return nil, err
		}
		if in.Rs2, err = parseReg(operands[1]); err != nil {
			return nil, err
		}
		if in.Rs3, err = parseReg(operands[2]); err != nil {
			return nil, err
		}

	case insts.OpBZ, insts.OpBNZ:
		if err = want(1); err != nil {
			return nil, err
		}
		if in.Imm, err = parseImm(operands[0]); err != nil {
			return nil, err
		}

	case insts.OpJUMP:
		if err = want(2); err != nil {
			return nil, err
		}
		if in.Rs1, err = parseReg(operands[0]); err != nil {
			return nil, err
		}
		if in.Imm, err = parseImm(operands[1]); err != nil {
			return nil, err
		}

	case insts.OpHALT:
		if err = want(0); err != nil {
			return nil, err
		}
	}

	return in, nil
}
