// Package register implements the APEX architectural register file:
// 16 general-purpose registers, each with a validity bit, per spec.md
// §3. A register becomes invalid the cycle Decode/RF admits a writer
// instruction past the Decode/RF→Execute1 boundary, and valid again
// when Writeback commits that writer — this package only stores the
// bits; the engine package is responsible for calling Invalidate and
// Commit at the right cycle.
package register

// Count is the number of architectural registers APEX exposes.
const Count = 16

// File is the APEX register file: 16 (value, valid) entries.
type File struct {
	values [Count]int32
	valid  [Count]bool
}

// New returns a register file with every register valid and zeroed,
// matching APEX_cpu_init's memset(regs, 0, ...) / memset(regs_valid, 1, ...).
func New() *File {
	f := &File{}
	for i := range f.valid {
		f.valid[i] = true
	}
	return f
}

// Read returns the current value of register r, regardless of
// validity (callers must check IsValid themselves if the distinction
// matters — the ALU, for instance, only ever reads a register once
// Decode/RF has already confirmed it is valid).
func (f *File) Read(r int8) int32 {
	return f.values[r]
}

// IsValid reports whether register r currently holds a committed
// value (no in-flight writer has claimed it).
func (f *File) IsValid(r int8) bool {
	return f.valid[r]
}

// Invalidate marks register r as having an in-flight writer. Called
// by Decode/RF when it admits a writer instruction.
func (f *File) Invalidate(r int8) {
	f.valid[r] = false
}

// Commit writes value to register r and marks it valid again. Called
// by Writeback.
func (f *File) Commit(r int8, value int32) {
	f.values[r] = value
	f.valid[r] = true
}

// Snapshot returns a copy of the 16 (value, valid) pairs, for the
// final-state report and for differential tests that compare two
// engine runs.
func (f *File) Snapshot() [Count]Entry {
	var out [Count]Entry
	for i := 0; i < Count; i++ {
		out[i] = Entry{Value: f.values[i], Valid: f.valid[i]}
	}
	return out
}

// Entry is one register's externally visible state.
type Entry struct {
	Value int32
	Valid bool
}
