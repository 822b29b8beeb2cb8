package engine

// Variant selects which of the two hazard-resolution disciplines
// Decode/RF uses. Both variants share the same seven-stage datapath;
// they differ only in how Decode/RF resolves an invalid source
// operand. P4 (spec.md §8) requires both to agree on final register
// file and data memory for any terminating program.
type Variant uint8

const (
	// VariantStallOnly resolves hazards exclusively by stalling
	// Decode/RF until the source register is valid in the
	// architectural register file.
	VariantStallOnly Variant = iota
	// VariantForwarding additionally lets Decode/RF obtain an operand
	// from the Execute2→Memory1 or Memory2→Writeback latch before the
	// producing instruction reaches Writeback.
	VariantForwarding
)

// String names the variant, used in trace output and test names.
func (v Variant) String() string {
	switch v {
	case VariantStallOnly:
		return "stall-only"
	case VariantForwarding:
		return "forwarding"
	default:
		return "unknown"
	}
}
