package dnf

// Options configures the DNF reducer's handling of statically-uncertain
// bounds (spec §4.3's include_conditions flag).
type Options struct {
	// IncludeConditions preserves TAKE boundary checks as explicit
	// CONDITION nodes in the DNF output. When false, a TAKE index is
	// assumed in range and the reducer emits the unchecked read. CAT's
	// CONDITION selects which operand to read, so it is emitted whenever
	// the boundary is symbolic, whatever this flag says. Statically
	// decidable bounds fold away entirely regardless of this flag.
	IncludeConditions bool
}
